package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"
)

const (
	KeyLog        = "log"
	KeyLogLevel   = "loglevel"
	KeyToken      = "token"
	KeyAPI        = "api"
	KeyOwner      = "owner"
	KeyRepository = "repository"
	KeyPerPage    = "perpage"
	EnvPrefix     = "relm"
)

// DefaultAPIBaseURL is the API endpoint used when neither the config file nor
// the environment names one.
const DefaultAPIBaseURL = "https://api.github.com"

// Environment variables honored as fallbacks for CI compatibility, in
// addition to the RELM_* variables bound below.
const (
	EnvGithubToken = "GITHUB_TOKEN"
	EnvGithubAPI   = "GITHUB_API"
)

var HomeDir string
var DefaultConfigDir string

// ConfigDir is the directory holding the config file and the HTTP cache.
// Empty in test runs, which disables the on-disk cache.
var ConfigDir string

func InitConfig() {
	var err error
	HomeDir, err = os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultConfigDir = filepath.Join(HomeDir, ".relm")
	ConfigDir = DefaultConfigDir
}

func InitViper() {
	viper.SetDefault(KeyLog, false)
	viper.SetDefault(KeyLogLevel, "INFO")
	viper.SetDefault(KeyPerPage, 30)

	viper.SetConfigType("json")
	viper.SetConfigName("config")
	viper.AddConfigPath(DefaultConfigDir)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; do nothing and rely on defaults
		} else {
			panic("cannot read config: " + err.Error())
		}
	}
	if err := validateConfigFile(); err != nil {
		panic("invalid config: " + err.Error())
	}

	// set prefix "relm" for environment variables
	// the environment variables then have to match pattern "relm_<viper variable>", lower or uppercase
	viper.SetEnvPrefix(EnvPrefix)

	_ = viper.BindEnv(KeyLog)        // env variable name = RELM_LOG
	_ = viper.BindEnv(KeyLogLevel)   // env variable name = RELM_LOGLEVEL
	_ = viper.BindEnv(KeyToken)      // env variable name = RELM_TOKEN
	_ = viper.BindEnv(KeyAPI)        // env variable name = RELM_API
	_ = viper.BindEnv(KeyOwner)      // env variable name = RELM_OWNER
	_ = viper.BindEnv(KeyRepository) // env variable name = RELM_REPOSITORY
	_ = viper.BindEnv(KeyPerPage)    // env variable name = RELM_PERPAGE
}

// Token returns the API token, preferring the relm config over the
// conventional GITHUB_TOKEN variable set by CI systems.
func Token() string {
	if t := viper.GetString(KeyToken); t != "" {
		return t
	}
	return os.Getenv(EnvGithubToken)
}

// APIBaseURL returns the base URL of the forge API.
func APIBaseURL() string {
	if u := viper.GetString(KeyAPI); u != "" {
		return u
	}
	if u := os.Getenv(EnvGithubAPI); u != "" {
		return u
	}
	return DefaultAPIBaseURL
}

func Owner() string { return viper.GetString(KeyOwner) }

func Repository() string { return viper.GetString(KeyRepository) }

// PerPage returns the page size for paginated listings, clamped to the
// API's accepted range.
func PerPage() int {
	pp := viper.GetInt(KeyPerPage)
	if pp < 1 {
		return 1
	}
	if pp > 100 {
		return 100
	}
	return pp
}

const configSchema = `{
  "type": "object",
  "properties": {
    "log": {"type": "boolean"},
    "loglevel": {"type": "string"},
    "token": {"type": "string"},
    "api": {"type": "string"},
    "owner": {"type": "string"},
    "repository": {"type": "string"},
    "perpage": {"type": "integer", "minimum": 1, "maximum": 100}
  },
  "additionalProperties": false
}`

var compiledConfigSchema = jsonschema.MustCompileString("config.schema.json", configSchema)

// validateConfigFile checks the config file, if one was read, against the
// embedded schema so that typos fail fast instead of being silently ignored.
func validateConfigFile() error {
	file := viper.ConfigFileUsed()
	if file == "" {
		return nil
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}
	if err := compiledConfigSchema.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

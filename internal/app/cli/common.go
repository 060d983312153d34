// Package cli contains implementations of CLI commands. The command code is
// supposed to contain only logic specific to the CLI and delegate API access
// to the client in /internal/forge.
// Commands in cli package should print results in human-readable format to stdout.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/relm-oss/relm/internal/model"
)

// Stderrf prints a message to os.Stderr, followed by newline
func Stderrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
	_, _ = fmt.Fprintln(os.Stderr)
}

// ForgeClient is the part of the forge API client that the executors use.
type ForgeClient interface {
	GetRelease(ctx context.Context, releaseID int64) (model.Release, error)
	GetReleaseByTag(ctx context.Context, tag string) (model.Release, error)
	ListReleases(ctx context.Context) ([]model.Release, error)
	LatestRelease(ctx context.Context, includePrereleases bool) (model.Release, error)
	CreateRelease(ctx context.Context, request model.ReleaseRequest) (model.Release, error)
	UpdateRelease(ctx context.Context, releaseID int64, request model.ReleaseRequest) (model.Release, error)
	DeleteRelease(ctx context.Context, releaseID int64) error
	ListAssets(ctx context.Context, releaseID int64) ([]model.Asset, error)
	GetAsset(ctx context.Context, assetID int64) (model.Asset, error)
	UpdateAsset(ctx context.Context, assetID int64, request model.AssetRequest) (model.Asset, error)
	DeleteAsset(ctx context.Context, assetID int64) error
	UploadAsset(ctx context.Context, uploadURL string, request model.AssetRequest, content []byte, contentType string) (model.Asset, error)
	DownloadAsset(ctx context.Context, assetID int64) ([]byte, error)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

package forge

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrNoToken      = errors.New("no API token configured, set RELM_TOKEN or GITHUB_TOKEN")
	ErrNoRepository = errors.New("owner and repository must be specified")
)

// APIError carries the HTTP status and the error details reported by the
// forge API. It matches ErrNotFound via errors.Is for 404 responses.
type APIError struct {
	Status  int
	Message string
	URL     string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	return msg
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// newAPIError extracts the message and any sub-error details from an error
// response body. The body is JSON of the form
// {"message": "...", "errors": [{"resource": "...", "field": "...", "code": "..."}]},
// but nothing is guaranteed for proxies and custom forges, so all fields are
// optional.
func newAPIError(resp *http.Response, body []byte) error {
	e := &APIError{Status: resp.StatusCode}
	if resp.Request != nil && resp.Request.URL != nil {
		e.URL = resp.Request.URL.String()
	}
	msg, err := jsonparser.GetString(body, "message")
	if err != nil {
		return e
	}
	var details []string
	_, _ = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		var parts []string
		for _, key := range []string{"resource", "field", "code"} {
			if v, err := jsonparser.GetString(value, key); err == nil && v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			details = append(details, strings.Join(parts, " "))
		}
	}, "errors")
	if len(details) > 0 {
		msg += " [" + strings.Join(details, "; ") + "]"
	}
	e.Message = msg
	return e
}

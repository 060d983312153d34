// Package forge implements the client side of a hosted source-forge release
// API (GitHub v3 compatible): releases and release assets, with Link-header
// driven pagination.
package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/relm-oss/relm/internal/config"
	"github.com/relm-oss/relm/internal/headers"
	"github.com/relm-oss/relm/internal/utils"
)

const (
	apiAccept      = "application/vnd.github.v3+json"
	apiContentType = "application/vnd.github.v3+json; charset=utf-8"
	rawAccept      = "application/octet-stream"
	bodyCharset    = "utf-8"
)

var httpTransport http.RoundTripper
var once sync.Once

func getCachingTransport() http.RoundTripper {
	once.Do(func() {
		if config.ConfigDir == "" { // this is probably a test run, but even if it isn't, we don't want to write the cache in the working directory
			httpTransport = http.DefaultTransport
			return
		}
		cacheDir := filepath.Join(config.ConfigDir, ".http-cache")
		err := os.MkdirAll(cacheDir, 0770)
		if err != nil {
			panic(err)
		}
		cache := diskcache.New(cacheDir)
		httpTransport = httpcache.NewTransport(cache)
	})
	return httpTransport
}

// Client calls the release API of a single owner/repository pair.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	owner      string
	repository string
	token      string
	perPage    int
	client     *http.Client
}

// NewClient builds a client for the given repository, taking the token, API
// base URL and page size from the configuration.
func NewClient(owner, repository string) (*Client, error) {
	if owner == "" || repository == "" {
		return nil, ErrNoRepository
	}
	token := config.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return &Client{
		baseURL:    strings.TrimSuffix(config.APIBaseURL(), "/"),
		owner:      owner,
		repository: repository,
		token:      token,
		perPage:    config.PerPage(),
		client:     &http.Client{Transport: getCachingTransport()},
	}, nil
}

// resolveURL keeps absolute URLs as they are (pagination and hypermedia URLs
// come back absolute) and prefixes relative paths with the API base URL.
func (c *Client) resolveURL(u string) string {
	parsed, err := url.Parse(u)
	if err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return u
	}
	return c.baseURL + u
}

func (c *Client) newRequest(ctx context.Context, method, urlStr string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(urlStr), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", apiAccept)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", "relm/"+utils.GetRelmVersion())
	return req, nil
}

// do issues a request and decodes a JSON response body into out, if out is
// not nil. It returns the response so that callers can inspect its headers;
// the body has been consumed and closed.
func (c *Client) do(ctx context.Context, method, urlStr string, contentType string, body []byte, out any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := c.newRequest(ctx, method, urlStr, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, data, err := c.roundTrip(ctx, req)
	if err != nil {
		return resp, err
	}
	if out != nil {
		ct, err := headers.ContentTypeFromResponse(resp)
		if err != nil {
			return resp, fmt.Errorf("parsing Content-Type header: %w", err)
		}
		if !ct.IsJSON() {
			return resp, fmt.Errorf("unexpected content type %q in response to %s %s", ct.MediaType, method, urlStr)
		}
		if cs := ct.CharsetOr(bodyCharset); cs != bodyCharset {
			return resp, fmt.Errorf("unsupported response charset %q", cs)
		}
		if err := json.Unmarshal(data, out); err != nil {
			return resp, fmt.Errorf("decoding response body: %w", err)
		}
	}
	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, req *http.Request) (*http.Response, []byte, error) {
	log := utils.GetLogger(ctx, "forge")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}
	log.Debug("api response", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
	if resp.StatusCode >= http.StatusBadRequest {
		return resp, data, newAPIError(resp, data)
	}
	return resp, data, nil
}

// listPaginated follows rel="next" links until the last page is reached.
// Page elements are accumulated in the order the server returns them.
func listPaginated[T any](ctx context.Context, c *Client, firstURL string) ([]T, error) {
	var all []T
	urlStr := firstURL
	for urlStr != "" {
		var page []T
		resp, err := c.do(ctx, http.MethodGet, urlStr, "", nil, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		links, err := headers.WebLinksFromResponse(resp)
		if err != nil {
			return nil, fmt.Errorf("parsing Link header: %w", err)
		}
		next, ok := links.Rel(headers.RelNext)
		if !ok {
			break
		}
		urlStr = next.Target
	}
	return all, nil
}

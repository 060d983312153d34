package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/relm-oss/relm/internal/model"
	"github.com/relm-oss/relm/internal/utils"
)

// ListAssets lists the assets of a release, following pagination links.
func (c *Client) ListAssets(ctx context.Context, releaseID int64) ([]model.Asset, error) {
	firstURL := c.releasesPath(fmt.Sprintf("/%d/assets?per_page=%d", releaseID, c.perPage))
	return listPaginated[model.Asset](ctx, c, firstURL)
}

// GetAsset retrieves a release asset by its numeric identifier.
func (c *Client) GetAsset(ctx context.Context, assetID int64) (model.Asset, error) {
	var asset model.Asset
	_, err := c.do(ctx, http.MethodGet, c.releasesPath(fmt.Sprintf("/assets/%d", assetID)), "", nil, &asset)
	return asset, err
}

// UpdateAsset changes the name and/or label of an existing asset.
func (c *Client) UpdateAsset(ctx context.Context, assetID int64, request model.AssetRequest) (model.Asset, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return model.Asset{}, err
	}
	var asset model.Asset
	_, err = c.do(ctx, http.MethodPatch, c.releasesPath(fmt.Sprintf("/assets/%d", assetID)), apiContentType, body, &asset)
	return asset, err
}

// DeleteAsset deletes a release asset.
func (c *Client) DeleteAsset(ctx context.Context, assetID int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.releasesPath(fmt.Sprintf("/assets/%d", assetID)), "", nil, nil)
	return err
}

// UploadAsset uploads content as a new asset of a release. uploadURL is the
// release's hypermedia upload_url. An empty contentType is detected from the
// content and the asset name.
func (c *Client) UploadAsset(ctx context.Context, uploadURL string, request model.AssetRequest, content []byte, contentType string) (model.Asset, error) {
	contentType = utils.DetectMediaType(contentType, request.Name, utils.ReadCloserGetterFromBytes(content))
	var asset model.Asset
	_, err := c.do(ctx, http.MethodPost, expandUploadURL(uploadURL, request), contentType, content, &asset)
	return asset, err
}

// DownloadAsset fetches the binary content of an asset. The API answers the
// octet-stream Accept with a redirect to the download host, which the client
// follows transparently.
func (c *Client) DownloadAsset(ctx context.Context, assetID int64) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.releasesPath(fmt.Sprintf("/assets/%d", assetID)), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", rawAccept)
	_, data, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// upload_url is an RFC 6570 template ending in an optional query expansion,
// e.g. https://uploads.example.com/repos/o/r/releases/1/assets{?name,label}
var uploadURLTemplateSuffix = regexp.MustCompile(`\{\?[^}]*\}$`)

func expandUploadURL(uploadURL string, request model.AssetRequest) string {
	base := uploadURLTemplateSuffix.ReplaceAllString(uploadURL, "")
	query := url.Values{}
	query.Set("name", request.Name)
	if request.Label != "" {
		query.Set("label", request.Label)
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + query.Encode()
}

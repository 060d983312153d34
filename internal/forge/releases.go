package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/relm-oss/relm/internal/model"
)

func (c *Client) releasesPath(suffix string) string {
	return fmt.Sprintf("/repos/%s/%s/releases%s", url.PathEscape(c.owner), url.PathEscape(c.repository), suffix)
}

// GetRelease retrieves a release by its numeric identifier. A missing release
// is reported as ErrNotFound.
func (c *Client) GetRelease(ctx context.Context, releaseID int64) (model.Release, error) {
	var release model.Release
	_, err := c.do(ctx, http.MethodGet, c.releasesPath(fmt.Sprintf("/%d", releaseID)), "", nil, &release)
	return release, err
}

// GetReleaseByTag retrieves the release published for the given tag name.
func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (model.Release, error) {
	var release model.Release
	_, err := c.do(ctx, http.MethodGet, c.releasesPath("/tags/"+url.PathEscape(tag)), "", nil, &release)
	return release, err
}

// ListReleases lists all releases of the repository, following the
// rel="next" pagination links until the last page.
func (c *Client) ListReleases(ctx context.Context) ([]model.Release, error) {
	firstURL := c.releasesPath(fmt.Sprintf("?per_page=%d", c.perPage))
	return listPaginated[model.Release](ctx, c, firstURL)
}

// LatestRelease returns the release with the highest semantic-version tag.
// Draft releases and tags that do not parse as semver are not considered.
func (c *Client) LatestRelease(ctx context.Context, includePrereleases bool) (model.Release, error) {
	releases, err := c.ListReleases(ctx)
	if err != nil {
		return model.Release{}, err
	}
	latest, found := model.LatestByVersion(releases, includePrereleases)
	if !found {
		return model.Release{}, fmt.Errorf("%w: no release with a semver tag", ErrNotFound)
	}
	return latest, nil
}

// CreateRelease creates a new release.
func (c *Client) CreateRelease(ctx context.Context, request model.ReleaseRequest) (model.Release, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return model.Release{}, err
	}
	var release model.Release
	_, err = c.do(ctx, http.MethodPost, c.releasesPath(""), apiContentType, body, &release)
	return release, err
}

// UpdateRelease modifies an existing release. Fields left zero in the request
// remain unchanged on the server.
func (c *Client) UpdateRelease(ctx context.Context, releaseID int64, request model.ReleaseRequest) (model.Release, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return model.Release{}, err
	}
	var release model.Release
	_, err = c.do(ctx, http.MethodPatch, c.releasesPath(fmt.Sprintf("/%d", releaseID)), apiContentType, body, &release)
	return release, err
}

// DeleteRelease deletes a release. The tag the release was created from is
// left in place.
func (c *Client) DeleteRelease(ctx context.Context, releaseID int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.releasesPath(fmt.Sprintf("/%d", releaseID)), "", nil, nil)
	return err
}

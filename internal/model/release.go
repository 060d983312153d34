// Package model holds the value types exchanged with the forge release API,
// in the GitHub v3 wire format.
package model

import (
	"time"

	"github.com/Masterminds/semver/v3"
)

// Release is a release as returned by the forge API.
type Release struct {
	URL             string     `json:"url"`
	HTMLURL         string     `json:"html_url"`
	AssetsURL       string     `json:"assets_url"`
	UploadURL       string     `json:"upload_url"`
	TarballURL      string     `json:"tarball_url,omitempty"`
	ZipballURL      string     `json:"zipball_url,omitempty"`
	ID              int64      `json:"id"`
	NodeID          string     `json:"node_id,omitempty"`
	TagName         string     `json:"tag_name"`
	TargetCommitish string     `json:"target_commitish"`
	Name            string     `json:"name,omitempty"`
	Body            string     `json:"body,omitempty"`
	Draft           bool       `json:"draft"`
	Prerelease      bool       `json:"prerelease"`
	CreatedAt       time.Time  `json:"created_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Assets          []Asset    `json:"assets,omitempty"`
}

// ReleaseRequest is the payload for creating or updating a release. Pointer
// fields distinguish "leave unchanged" from an explicit false on updates.
type ReleaseRequest struct {
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Name            string `json:"name,omitempty"`
	Body            string `json:"body,omitempty"`
	Draft           *bool  `json:"draft,omitempty"`
	Prerelease      *bool  `json:"prerelease,omitempty"`
}

// Version parses the release tag as a semantic version. A leading "v" is
// accepted.
func (r Release) Version() (*semver.Version, error) {
	return semver.NewVersion(r.TagName)
}

// FindAssetByName returns the asset with the given name, if present.
func (r Release) FindAssetByName(name string) (Asset, bool) {
	for _, asset := range r.Assets {
		if asset.Name == name {
			return asset, true
		}
	}
	return Asset{}, false
}

// LatestByVersion returns the release with the highest semantic-version tag.
// Drafts and releases whose tags do not parse as semver are ignored.
// Prereleases (either flagged as such or carrying a semver prerelease suffix)
// are only considered when includePrereleases is set.
func LatestByVersion(releases []Release, includePrereleases bool) (Release, bool) {
	var best Release
	var bestVersion *semver.Version
	for _, r := range releases {
		if r.Draft {
			continue
		}
		v, err := r.Version()
		if err != nil {
			continue
		}
		if !includePrereleases && (r.Prerelease || v.Prerelease() != "") {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best, bestVersion = r, v
		}
	}
	return best, bestVersion != nil
}

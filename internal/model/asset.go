package model

import "time"

// Asset is a release asset as returned by the forge API.
type Asset struct {
	URL                string     `json:"url"`
	BrowserDownloadURL string     `json:"browser_download_url"`
	ID                 int64      `json:"id"`
	NodeID             string     `json:"node_id,omitempty"`
	Name               string     `json:"name"`
	Label              string     `json:"label,omitempty"`
	State              string     `json:"state,omitempty"`
	ContentType        string     `json:"content_type,omitempty"`
	Size               int64      `json:"size"`
	DownloadCount      int64      `json:"download_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// AssetRequest is the payload for uploading or updating a release asset.
type AssetRequest struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

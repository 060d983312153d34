package forge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/relm-oss/relm/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestExpandUploadURL(t *testing.T) {
	tests := []struct {
		uploadURL string
		request   model.AssetRequest
		expected  string
	}{
		{"https://uploads.example.com/repos/o/r/releases/1/assets{?name,label}",
			model.AssetRequest{Name: "a.tar.gz"},
			"https://uploads.example.com/repos/o/r/releases/1/assets?name=a.tar.gz"},
		{"https://uploads.example.com/repos/o/r/releases/1/assets{?name,label}",
			model.AssetRequest{Name: "a.tar.gz", Label: "linux build"},
			"https://uploads.example.com/repos/o/r/releases/1/assets?label=linux+build&name=a.tar.gz"},
		{"https://uploads.example.com/repos/o/r/releases/1/assets",
			model.AssetRequest{Name: "a.tar.gz"},
			"https://uploads.example.com/repos/o/r/releases/1/assets?name=a.tar.gz"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, expandUploadURL(test.uploadURL, test.request))
	}
}

func TestClient_UploadAsset(t *testing.T) {
	content := []byte(`{"key": "value"}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octocat/hello-world/releases/17/assets", r.URL.Path)
		assert.Equal(t, "manifest.json", r.URL.Query().Get("name"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, content, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 101, "name": "manifest.json", "state": "uploaded"}`))
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	uploadURL := srv.URL + "/repos/octocat/hello-world/releases/17/assets{?name,label}"
	asset, err := client.UploadAsset(context.Background(), uploadURL, model.AssetRequest{Name: "manifest.json"}, content, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(101), asset.ID)
	assert.Equal(t, "uploaded", asset.State)
}

func TestClient_ListAssets_Paginated(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/releases/17/assets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octocat/hello-world/releases/17/assets?page=2>; rel="next"`, srv.URL))
			_, _ = w.Write([]byte(`[{"id": 1, "name": "a.tar.gz"}, {"id": 2, "name": "b.zip"}]`))
		} else {
			_, _ = w.Write([]byte(`[{"id": 3, "name": "c.deb"}]`))
		}
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	assets, err := client.ListAssets(context.Background(), 17)
	assert.NoError(t, err)
	assert.Len(t, assets, 3)
	assert.Equal(t, "c.deb", assets[2].Name)
}

func TestClient_GetUpdateDeleteAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/releases/assets/101", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id": 101, "name": "a.tar.gz", "size": 512}`))
		case http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"name": "renamed.tar.gz", "label": "new label"}`, string(body))
			_, _ = w.Write([]byte(`{"id": 101, "name": "renamed.tar.gz", "label": "new label"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)

	asset, err := client.GetAsset(context.Background(), 101)
	assert.NoError(t, err)
	assert.Equal(t, int64(512), asset.Size)

	asset, err = client.UpdateAsset(context.Background(), 101, model.AssetRequest{Name: "renamed.tar.gz", Label: "new label"})
	assert.NoError(t, err)
	assert.Equal(t, "renamed.tar.gz", asset.Name)

	assert.NoError(t, client.DeleteAsset(context.Background(), 101))
}

func TestClient_DownloadAsset(t *testing.T) {
	payload := []byte{0x1f, 0x8b, 0x08, 0x00, 0x01}
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octocat/hello-world/releases/assets/101":
			assert.Equal(t, "application/octet-stream", r.Header.Get("Accept"))
			// the API redirects binary downloads to the download host
			http.Redirect(w, r, srv.URL+"/cdn/a.tar.gz", http.StatusFound)
		case "/cdn/a.tar.gz":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(payload)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	data, err := client.DownloadAsset(context.Background(), 101)
	assert.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestClient_DownloadAsset_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	_, err := client.DownloadAsset(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

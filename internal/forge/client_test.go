package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/relm-oss/relm/internal/config"
	"github.com/relm-oss/relm/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func setupClient(t *testing.T, srvURL string) *Client {
	t.Helper()
	t.Setenv(config.EnvGithubToken, "token123")
	t.Setenv(config.EnvGithubAPI, srvURL)
	viper.Set(config.KeyPerPage, 2)
	t.Cleanup(viper.Reset)

	client, err := NewClient("octocat", "hello-world")
	assert.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	t.Setenv(config.EnvGithubToken, "token123")

	_, err := NewClient("", "repo")
	assert.ErrorIs(t, err, ErrNoRepository)
	_, err = NewClient("owner", "")
	assert.ErrorIs(t, err, ErrNoRepository)

	t.Setenv(config.EnvGithubToken, "")
	_, err = NewClient("owner", "repo")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestClient_GetRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/releases/17", r.URL.Path)
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"id": 17, "tag_name": "v1.0.0", "upload_url": "https://uploads.example.com/repos/octocat/hello-world/releases/17/assets{?name,label}"}`))
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	release, err := client.GetRelease(context.Background(), 17)
	assert.NoError(t, err)
	assert.Equal(t, int64(17), release.ID)
	assert.Equal(t, "v1.0.0", release.TagName)
}

func TestClient_GetReleaseByTag_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/releases/tags/v9.9.9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	_, err := client.GetReleaseByTag(context.Background(), "v9.9.9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ListReleases_Paginated(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/releases", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		switch r.URL.Query().Get("page") {
		case "":
			assert.Equal(t, "2", r.URL.Query().Get("per_page"))
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octocat/hello-world/releases?page=2>; rel="next", <%s/repos/octocat/hello-world/releases?page=3>; rel="last"`, srv.URL, srv.URL))
			_, _ = w.Write([]byte(`[{"id": 1, "tag_name": "v1.0.0"}, {"id": 2, "tag_name": "v1.1.0"}]`))
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octocat/hello-world/releases?page=3>; rel="next", <%s/repos/octocat/hello-world/releases?page=1>; rel="prev"`, srv.URL, srv.URL))
			_, _ = w.Write([]byte(`[{"id": 3, "tag_name": "v1.2.0"}, {"id": 4, "tag_name": "v2.0.0-rc.1"}]`))
		case "3":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octocat/hello-world/releases?page=2>; rel="prev"`, srv.URL))
			_, _ = w.Write([]byte(`[{"id": 5, "tag_name": "nightly"}]`))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	releases, err := client.ListReleases(context.Background())
	assert.NoError(t, err)
	assert.Len(t, releases, 5)
	assert.Equal(t, int64(1), releases[0].ID)
	assert.Equal(t, int64(5), releases[4].ID)

	latest, err := client.LatestRelease(context.Background(), false)
	assert.NoError(t, err)
	assert.Equal(t, "v1.2.0", latest.TagName)

	latest, err = client.LatestRelease(context.Background(), true)
	assert.NoError(t, err)
	assert.Equal(t, "v2.0.0-rc.1", latest.TagName)
}

func TestClient_CreateRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octocat/hello-world/releases", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json; charset=utf-8", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42, "tag_name": "v1.0.0", "draft": true}`))
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	draft := true
	release, err := client.CreateRelease(context.Background(), model.ReleaseRequest{TagName: "v1.0.0", Draft: &draft})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), release.ID)
	assert.True(t, release.Draft)
}

func TestClient_UpdateRelease_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Validation Failed", "errors": [{"resource": "Release", "field": "tag_name", "code": "missing_field"}]}`))
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	_, err := client.UpdateRelease(context.Background(), 42, model.ReleaseRequest{})
	assert.Error(t, err)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Contains(t, apiErr.Message, "Validation Failed")
	assert.Contains(t, apiErr.Message, "Release tag_name missing_field")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_DeleteRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/repos/octocat/hello-world/releases/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := setupClient(t, srv.URL)
	assert.NoError(t, client.DeleteRelease(context.Background(), 42))
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/relm-oss/relm/internal/model"
)

// stubClient implements ForgeClient with overridable functions. Calling a
// method whose function is not set fails the test.
type stubClient struct {
	t *testing.T

	getRelease      func(ctx context.Context, releaseID int64) (model.Release, error)
	getReleaseByTag func(ctx context.Context, tag string) (model.Release, error)
	listReleases    func(ctx context.Context) ([]model.Release, error)
	latestRelease   func(ctx context.Context, includePrereleases bool) (model.Release, error)
	createRelease   func(ctx context.Context, request model.ReleaseRequest) (model.Release, error)
	updateRelease   func(ctx context.Context, releaseID int64, request model.ReleaseRequest) (model.Release, error)
	deleteRelease   func(ctx context.Context, releaseID int64) error
	listAssets      func(ctx context.Context, releaseID int64) ([]model.Asset, error)
	getAsset        func(ctx context.Context, assetID int64) (model.Asset, error)
	updateAsset     func(ctx context.Context, assetID int64, request model.AssetRequest) (model.Asset, error)
	deleteAsset     func(ctx context.Context, assetID int64) error
	uploadAsset     func(ctx context.Context, uploadURL string, request model.AssetRequest, content []byte, contentType string) (model.Asset, error)
	downloadAsset   func(ctx context.Context, assetID int64) ([]byte, error)
}

func (s *stubClient) GetRelease(ctx context.Context, releaseID int64) (model.Release, error) {
	if s.getRelease == nil {
		s.t.Fatal("unexpected call to GetRelease")
	}
	return s.getRelease(ctx, releaseID)
}

func (s *stubClient) GetReleaseByTag(ctx context.Context, tag string) (model.Release, error) {
	if s.getReleaseByTag == nil {
		s.t.Fatal("unexpected call to GetReleaseByTag")
	}
	return s.getReleaseByTag(ctx, tag)
}

func (s *stubClient) ListReleases(ctx context.Context) ([]model.Release, error) {
	if s.listReleases == nil {
		s.t.Fatal("unexpected call to ListReleases")
	}
	return s.listReleases(ctx)
}

func (s *stubClient) LatestRelease(ctx context.Context, includePrereleases bool) (model.Release, error) {
	if s.latestRelease == nil {
		s.t.Fatal("unexpected call to LatestRelease")
	}
	return s.latestRelease(ctx, includePrereleases)
}

func (s *stubClient) CreateRelease(ctx context.Context, request model.ReleaseRequest) (model.Release, error) {
	if s.createRelease == nil {
		s.t.Fatal("unexpected call to CreateRelease")
	}
	return s.createRelease(ctx, request)
}

func (s *stubClient) UpdateRelease(ctx context.Context, releaseID int64, request model.ReleaseRequest) (model.Release, error) {
	if s.updateRelease == nil {
		s.t.Fatal("unexpected call to UpdateRelease")
	}
	return s.updateRelease(ctx, releaseID, request)
}

func (s *stubClient) DeleteRelease(ctx context.Context, releaseID int64) error {
	if s.deleteRelease == nil {
		s.t.Fatal("unexpected call to DeleteRelease")
	}
	return s.deleteRelease(ctx, releaseID)
}

func (s *stubClient) ListAssets(ctx context.Context, releaseID int64) ([]model.Asset, error) {
	if s.listAssets == nil {
		s.t.Fatal("unexpected call to ListAssets")
	}
	return s.listAssets(ctx, releaseID)
}

func (s *stubClient) GetAsset(ctx context.Context, assetID int64) (model.Asset, error) {
	if s.getAsset == nil {
		s.t.Fatal("unexpected call to GetAsset")
	}
	return s.getAsset(ctx, assetID)
}

func (s *stubClient) UpdateAsset(ctx context.Context, assetID int64, request model.AssetRequest) (model.Asset, error) {
	if s.updateAsset == nil {
		s.t.Fatal("unexpected call to UpdateAsset")
	}
	return s.updateAsset(ctx, assetID, request)
}

func (s *stubClient) DeleteAsset(ctx context.Context, assetID int64) error {
	if s.deleteAsset == nil {
		s.t.Fatal("unexpected call to DeleteAsset")
	}
	return s.deleteAsset(ctx, assetID)
}

func (s *stubClient) UploadAsset(ctx context.Context, uploadURL string, request model.AssetRequest, content []byte, contentType string) (model.Asset, error) {
	if s.uploadAsset == nil {
		s.t.Fatal("unexpected call to UploadAsset")
	}
	return s.uploadAsset(ctx, uploadURL, request, content, contentType)
}

func (s *stubClient) DownloadAsset(ctx context.Context, assetID int64) ([]byte, error) {
	if s.downloadAsset == nil {
		s.t.Fatal("unexpected call to DownloadAsset")
	}
	return s.downloadAsset(ctx, assetID)
}

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	outC := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()
	f()
	os.Stdout = old
	_ = w.Close()
	return <-outC
}

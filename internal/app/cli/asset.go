package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gofrs/flock"
	"github.com/relm-oss/relm/internal/model"
	"github.com/relm-oss/relm/internal/utils"
)

const (
	downloadLockTimeout    = 10 * time.Second
	downloadLockRetryDelay = 100 * time.Millisecond
)

var ErrDownloadLocked = errors.New("download target is locked by another process")

type AssetExecutor struct {
	client ForgeClient
}

func NewAssetExecutor(client ForgeClient) *AssetExecutor {
	return &AssetExecutor{client: client}
}

// List prints a table of the assets of a release identified by id or tag.
func (e *AssetExecutor) List(ctx context.Context, releaseID int64, tag string) error {
	release, err := e.resolveRelease(ctx, releaseID, tag)
	if err != nil {
		return err
	}
	assets, err := e.client.ListAssets(ctx, release.ID)
	if err != nil {
		Stderrf("Could not list assets: %v", err)
		return err
	}
	table := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(table, "ID\tNAME\tLABEL\tSIZE\tDOWNLOADS\tCONTENT-TYPE\n")
	for _, a := range assets {
		_, _ = fmt.Fprintf(table, "%d\t%s\t%s\t%d\t%d\t%s\n", a.ID, a.Name, a.Label, a.Size, a.DownloadCount, a.ContentType)
	}
	_ = table.Flush()
	return nil
}

// Get prints a single asset.
func (e *AssetExecutor) Get(ctx context.Context, assetID int64) error {
	asset, err := e.client.GetAsset(ctx, assetID)
	if err != nil {
		Stderrf("Could not get asset: %v", err)
		return err
	}
	return printJSON(asset)
}

// Update changes the name and/or label of an asset.
func (e *AssetExecutor) Update(ctx context.Context, assetID int64, name, label string) error {
	asset, err := e.client.UpdateAsset(ctx, assetID, model.AssetRequest{Name: name, Label: label})
	if err != nil {
		Stderrf("Could not update asset: %v", err)
		return err
	}
	return printJSON(asset)
}

// Delete removes an asset from its release.
func (e *AssetExecutor) Delete(ctx context.Context, assetID int64) error {
	if err := e.client.DeleteAsset(ctx, assetID); err != nil {
		Stderrf("Could not delete asset: %v", err)
		return err
	}
	fmt.Printf("Deleted asset %d\n", assetID)
	return nil
}

// Upload adds the given files as assets to a release identified by id or
// tag. Files whose name is already taken on the release are skipped, unless
// force is set, in which case the existing asset is replaced.
func (e *AssetExecutor) Upload(ctx context.Context, releaseID int64, tag string, paths []string, contentType string, force bool) error {
	release, err := e.resolveRelease(ctx, releaseID, tag)
	if err != nil {
		return err
	}
	uploaded, skipped, err := uploadArtifacts(ctx, e.client, release, paths, contentType, force)
	if err != nil {
		Stderrf("Could not upload assets: %v", err)
		return err
	}
	if err := printJSON(uploaded); err != nil {
		return err
	}
	if len(skipped) > 0 {
		Stderrf("One or more of the requested artifact(s) were not uploaded successfully; "+
			"conflicting artifact(s) may already exist: %s", strings.Join(skipped, ", "))
		return ErrAssetConflict
	}
	return nil
}

// Download fetches the binary content of an asset and writes it to
// outputPath. An empty outputPath or a directory resolves to the asset name.
// The write is atomic and guarded by a file lock, so concurrent CI jobs
// sharing an output directory don't interleave.
func (e *AssetExecutor) Download(ctx context.Context, assetID int64, outputPath string) error {
	asset, err := e.client.GetAsset(ctx, assetID)
	if err != nil {
		Stderrf("Could not get asset: %v", err)
		return err
	}
	data, err := e.client.DownloadAsset(ctx, assetID)
	if err != nil {
		Stderrf("Could not download asset: %v", err)
		return err
	}

	target, err := resolveDownloadTarget(outputPath, asset.Name)
	if err != nil {
		Stderrf("Invalid output path: %v", err)
		return err
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0770); err != nil {
			Stderrf("Could not create output directory: %v", err)
			return err
		}
	}

	if err := writeLocked(ctx, target, data); err != nil {
		Stderrf("Could not write %s: %v", target, err)
		return err
	}
	fmt.Printf("Downloaded %s (%d bytes) to %s\n", asset.Name, len(data), target)
	return nil
}

func (e *AssetExecutor) resolveRelease(ctx context.Context, releaseID int64, tag string) (model.Release, error) {
	var release model.Release
	var err error
	switch {
	case releaseID != 0:
		release, err = e.client.GetRelease(ctx, releaseID)
	case tag != "":
		release, err = e.client.GetReleaseByTag(ctx, tag)
	default:
		err = ErrNoReleaseRef
	}
	if err != nil {
		Stderrf("Could not look up release: %v", err)
		return model.Release{}, err
	}
	return release, nil
}

func resolveDownloadTarget(outputPath, assetName string) (string, error) {
	if outputPath == "" {
		return assetName, nil
	}
	expanded, err := utils.ExpandHome(outputPath)
	if err != nil {
		return "", err
	}
	if stat, err := os.Stat(expanded); err == nil && stat.IsDir() {
		return filepath.Join(expanded, assetName), nil
	}
	return expanded, nil
}

func writeLocked(ctx context.Context, target string, data []byte) error {
	fl := flock.New(target + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, downloadLockTimeout)
	defer cancel()
	locked, err := fl.TryLockContext(lockCtx, downloadLockRetryDelay)
	if err != nil {
		return err
	}
	if !locked {
		return ErrDownloadLocked
	}
	defer func() {
		_ = fl.Unlock()
		_ = os.Remove(target + ".lock")
	}()
	return utils.AtomicWriteFile(target, data, 0664)
}

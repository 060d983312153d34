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

	"github.com/relm-oss/relm/internal/forge"
	"github.com/relm-oss/relm/internal/model"
)

var (
	ErrNoReleaseRef  = errors.New("at least one of --id and --tag is required")
	ErrAssetConflict = errors.New("conflicting asset(s) already exist")
)

type ReleaseExecutor struct {
	client ForgeClient
}

func NewReleaseExecutor(client ForgeClient) *ReleaseExecutor {
	return &ReleaseExecutor{client: client}
}

// UpdateOptions collects the flags of the create and update commands.
type UpdateOptions struct {
	ID         int64
	Tag        string
	Name       string
	Commit     string
	Body       string
	Draft      bool
	Prerelease bool
	Force      bool
	OutputID   bool
	Artifacts  []string
}

// Get prints a release looked up by id or by tag. With outputID, only the
// numeric release id is printed, for use in shell pipelines.
func (e *ReleaseExecutor) Get(ctx context.Context, releaseID int64, tag string, outputID bool) error {
	release, found, err := e.find(ctx, releaseID, tag)
	if err != nil {
		Stderrf("Could not get release: %v", err)
		return err
	}
	if !found {
		Stderrf("Release not found")
		return forge.ErrNotFound
	}
	return e.print(release, outputID)
}

// List prints a table of all releases of the repository.
func (e *ReleaseExecutor) List(ctx context.Context) error {
	releases, err := e.client.ListReleases(ctx)
	if err != nil {
		Stderrf("Could not list releases: %v", err)
		return err
	}
	table := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(table, "ID\tTAG\tNAME\tDRAFT\tPRERELEASE\tPUBLISHED\n")
	for _, r := range releases {
		published := "-"
		if r.PublishedAt != nil {
			published = r.PublishedAt.UTC().Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(table, "%d\t%s\t%s\t%t\t%t\t%s\n", r.ID, r.TagName, r.Name, r.Draft, r.Prerelease, published)
	}
	_ = table.Flush()
	return nil
}

// Latest prints the release with the highest semantic-version tag.
func (e *ReleaseExecutor) Latest(ctx context.Context, includePrereleases, outputID bool) error {
	release, err := e.client.LatestRelease(ctx, includePrereleases)
	if err != nil {
		Stderrf("Could not determine latest release: %v", err)
		return err
	}
	return e.print(release, outputID)
}

// Create creates a new release, uploads the given artifact files as its
// assets and prints the result.
func (e *ReleaseExecutor) Create(ctx context.Context, opts UpdateOptions) error {
	if opts.Tag == "" {
		Stderrf("--tag is required")
		return ErrNoReleaseRef
	}
	release, err := e.client.CreateRelease(ctx, requestFromOptions(opts, opts.Tag))
	if err != nil {
		Stderrf("Could not create release: %v", err)
		return err
	}
	if len(opts.Artifacts) == 0 {
		return e.print(release, opts.OutputID)
	}
	newAssets, _, err := uploadArtifacts(ctx, e.client, release, opts.Artifacts, "", false)
	if err != nil {
		Stderrf("Could not upload assets: %v", err)
		return err
	}
	if opts.OutputID {
		fmt.Println(release.ID)
		return nil
	}
	result := struct {
		Release   model.Release `json:"release"`
		NewAssets []model.Asset `json:"new_assets"`
	}{release, newAssets}
	return printJSON(result)
}

// Update creates or updates a release identified by id or tag, then uploads
// the given artifact files as assets. Artifacts whose name is already taken
// on the release are skipped, unless force is set, in which case the existing
// asset is deleted first.
func (e *ReleaseExecutor) Update(ctx context.Context, opts UpdateOptions) error {
	existing, found, err := e.find(ctx, opts.ID, opts.Tag)
	if err != nil {
		Stderrf("Could not look up release: %v", err)
		return err
	}

	tag := opts.Tag
	if tag == "" && found {
		tag = existing.TagName
	}
	if tag == "" {
		Stderrf("Release %d not found and no --tag given to create one", opts.ID)
		return forge.ErrNotFound
	}

	var release model.Release
	if found {
		release, err = e.client.UpdateRelease(ctx, existing.ID, requestFromOptions(opts, tag))
	} else {
		release, err = e.client.CreateRelease(ctx, requestFromOptions(opts, tag))
	}
	if err != nil {
		Stderrf("Could not update release: %v", err)
		return err
	}

	newAssets, skipped, err := uploadArtifacts(ctx, e.client, release, opts.Artifacts, "", opts.Force)
	if err != nil {
		Stderrf("Could not upload assets: %v", err)
		return err
	}

	if opts.OutputID {
		fmt.Println(release.ID)
	} else {
		result := struct {
			Release   model.Release `json:"release"`
			NewAssets []model.Asset `json:"new_assets"`
		}{release, newAssets}
		if err := printJSON(result); err != nil {
			return err
		}
	}

	if len(skipped) > 0 {
		Stderrf("One or more of the requested artifact(s) were not uploaded successfully; "+
			"conflicting artifact(s) may already exist: %s", strings.Join(skipped, ", "))
		return ErrAssetConflict
	}
	return nil
}

// Delete removes a release looked up by id or by tag. The underlying git tag
// stays in place.
func (e *ReleaseExecutor) Delete(ctx context.Context, releaseID int64, tag string) error {
	release, found, err := e.find(ctx, releaseID, tag)
	if err != nil {
		Stderrf("Could not look up release: %v", err)
		return err
	}
	if !found {
		Stderrf("Release not found")
		return forge.ErrNotFound
	}
	if err := e.client.DeleteRelease(ctx, release.ID); err != nil {
		Stderrf("Could not delete release: %v", err)
		return err
	}
	fmt.Printf("Deleted release %d (%s)\n", release.ID, release.TagName)
	return nil
}

func (e *ReleaseExecutor) print(release model.Release, outputID bool) error {
	if outputID {
		fmt.Println(release.ID)
		return nil
	}
	return printJSON(release)
}

// find resolves a release by id, or by tag when no id is given. A 404 from
// the API is reported as found == false, not as an error.
func (e *ReleaseExecutor) find(ctx context.Context, releaseID int64, tag string) (model.Release, bool, error) {
	var release model.Release
	var err error
	switch {
	case releaseID != 0:
		release, err = e.client.GetRelease(ctx, releaseID)
	case tag != "":
		release, err = e.client.GetReleaseByTag(ctx, tag)
	default:
		return model.Release{}, false, ErrNoReleaseRef
	}
	if errors.Is(err, forge.ErrNotFound) {
		return model.Release{}, false, nil
	}
	if err != nil {
		return model.Release{}, false, err
	}
	return release, true, nil
}

func requestFromOptions(opts UpdateOptions, tag string) model.ReleaseRequest {
	request := model.ReleaseRequest{
		TagName:    tag,
		Draft:      &opts.Draft,
		Prerelease: &opts.Prerelease,
	}
	if opts.Name != "" {
		request.Name = opts.Name
	} else {
		request.Name = tag
	}
	if opts.Commit != "" {
		request.TargetCommitish = opts.Commit
	}
	if opts.Body != "" {
		request.Body = opts.Body
	}
	return request
}

func uploadArtifacts(ctx context.Context, client ForgeClient, release model.Release, paths []string, contentType string, force bool) (uploaded []model.Asset, skipped []string, err error) {
	for _, path := range paths {
		name := filepath.Base(path)
		content, err := os.ReadFile(path)
		if err != nil {
			return uploaded, skipped, fmt.Errorf("reading artifact %s: %w", path, err)
		}
		if existing, found := release.FindAssetByName(name); found {
			if !force {
				skipped = append(skipped, name)
				continue
			}
			if err := client.DeleteAsset(ctx, existing.ID); err != nil {
				return uploaded, skipped, fmt.Errorf("replacing asset %s: %w", name, err)
			}
		}
		asset, err := client.UploadAsset(ctx, release.UploadURL, model.AssetRequest{Name: name, Label: name}, content, contentType)
		if err != nil {
			return uploaded, skipped, fmt.Errorf("uploading asset %s: %w", name, err)
		}
		uploaded = append(uploaded, asset)
	}
	return uploaded, skipped, nil
}

package usecase

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/interfaces"
	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

// PublishOutcome is the terminal state of a single asset upload attempt
type PublishOutcome string

const (
	AssetUploaded PublishOutcome = "uploaded"
	AssetReplaced PublishOutcome = "replaced"
	AssetSkipped  PublishOutcome = "skipped"
)

// contentTypes maps file extensions to upload media types. Unknown
// extensions fall back to application/octet-stream.
var contentTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".html": "text/html",
	".json": "application/json",
	".xml":  "application/xml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".tgz":  "application/gzip",
	".tar":  "application/x-tar",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".sh":   "application/x-sh",
	".exe":  "application/vnd.microsoft.portable-executable",
}

// ContentTypeFor derives the upload media type from a file name extension
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// AssetName decides the upload name for one extracted file. An artifact
// that yielded a single file keeps the file's base name; files from a
// multi-file artifact are prefixed with the artifact name to disambiguate.
func AssetName(artifactName, fileBase string, fileCount int) string {
	if fileCount == 1 {
		return fileBase
	}
	return artifactName + "_" + fileBase
}

// AssetPublisher uploads extracted files as release assets, resolving name
// collisions according to its replace policy
type AssetPublisher struct {
	client interfaces.GitHubClient
	policy model.ReplacePolicy
}

// NewAssetPublisher creates a new AssetPublisher
func NewAssetPublisher(client interfaces.GitHubClient, policy model.ReplacePolicy) *AssetPublisher {
	return &AssetPublisher{client: client, policy: policy}
}

// ExistingAssets fetches the current name-to-ID mapping of release assets.
// A listing failure degrades to an empty mapping with a warning so uploads
// proceed unconditionally.
func (p *AssetPublisher) ExistingAssets(ctx context.Context, repo model.RepositoryRef, releaseID int64) map[string]int64 {
	logger := ctxlog.From(ctx)

	assets, err := p.client.ListReleaseAssets(ctx, repo, releaseID)
	if err != nil {
		logger.Warn("failed to list existing release assets, assuming none",
			"release_id", releaseID, "error", err)
		return map[string]int64{}
	}

	existing := make(map[string]int64, len(assets))
	for _, a := range assets {
		existing[a.Name] = a.ID
	}
	return existing
}

// Publish uploads one file under the given name. With the replace policy a
// colliding asset is deleted first and the mapping entry is refreshed with
// the new asset ID; with the skip policy a collision (known from the
// mapping, or reported as a 422 by the API) is a logged no-op.
func (p *AssetPublisher) Publish(ctx context.Context, repo model.RepositoryRef, releaseID int64, file *model.ExtractedFile, name string, existing map[string]int64) (PublishOutcome, error) {
	logger := ctxlog.From(ctx)

	replacing := false
	if id, ok := existing[name]; ok {
		if p.policy == model.PolicySkip {
			logger.Info("release asset already exists, skipping upload", "name", name)
			return AssetSkipped, nil
		}

		if err := p.client.DeleteReleaseAsset(ctx, repo, id); err != nil {
			return "", goerr.Wrap(err, "failed to delete existing release asset",
				goerr.V("name", name), goerr.V("asset_id", id))
		}
		delete(existing, name)
		replacing = true
	}

	asset, err := p.client.UploadReleaseAsset(ctx, repo, releaseID, name, ContentTypeFor(name), file.Path)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagConflict) {
			logger.Info("release asset already exists, skipping upload", "name", name)
			return AssetSkipped, nil
		}
		return "", goerr.Wrap(err, "failed to upload release asset",
			goerr.V("name", name), goerr.V("path", file.Path))
	}

	existing[name] = asset.ID

	if replacing {
		return AssetReplaced, nil
	}
	return AssetUploaded, nil
}

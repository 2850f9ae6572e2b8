package interfaces

import (
	"context"

	"github.com/m-mizutani/porter/pkg/domain/model"
)

// GitHubClient defines the hosting API surface consumed by porter. Every
// returned error carries a classification tag from pkg/domain/types.
type GitHubClient interface {
	// DefaultBranch returns the repository's default branch name
	DefaultBranch(ctx context.Context, repo model.RepositoryRef) (string, error)

	// BranchHead resolves a branch to its current tip commit SHA
	BranchHead(ctx context.Context, repo model.RepositoryRef, branch string) (string, error)

	// GetTagRef returns the SHA a tag currently points at. A missing tag
	// yields an error tagged types.ErrTagNotFound.
	GetTagRef(ctx context.Context, repo model.RepositoryRef, tag string) (string, error)

	// CreateTagRef creates a new tag ref pointing at sha
	CreateTagRef(ctx context.Context, repo model.RepositoryRef, tag, sha string) error

	// UpdateTagRef force-moves an existing tag ref to sha
	UpdateTagRef(ctx context.Context, repo model.RepositoryRef, tag, sha string) error

	// ListRunArtifacts lists all artifacts of a workflow run. A run with no
	// artifacts yields an empty slice, not an error.
	ListRunArtifacts(ctx context.Context, repo model.RepositoryRef, runID int64) ([]*model.Artifact, error)

	// DownloadArtifact streams the artifact's zip archive to destPath. On
	// failure or timeout the partial file is removed before the error
	// returns.
	DownloadArtifact(ctx context.Context, repo model.RepositoryRef, artifact *model.Artifact, destPath string) error

	// ListReleaseAssets lists the assets currently attached to a release
	ListReleaseAssets(ctx context.Context, repo model.RepositoryRef, releaseID int64) ([]*model.ReleaseAsset, error)

	// UploadReleaseAsset uploads the file at path as a release asset
	UploadReleaseAsset(ctx context.Context, repo model.RepositoryRef, releaseID int64, name, mediaType, path string) (*model.ReleaseAsset, error)

	// DeleteReleaseAsset deletes a release asset by ID
	DeleteReleaseAsset(ctx context.Context, repo model.RepositoryRef, assetID int64) error
}

package interfaces

import (
	"context"

	"github.com/m-mizutani/porter/pkg/domain/model"
)

// TagUseCase defines the tag create/update flow
type TagUseCase interface {
	// ResolveCommit returns the explicit commit if given, otherwise the tip
	// of the repository's default branch
	ResolveCommit(ctx context.Context, repo model.RepositoryRef, explicit string) (string, error)

	// EnsureTag makes the tag point at the requested commit, honoring
	// SkipUpdate. The outcome is always reported through TagResult; the
	// error is non-nil only when the outcome is TagFailed.
	EnsureTag(ctx context.Context, req *model.TagRequest) (*model.TagResult, error)
}

// ReplicateUseCase defines the artifact-to-release replication flow
type ReplicateUseCase interface {
	// Run downloads every artifact of the workflow run, extracts it, and
	// publishes the extracted files as release assets. Per-artifact and
	// per-file failures are logged and skipped; the returned error is
	// non-nil only for fatal conditions, including a run that produced no
	// assets at all from a non-empty artifact list.
	Run(ctx context.Context, req *model.ReplicateRequest) (*model.ReplicationSummary, error)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/interfaces"
	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

type tagUseCase struct {
	client interfaces.GitHubClient
}

// NewTag creates a new instance of TagUseCase
func NewTag(client interfaces.GitHubClient) interfaces.TagUseCase {
	return &tagUseCase{client: client}
}

// ResolveCommit returns the explicit commit verbatim when given, otherwise
// the current tip of the repository's default branch
func (uc *tagUseCase) ResolveCommit(ctx context.Context, repo model.RepositoryRef, explicit string) (string, error) {
	logger := ctxlog.From(ctx)

	if explicit != "" {
		logger.Debug("using explicit commit", "commit", explicit)
		return explicit, nil
	}

	branch, err := uc.client.DefaultBranch(ctx, repo)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve default branch",
			goerr.V("repository", repo.String()))
	}

	sha, err := uc.client.BranchHead(ctx, repo, branch)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve branch head",
			goerr.V("repository", repo.String()), goerr.V("branch", branch))
	}

	logger.Info("resolved commit from default branch",
		"repository", repo.String(),
		"branch", branch,
		"commit", sha,
	)

	return sha, nil
}

// EnsureTag makes the tag point at the requested commit. It issues at most
// one write call: create when the tag is missing, force-update when it
// points elsewhere and SkipUpdate is false, and none otherwise.
func (uc *tagUseCase) EnsureTag(ctx context.Context, req *model.TagRequest) (*model.TagResult, error) {
	logger := ctxlog.From(ctx)

	current, err := uc.client.GetTagRef(ctx, req.Repo, req.Tag)

	switch {
	case err == nil && current == req.Commit:
		logger.Info("tag already points at the requested commit",
			"tag", req.Tag, "commit", req.Commit)
		return &model.TagResult{
			Outcome: model.TagCreated,
			Tag:     req.Tag,
			Commit:  req.Commit,
			Message: fmt.Sprintf("tag %s already points at %s", req.Tag, req.Commit),
		}, nil

	case err == nil && req.SkipUpdate:
		logger.Info("tag exists and skip-update is set, leaving it untouched",
			"tag", req.Tag, "current", current, "requested", req.Commit)
		return &model.TagResult{
			Outcome: model.TagSkipped,
			Tag:     req.Tag,
			Commit:  current,
			Message: fmt.Sprintf("tag %s kept at %s (skip-update)", req.Tag, current),
		}, nil

	case err == nil:
		if err := uc.client.UpdateTagRef(ctx, req.Repo, req.Tag, req.Commit); err != nil {
			return uc.failure(ctx, req, goerr.Wrap(err, "failed to update tag",
				goerr.V("tag", req.Tag), goerr.V("commit", req.Commit)))
		}
		logger.Info("updated tag", "tag", req.Tag, "from", current, "to", req.Commit)
		return &model.TagResult{
			Outcome: model.TagUpdated,
			Tag:     req.Tag,
			Commit:  req.Commit,
			Message: fmt.Sprintf("tag %s moved from %s to %s", req.Tag, current, req.Commit),
		}, nil

	case goerr.HasTag(err, types.ErrTagNotFound):
		if err := uc.client.CreateTagRef(ctx, req.Repo, req.Tag, req.Commit); err != nil {
			return uc.failure(ctx, req, goerr.Wrap(err, "failed to create tag",
				goerr.V("tag", req.Tag), goerr.V("commit", req.Commit)))
		}
		logger.Info("created tag", "tag", req.Tag, "commit", req.Commit)
		return &model.TagResult{
			Outcome: model.TagCreated,
			Tag:     req.Tag,
			Commit:  req.Commit,
			Message: fmt.Sprintf("created tag %s at %s", req.Tag, req.Commit),
		}, nil

	default:
		return uc.failure(ctx, req, goerr.Wrap(err, "failed to look up tag",
			goerr.V("tag", req.Tag)))
	}
}

func (uc *tagUseCase) failure(ctx context.Context, req *model.TagRequest, err error) (*model.TagResult, error) {
	ctxlog.From(ctx).Error("tag operation failed",
		"repository", req.Repo.String(),
		"tag", req.Tag,
		"error", err,
	)
	return &model.TagResult{
		Outcome: model.TagFailed,
		Message: err.Error(),
	}, err
}

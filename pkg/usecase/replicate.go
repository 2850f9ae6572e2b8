package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/interfaces"
	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

type replicateUseCase struct {
	client interfaces.GitHubClient
}

// NewReplicate creates a new instance of ReplicateUseCase
func NewReplicate(client interfaces.GitHubClient) interfaces.ReplicateUseCase {
	return &replicateUseCase{client: client}
}

// Run replicates every artifact of a workflow run into release assets.
// Processing is strictly sequential; one artifact's failure never aborts
// another's. The staging directory name embeds a fresh UUID so concurrent
// CI jobs can share the same parent directory.
func (uc *replicateUseCase) Run(ctx context.Context, req *model.ReplicateRequest) (*model.ReplicationSummary, error) {
	logger := ctxlog.From(ctx)
	summary := &model.ReplicationSummary{}

	artifacts, err := uc.client.ListRunArtifacts(ctx, req.WorkflowRepo, req.RunID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list artifacts for workflow run",
			goerr.V("repository", req.WorkflowRepo.String()), goerr.V("run_id", req.RunID))
	}

	summary.ArtifactsTotal = len(artifacts)
	if len(artifacts) == 0 {
		logger.Info("workflow run has no artifacts, nothing to replicate",
			"repository", req.WorkflowRepo.String(), "run_id", req.RunID)
		return summary, nil
	}

	logger.Info("replicating workflow run artifacts",
		"repository", req.WorkflowRepo.String(),
		"run_id", req.RunID,
		"release_repository", req.ReleaseRepo.String(),
		"release_id", req.ReleaseID,
		"artifacts", len(artifacts),
		"policy", string(req.Policy),
	)

	publisher := NewAssetPublisher(uc.client, req.Policy)
	existing := publisher.ExistingAssets(ctx, req.ReleaseRepo, req.ReleaseID)

	stagingRoot := req.StagingDir
	if stagingRoot == "" {
		stagingRoot = os.TempDir()
	}
	stage := filepath.Join(stagingRoot, "porter-"+uuid.NewString())
	if err := os.MkdirAll(stage, 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create staging directory",
			goerr.V("path", stage), goerr.T(types.ErrTagLocalIO))
	}
	defer func() {
		if err := os.RemoveAll(stage); err != nil {
			logger.Warn("failed to clean up staging directory", "path", stage, "error", err)
		}
	}()

	for _, artifact := range artifacts {
		uploaded, skipped, failed := uc.processArtifact(ctx, req, publisher, existing, stage, artifact)
		summary.FilesUploaded += uploaded
		summary.FilesSkipped += skipped
		switch {
		case failed:
			summary.ArtifactsFailed++
		case uploaded > 0:
			summary.ArtifactsSucceeded++
		}
	}

	logger.Info("replication finished",
		"artifacts_total", summary.ArtifactsTotal,
		"artifacts_succeeded", summary.ArtifactsSucceeded,
		"artifacts_failed", summary.ArtifactsFailed,
		"files_uploaded", summary.FilesUploaded,
		"files_skipped", summary.FilesSkipped,
	)

	// A run that produced no assets at all (neither uploads nor intentional
	// skips) from a non-empty artifact list is an overall failure.
	if summary.FilesUploaded == 0 && summary.FilesSkipped == 0 {
		return summary, goerr.Wrap(types.ErrNoUploads, "replication produced no release assets",
			goerr.V("artifacts", summary.ArtifactsTotal))
	}

	return summary, nil
}

// processArtifact runs download, extraction and publication for a single
// artifact. Failures are logged and reported through the return values;
// staging files are removed unconditionally before returning.
func (uc *replicateUseCase) processArtifact(
	ctx context.Context,
	req *model.ReplicateRequest,
	publisher *AssetPublisher,
	existing map[string]int64,
	stage string,
	artifact *model.Artifact,
) (uploaded, skipped int, failed bool) {
	logger := ctxlog.From(ctx)

	safeName := model.SanitizeName(artifact.Name)
	archivePath := filepath.Join(stage, safeName+".zip")
	extractDir := filepath.Join(stage, safeName)

	defer func() {
		if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove artifact archive", "path", archivePath, "error", err)
		}
		if err := os.RemoveAll(extractDir); err != nil {
			logger.Warn("failed to remove extraction directory", "path", extractDir, "error", err)
		}
	}()

	logger.Info("processing artifact",
		"artifact", artifact.Name,
		"artifact_id", artifact.ID,
		"size_bytes", artifact.SizeBytes,
	)

	if err := uc.client.DownloadArtifact(ctx, req.WorkflowRepo, artifact, archivePath); err != nil {
		logger.Error("failed to download artifact", "artifact", artifact.Name, "error", err)
		return 0, 0, true
	}

	if err := os.MkdirAll(extractDir, 0o700); err != nil {
		logger.Error("failed to create extraction directory",
			"artifact", artifact.Name, "path", extractDir, "error", err)
		return 0, 0, true
	}

	var files []*model.ExtractedFile
	for f, err := range ExtractArchive(ctx, archivePath, extractDir) {
		if err != nil {
			logger.Error("failed to extract artifact archive", "artifact", artifact.Name, "error", err)
			return 0, 0, true
		}
		files = append(files, f)
	}

	if len(files) == 0 {
		logger.Warn("artifact archive contained no files", "artifact", artifact.Name)
		return 0, 0, false
	}

	for _, f := range files {
		name := AssetName(safeName, model.SanitizeName(filepath.Base(f.Path)), len(files))

		outcome, err := publisher.Publish(ctx, req.ReleaseRepo, req.ReleaseID, f, name, existing)
		if err != nil {
			logger.Error("failed to publish extracted file",
				"artifact", artifact.Name, "file", f.EntryName, "name", name, "error", err)
			continue
		}

		if outcome == AssetSkipped {
			skipped++
		} else {
			uploaded++
		}

		logger.Info("published extracted file",
			"artifact", artifact.Name,
			"file", f.EntryName,
			"name", name,
			"size_bytes", f.SizeBytes,
			"outcome", string(outcome),
		)
	}

	return uploaded, skipped, false
}

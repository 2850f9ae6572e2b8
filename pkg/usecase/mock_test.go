package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/porter/pkg/domain/model"
)

// mockGitHubClient is a function-field mock of interfaces.GitHubClient
type mockGitHubClient struct {
	defaultBranchFunc      func(ctx context.Context, repo model.RepositoryRef) (string, error)
	branchHeadFunc         func(ctx context.Context, repo model.RepositoryRef, branch string) (string, error)
	getTagRefFunc          func(ctx context.Context, repo model.RepositoryRef, tag string) (string, error)
	createTagRefFunc       func(ctx context.Context, repo model.RepositoryRef, tag, sha string) error
	updateTagRefFunc       func(ctx context.Context, repo model.RepositoryRef, tag, sha string) error
	listRunArtifactsFunc   func(ctx context.Context, repo model.RepositoryRef, runID int64) ([]*model.Artifact, error)
	downloadArtifactFunc   func(ctx context.Context, repo model.RepositoryRef, artifact *model.Artifact, destPath string) error
	listReleaseAssetsFunc  func(ctx context.Context, repo model.RepositoryRef, releaseID int64) ([]*model.ReleaseAsset, error)
	uploadReleaseAssetFunc func(ctx context.Context, repo model.RepositoryRef, releaseID int64, name, mediaType, path string) (*model.ReleaseAsset, error)
	deleteReleaseAssetFunc func(ctx context.Context, repo model.RepositoryRef, assetID int64) error

	createCalls []string // "tag@sha"
	updateCalls []string
	deleteCalls []int64
	uploadNames []string
}

var errMockNotConfigured = errors.New("mock not configured")

func (m *mockGitHubClient) DefaultBranch(ctx context.Context, repo model.RepositoryRef) (string, error) {
	if m.defaultBranchFunc != nil {
		return m.defaultBranchFunc(ctx, repo)
	}
	return "", errMockNotConfigured
}

func (m *mockGitHubClient) BranchHead(ctx context.Context, repo model.RepositoryRef, branch string) (string, error) {
	if m.branchHeadFunc != nil {
		return m.branchHeadFunc(ctx, repo, branch)
	}
	return "", errMockNotConfigured
}

func (m *mockGitHubClient) GetTagRef(ctx context.Context, repo model.RepositoryRef, tag string) (string, error) {
	if m.getTagRefFunc != nil {
		return m.getTagRefFunc(ctx, repo, tag)
	}
	return "", errMockNotConfigured
}

func (m *mockGitHubClient) CreateTagRef(ctx context.Context, repo model.RepositoryRef, tag, sha string) error {
	m.createCalls = append(m.createCalls, tag+"@"+sha)
	if m.createTagRefFunc != nil {
		return m.createTagRefFunc(ctx, repo, tag, sha)
	}
	return nil
}

func (m *mockGitHubClient) UpdateTagRef(ctx context.Context, repo model.RepositoryRef, tag, sha string) error {
	m.updateCalls = append(m.updateCalls, tag+"@"+sha)
	if m.updateTagRefFunc != nil {
		return m.updateTagRefFunc(ctx, repo, tag, sha)
	}
	return nil
}

func (m *mockGitHubClient) ListRunArtifacts(ctx context.Context, repo model.RepositoryRef, runID int64) ([]*model.Artifact, error) {
	if m.listRunArtifactsFunc != nil {
		return m.listRunArtifactsFunc(ctx, repo, runID)
	}
	return nil, errMockNotConfigured
}

func (m *mockGitHubClient) DownloadArtifact(ctx context.Context, repo model.RepositoryRef, artifact *model.Artifact, destPath string) error {
	if m.downloadArtifactFunc != nil {
		return m.downloadArtifactFunc(ctx, repo, artifact, destPath)
	}
	return errMockNotConfigured
}

func (m *mockGitHubClient) ListReleaseAssets(ctx context.Context, repo model.RepositoryRef, releaseID int64) ([]*model.ReleaseAsset, error) {
	if m.listReleaseAssetsFunc != nil {
		return m.listReleaseAssetsFunc(ctx, repo, releaseID)
	}
	return nil, nil
}

func (m *mockGitHubClient) UploadReleaseAsset(ctx context.Context, repo model.RepositoryRef, releaseID int64, name, mediaType, path string) (*model.ReleaseAsset, error) {
	m.uploadNames = append(m.uploadNames, name)
	if m.uploadReleaseAssetFunc != nil {
		return m.uploadReleaseAssetFunc(ctx, repo, releaseID, name, mediaType, path)
	}
	return &model.ReleaseAsset{ID: int64(len(m.uploadNames)), Name: name}, nil
}

func (m *mockGitHubClient) DeleteReleaseAsset(ctx context.Context, repo model.RepositoryRef, assetID int64) error {
	m.deleteCalls = append(m.deleteCalls, assetID)
	if m.deleteReleaseAssetFunc != nil {
		return m.deleteReleaseAssetFunc(ctx, repo, assetID)
	}
	return nil
}

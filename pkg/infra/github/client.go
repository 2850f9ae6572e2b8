package github

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v74/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/interfaces"
	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

const (
	maxDownloadRedirects   = 5
	defaultConnectTimeout  = 30 * time.Second
	defaultTransferTimeout = 10 * time.Minute
)

// Config holds credentials and transport parameters for the GitHub client.
// Either Token or the App triple (AppID, InstallationID, PrivateKeyPath)
// must be set.
type Config struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string

	// BaseURL / UploadURL override the API endpoints, mainly for tests
	BaseURL   string
	UploadURL string

	// ConnectTimeout and TransferTimeout bound artifact archive downloads
	ConnectTimeout  time.Duration
	TransferTimeout time.Duration
}

type client struct {
	gh         *github.Client
	downloader *http.Client
}

// New creates a GitHub client authenticated with a token or as a GitHub App
// installation
func New(cfg *Config) (interfaces.GitHubClient, error) {
	var gh *github.Client

	switch {
	case cfg.Token != "":
		gh = github.NewClient(nil).WithAuthToken(cfg.Token)

	case cfg.AppID != 0 && cfg.InstallationID != 0 && cfg.PrivateKeyPath != "":
		itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport",
				goerr.V("app_id", cfg.AppID), goerr.T(types.ErrTagBadInput))
		}
		gh = github.NewClient(&http.Client{Transport: itr})

	default:
		return nil, goerr.New("either a token or App credentials (app ID, installation ID, private key) are required",
			goerr.T(types.ErrTagBadInput))
	}

	if cfg.BaseURL != "" {
		base, err := parseEndpoint(cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		gh.BaseURL = base

		upload := base
		if cfg.UploadURL != "" {
			if upload, err = parseEndpoint(cfg.UploadURL); err != nil {
				return nil, err
			}
		}
		gh.UploadURL = upload
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	transferTimeout := cfg.TransferTimeout
	if transferTimeout <= 0 {
		transferTimeout = defaultTransferTimeout
	}

	downloader := &http.Client{
		Timeout: transferTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxDownloadRedirects {
				return goerr.New("too many redirects downloading artifact archive",
					goerr.V("url", req.URL.String()), goerr.T(types.ErrTagUpstream))
			}
			return nil
		},
	}

	return &client{gh: gh, downloader: downloader}, nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid API endpoint URL",
			goerr.V("url", raw), goerr.T(types.ErrTagBadInput))
	}
	return u, nil
}

// tagForStatus maps an HTTP status to an error classification tag option
func tagForStatus(status int) goerr.Option {
	switch status {
	case http.StatusUnauthorized:
		return goerr.T(types.ErrTagUnauthenticated)
	case http.StatusForbidden:
		return goerr.T(types.ErrTagForbidden)
	case http.StatusNotFound:
		return goerr.T(types.ErrTagNotFound)
	case http.StatusGone:
		return goerr.T(types.ErrTagExpired)
	case http.StatusUnprocessableEntity:
		return goerr.T(types.ErrTagConflict)
	default:
		return goerr.T(types.ErrTagUpstream)
	}
}

// classify wraps a go-github error with a tag derived from the response
// status code
func classify(err error, msg string, options ...goerr.Option) error {
	tagOpt := goerr.T(types.ErrTagUpstream)

	var errResp *github.ErrorResponse
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &errResp):
		if errResp.Response != nil {
			tagOpt = tagForStatus(errResp.Response.StatusCode)
		}
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		tagOpt = goerr.T(types.ErrTagForbidden)
	}

	options = append(options, tagOpt)
	return goerr.Wrap(err, msg, options...)
}

func (c *client) DefaultBranch(ctx context.Context, repo model.RepositoryRef) (string, error) {
	r, _, err := c.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return "", classify(err, "failed to get repository", goerr.V("repository", repo.String()))
	}
	return r.GetDefaultBranch(), nil
}

func (c *client) BranchHead(ctx context.Context, repo model.RepositoryRef, branch string) (string, error) {
	b, _, err := c.gh.Repositories.GetBranch(ctx, repo.Owner, repo.Name, branch, maxDownloadRedirects)
	if err != nil {
		return "", classify(err, "failed to get branch",
			goerr.V("repository", repo.String()), goerr.V("branch", branch))
	}
	return b.GetCommit().GetSHA(), nil
}

func (c *client) GetTagRef(ctx context.Context, repo model.RepositoryRef, tag string) (string, error) {
	ref, _, err := c.gh.Git.GetRef(ctx, repo.Owner, repo.Name, "tags/"+tag)
	if err != nil {
		return "", classify(err, "failed to get tag ref",
			goerr.V("repository", repo.String()), goerr.V("tag", tag))
	}
	return ref.GetObject().GetSHA(), nil
}

func (c *client) CreateTagRef(ctx context.Context, repo model.RepositoryRef, tag, sha string) error {
	ref := &github.Reference{
		Ref:    github.Ptr("refs/tags/" + tag),
		Object: &github.GitObject{SHA: github.Ptr(sha)},
	}
	if _, _, err := c.gh.Git.CreateRef(ctx, repo.Owner, repo.Name, ref); err != nil {
		return classify(err, "failed to create tag ref",
			goerr.V("repository", repo.String()), goerr.V("tag", tag), goerr.V("sha", sha))
	}
	return nil
}

func (c *client) UpdateTagRef(ctx context.Context, repo model.RepositoryRef, tag, sha string) error {
	ref := &github.Reference{
		Ref:    github.Ptr("refs/tags/" + tag),
		Object: &github.GitObject{SHA: github.Ptr(sha)},
	}
	if _, _, err := c.gh.Git.UpdateRef(ctx, repo.Owner, repo.Name, ref, true); err != nil {
		return classify(err, "failed to update tag ref",
			goerr.V("repository", repo.String()), goerr.V("tag", tag), goerr.V("sha", sha))
	}
	return nil
}

func (c *client) ListRunArtifacts(ctx context.Context, repo model.RepositoryRef, runID int64) ([]*model.Artifact, error) {
	var artifacts []*model.Artifact

	opts := &github.ListOptions{PerPage: 100}
	for {
		list, resp, err := c.gh.Actions.ListWorkflowRunArtifacts(ctx, repo.Owner, repo.Name, runID, opts)
		if err != nil {
			return nil, classify(err, "failed to list workflow run artifacts",
				goerr.V("repository", repo.String()), goerr.V("run_id", runID))
		}

		for _, a := range list.Artifacts {
			artifacts = append(artifacts, &model.Artifact{
				ID:        a.GetID(),
				Name:      a.GetName(),
				SizeBytes: a.GetSizeInBytes(),
				Expired:   a.GetExpired(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return artifacts, nil
}

func (c *client) DownloadArtifact(ctx context.Context, repo model.RepositoryRef, artifact *model.Artifact, destPath string) error {
	if artifact.Expired {
		return goerr.New("artifact archive has expired",
			goerr.V("artifact", artifact.Name), goerr.T(types.ErrTagExpired))
	}

	// The API responds with a redirect to blob storage; go-github resolves
	// it and hands back the final URL.
	u, _, err := c.gh.Actions.DownloadArtifact(ctx, repo.Owner, repo.Name, artifact.ID, maxDownloadRedirects)
	if err != nil {
		return classify(err, "failed to get artifact download URL",
			goerr.V("repository", repo.String()), goerr.V("artifact", artifact.Name))
	}

	return c.fetchToFile(ctx, u.String(), destPath, artifact.Name)
}

// fetchToFile streams a URL to destPath, removing the partial file on any
// failure. The blob storage URL is pre-signed, so no auth header is sent.
func (c *client) fetchToFile(ctx context.Context, rawURL, destPath, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create download request",
			goerr.V("artifact", name), goerr.T(types.ErrTagUpstream))
	}

	resp, err := c.downloader.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to download artifact archive",
			goerr.V("artifact", name), goerr.T(types.ErrTagUpstream))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected status downloading artifact archive",
			goerr.V("artifact", name), goerr.V("status", resp.StatusCode),
			tagForStatus(resp.StatusCode))
	}

	f, err := os.Create(destPath)
	if err != nil {
		return goerr.Wrap(err, "failed to create archive file",
			goerr.V("path", destPath), goerr.T(types.ErrTagLocalIO))
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(destPath)
		return goerr.Wrap(err, "failed to write archive file",
			goerr.V("artifact", name), goerr.V("path", destPath), goerr.T(types.ErrTagLocalIO))
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(destPath)
		return goerr.Wrap(err, "failed to finalize archive file",
			goerr.V("path", destPath), goerr.T(types.ErrTagLocalIO))
	}

	return nil
}

func (c *client) ListReleaseAssets(ctx context.Context, repo model.RepositoryRef, releaseID int64) ([]*model.ReleaseAsset, error) {
	var assets []*model.ReleaseAsset

	opts := &github.ListOptions{PerPage: 100}
	for {
		list, resp, err := c.gh.Repositories.ListReleaseAssets(ctx, repo.Owner, repo.Name, releaseID, opts)
		if err != nil {
			return nil, classify(err, "failed to list release assets",
				goerr.V("repository", repo.String()), goerr.V("release_id", releaseID))
		}

		for _, a := range list {
			assets = append(assets, &model.ReleaseAsset{
				ID:   a.GetID(),
				Name: a.GetName(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return assets, nil
}

func (c *client) UploadReleaseAsset(ctx context.Context, repo model.RepositoryRef, releaseID int64, name, mediaType, path string) (*model.ReleaseAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open file for upload",
			goerr.V("path", path), goerr.T(types.ErrTagLocalIO))
	}
	defer f.Close()

	opts := &github.UploadOptions{
		Name:      name,
		MediaType: mediaType,
	}
	asset, _, err := c.gh.Repositories.UploadReleaseAsset(ctx, repo.Owner, repo.Name, releaseID, opts, f)
	if err != nil {
		return nil, classify(err, "failed to upload release asset",
			goerr.V("repository", repo.String()), goerr.V("release_id", releaseID), goerr.V("name", name))
	}

	return &model.ReleaseAsset{ID: asset.GetID(), Name: asset.GetName()}, nil
}

func (c *client) DeleteReleaseAsset(ctx context.Context, repo model.RepositoryRef, assetID int64) error {
	if _, err := c.gh.Repositories.DeleteReleaseAsset(ctx, repo.Owner, repo.Name, assetID); err != nil {
		return classify(err, "failed to delete release asset",
			goerr.V("repository", repo.String()), goerr.V("asset_id", assetID))
	}
	return nil
}

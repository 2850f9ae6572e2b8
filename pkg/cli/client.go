package cli

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/cli/config"
	"github.com/m-mizutani/porter/pkg/domain/interfaces"
	"github.com/m-mizutani/porter/pkg/domain/model"
	githubinfra "github.com/m-mizutani/porter/pkg/infra/github"
)

// newGitHubClient builds the hosting API client from CLI configuration
func newGitHubClient(ghCfg *config.GitHub, connectTimeout, transferTimeout time.Duration) (interfaces.GitHubClient, error) {
	cfg := &githubinfra.Config{
		Token:           ghCfg.Token,
		PrivateKeyPath:  ghCfg.PrivateKey,
		BaseURL:         ghCfg.BaseURL,
		ConnectTimeout:  connectTimeout,
		TransferTimeout: transferTimeout,
	}

	if ghCfg.AppID != "" {
		appID, err := model.ParseNumericID(ghCfg.AppID)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid app ID")
		}
		cfg.AppID = appID
	}
	if ghCfg.InstallationID != "" {
		installationID, err := model.ParseNumericID(ghCfg.InstallationID)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid installation ID")
		}
		cfg.InstallationID = installationID
	}

	return githubinfra.New(cfg)
}

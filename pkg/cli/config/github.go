package config

import "github.com/urfave/cli/v3"

// GitHub holds hosting API credentials and endpoint configuration. Either
// Token or the App triple (AppID, InstallationID, PrivateKey) must be set.
type GitHub struct {
	Token          string
	AppID          string
	InstallationID string
	PrivateKey     string
	BaseURL        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("PORTER_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "app-id",
			Usage:       "GitHub App ID (numeric, alternative to --token)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("PORTER_GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "installation-id",
			Usage:       "GitHub App installation ID (numeric)",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("PORTER_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "private-key",
			Usage:       "Path to the GitHub App private key file",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("PORTER_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("PORTER_GITHUB_BASE_URL"),
		},
	}
}

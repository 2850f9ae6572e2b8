package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Replicate holds configuration for the artifact replication flow
type Replicate struct {
	WorkflowRepo    string
	ReleaseRepo     string
	RunID           string
	ReleaseID       string
	ReplacePolicy   string
	StagingDir      string
	ConnectTimeout  time.Duration
	TransferTimeout time.Duration
}

// Flags returns CLI flags for replication configuration
func (c *Replicate) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workflow-repo",
			Usage:       `Repository owning the workflow run, in "owner/name" form`,
			Required:    true,
			Destination: &c.WorkflowRepo,
			Sources:     cli.EnvVars("PORTER_WORKFLOW_REPO", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "release-repo",
			Usage:       "Repository owning the target release (defaults to the workflow repository)",
			Destination: &c.ReleaseRepo,
			Sources:     cli.EnvVars("PORTER_RELEASE_REPO"),
		},
		&cli.StringFlag{
			Name:        "run-id",
			Usage:       "Workflow run ID (numeric)",
			Required:    true,
			Destination: &c.RunID,
			Sources:     cli.EnvVars("PORTER_RUN_ID", "GITHUB_RUN_ID"),
		},
		&cli.StringFlag{
			Name:        "release-id",
			Usage:       "Release ID (numeric)",
			Required:    true,
			Destination: &c.ReleaseID,
			Sources:     cli.EnvVars("PORTER_RELEASE_ID"),
		},
		&cli.StringFlag{
			Name:        "replace-policy",
			Usage:       "What to do when an asset name already exists: replace or skip",
			Value:       "replace",
			Destination: &c.ReplacePolicy,
			Sources:     cli.EnvVars("PORTER_REPLACE_POLICY"),
		},
		&cli.StringFlag{
			Name:        "staging-dir",
			Usage:       "Parent directory for the per-run staging directory (defaults to the OS temp dir)",
			Destination: &c.StagingDir,
			Sources:     cli.EnvVars("PORTER_STAGING_DIR"),
		},
		&cli.DurationFlag{
			Name:        "connect-timeout",
			Usage:       "Connection timeout for artifact downloads",
			Value:       30 * time.Second,
			Destination: &c.ConnectTimeout,
			Sources:     cli.EnvVars("PORTER_CONNECT_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "transfer-timeout",
			Usage:       "Total transfer timeout for one artifact download",
			Value:       10 * time.Minute,
			Destination: &c.TransferTimeout,
			Sources:     cli.EnvVars("PORTER_TRANSFER_TIMEOUT"),
		},
	}
}

package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/porter/pkg/cli/config"
	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/usecase"
	"github.com/m-mizutani/porter/pkg/utils/actions"
	"github.com/urfave/cli/v3"
)

func cmdTag() *cli.Command {
	var (
		githubCfg  config.GitHub
		repository string
		tagName    string
		commit     string
		skipUpdate bool
	)

	flags := append(githubCfg.Flags(),
		&cli.StringFlag{
			Name:        "repository",
			Usage:       `Target repository in "owner/name" form`,
			Required:    true,
			Destination: &repository,
			Sources:     cli.EnvVars("PORTER_REPOSITORY", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Tag name to create or update",
			Required:    true,
			Destination: &tagName,
			Sources:     cli.EnvVars("PORTER_TAG"),
		},
		&cli.StringFlag{
			Name:        "commit",
			Usage:       "Target commit SHA (defaults to the default branch tip)",
			Destination: &commit,
			Sources:     cli.EnvVars("PORTER_COMMIT"),
		},
		&cli.BoolFlag{
			Name:        "skip-update",
			Usage:       "Do not move an existing tag pointing at another commit",
			Destination: &skipUpdate,
			Sources:     cli.EnvVars("PORTER_SKIP_UPDATE"),
		},
	)

	return &cli.Command{
		Name:  "tag",
		Usage: "Create a tag, or move it to the requested commit",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			repo, err := model.ParseRepository(repository)
			if err != nil {
				return err
			}

			client, err := newGitHubClient(&githubCfg, 0, 0)
			if err != nil {
				return err
			}

			uc := usecase.NewTag(client)

			sha, err := uc.ResolveCommit(ctx, repo, commit)
			if err != nil {
				writeTagOutputs(ctx, &model.TagResult{
					Outcome: model.TagFailed,
					Message: err.Error(),
				})
				return err
			}

			result, ensureErr := uc.EnsureTag(ctx, &model.TagRequest{
				Repo:       repo,
				Tag:        tagName,
				Commit:     sha,
				SkipUpdate: skipUpdate,
			})

			writeTagOutputs(ctx, result)

			if ensureErr == nil {
				logger.Info("tag operation completed",
					"result", string(result.Outcome),
					"tag", result.Tag,
					"commit", result.Commit,
				)
			}
			return ensureErr
		},
	}
}

func writeTagOutputs(ctx context.Context, result *model.TagResult) {
	outputs := []actions.Output{
		{Key: "result", Value: string(result.Outcome)},
		{Key: "message", Value: result.Message},
		{Key: "tag", Value: result.Tag},
		{Key: "commit", Value: result.Commit},
	}
	if err := actions.Write(ctx, outputs); err != nil {
		ctxlog.From(ctx).Warn("failed to write action outputs", "error", err)
	}
}

package cli

import (
	"context"

	"github.com/m-mizutani/porter/pkg/cli/config"
	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdReplicate() *cli.Command {
	var (
		githubCfg    config.GitHub
		replicateCfg config.Replicate
	)

	flags := append(githubCfg.Flags(), replicateCfg.Flags()...)

	return &cli.Command{
		Name:  "replicate",
		Usage: "Re-upload workflow run artifacts as release assets",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			workflowRepo, err := model.ParseRepository(replicateCfg.WorkflowRepo)
			if err != nil {
				return err
			}

			releaseRepo := workflowRepo
			if replicateCfg.ReleaseRepo != "" {
				if releaseRepo, err = model.ParseRepository(replicateCfg.ReleaseRepo); err != nil {
					return err
				}
			}

			runID, err := model.ParseNumericID(replicateCfg.RunID)
			if err != nil {
				return err
			}
			releaseID, err := model.ParseNumericID(replicateCfg.ReleaseID)
			if err != nil {
				return err
			}
			policy, err := model.ParseReplacePolicy(replicateCfg.ReplacePolicy)
			if err != nil {
				return err
			}

			client, err := newGitHubClient(&githubCfg, replicateCfg.ConnectTimeout, replicateCfg.TransferTimeout)
			if err != nil {
				return err
			}

			uc := usecase.NewReplicate(client)
			_, err = uc.Run(ctx, &model.ReplicateRequest{
				WorkflowRepo: workflowRepo,
				ReleaseRepo:  releaseRepo,
				RunID:        runID,
				ReleaseID:    releaseID,
				Policy:       policy,
				StagingDir:   replicateCfg.StagingDir,
			})
			return err
		},
	}
}

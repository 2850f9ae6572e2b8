package cli

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/cli/config"
	"github.com/m-mizutani/porter/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) (err error) {
	var loggerCfg config.Logger
	var logger *slog.Logger

	// Nothing may terminate silently: panics become a logged fatal error
	defer func() {
		if r := recover(); r != nil {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("panic in CLI execution",
				slog.Any("recover", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = goerr.New("panic in CLI execution", goerr.V("recover", r))
		}
	}()

	app := &cli.Command{
		Name:    "porter",
		Usage:   "Manage repository tags and replicate workflow artifacts into release assets",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdTag(),
			cmdReplicate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

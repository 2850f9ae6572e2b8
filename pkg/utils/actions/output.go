package actions

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

// Output is one key/value pair destined for the workflow output file
type Output struct {
	Key   string
	Value string
}

// Write appends outputs to the file named by GITHUB_OUTPUT, in the format
// GitHub Actions consumes. Multiline values use the heredoc form with a
// random delimiter so a value can never terminate itself. Outside of a
// workflow (no GITHUB_OUTPUT), outputs are only logged.
func Write(ctx context.Context, outputs []Output) error {
	logger := ctxlog.From(ctx)

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		for _, o := range outputs {
			logger.Debug("action output", "key", o.Key, "value", o.Value)
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return goerr.Wrap(err, "failed to open output file",
			goerr.V("path", path), goerr.T(types.ErrTagLocalIO))
	}

	for _, o := range outputs {
		if strings.ContainsAny(o.Value, "\r\n") {
			delimiter := "ghadelimiter_" + uuid.NewString()
			_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", o.Key, delimiter, o.Value, delimiter)
		} else {
			_, err = fmt.Fprintf(f, "%s=%s\n", o.Key, o.Value)
		}
		if err != nil {
			_ = f.Close()
			return goerr.Wrap(err, "failed to write output",
				goerr.V("key", o.Key), goerr.T(types.ErrTagLocalIO))
		}
	}

	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close output file",
			goerr.V("path", path), goerr.T(types.ErrTagLocalIO))
	}

	return nil
}

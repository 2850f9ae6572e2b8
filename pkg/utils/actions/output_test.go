package actions_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/porter/pkg/utils/actions"
)

func TestWrite_AppendsToOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	gt.NoError(t, os.WriteFile(path, []byte("existing=1\n"), 0o644))
	t.Setenv("GITHUB_OUTPUT", path)

	err := actions.Write(context.Background(), []actions.Output{
		{Key: "result", Value: "created"},
		{Key: "tag", Value: "v1"},
	})
	gt.NoError(t, err)

	content, err := os.ReadFile(path)
	gt.NoError(t, err)

	// earlier content preserved, new lines appended
	gt.String(t, string(content)).Contains("existing=1\n")
	gt.String(t, string(content)).Contains("result=created\n")
	gt.String(t, string(content)).Contains("tag=v1\n")
}

func TestWrite_MultilineValueUsesHeredoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", path)

	err := actions.Write(context.Background(), []actions.Output{
		{Key: "message", Value: "line one\nline two"},
	})
	gt.NoError(t, err)

	content, err := os.ReadFile(path)
	gt.NoError(t, err)

	text := string(content)
	gt.String(t, text).Contains("message<<ghadelimiter_")
	gt.String(t, text).Contains("line one\nline two\n")

	// delimiter opens and closes
	gt.Number(t, strings.Count(text, "ghadelimiter_")).Equal(2)
}

func TestWrite_NoOutputFileIsNoop(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")

	err := actions.Write(context.Background(), []actions.Output{
		{Key: "result", Value: "created"},
	})
	gt.NoError(t, err)
}

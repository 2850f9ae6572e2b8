package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/usecase"
)

// writeZip builds a zip archive on disk from entry name to content.
// Entries with a trailing slash become directory entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		if strings.HasSuffix(name, "/") {
			_, err := zw.Create(name)
			gt.NoError(t, err)
			continue
		}
		w, err := zw.Create(name)
		gt.NoError(t, err)
		_, err = w.Write([]byte(content))
		gt.NoError(t, err)
	}
	gt.NoError(t, zw.Close())
	gt.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func collectFiles(t *testing.T, archivePath, destDir string) []*model.ExtractedFile {
	t.Helper()

	var files []*model.ExtractedFile
	for f, err := range usecase.ExtractArchive(context.Background(), archivePath, destDir) {
		gt.NoError(t, err)
		files = append(files, f)
	}
	return files
}

func TestExtractArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "artifact.zip")
	writeZip(t, archivePath, map[string]string{
		"README.md":       "# readme",
		"bin/app":         "binary content",
		"docs/":           "",
		"docs/manual.txt": "manual",
	})

	destDir := filepath.Join(dir, "out")
	gt.NoError(t, os.MkdirAll(destDir, 0o700))

	files := collectFiles(t, archivePath, destDir)
	gt.Number(t, len(files)).Equal(3)

	byEntry := map[string]*model.ExtractedFile{}
	for _, f := range files {
		byEntry[f.EntryName] = f
	}

	readme := byEntry["README.md"]
	gt.Value(t, readme).NotNil()
	content, err := os.ReadFile(readme.Path)
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("# readme")
	gt.Value(t, readme.SizeBytes).Equal(int64(len("# readme")))

	app := byEntry["bin/app"]
	gt.Value(t, app).NotNil()
	gt.Value(t, app.Path).Equal(filepath.Join(destDir, "bin", "app"))

	// directory entry created a directory, not a file
	info, err := os.Stat(filepath.Join(destDir, "docs"))
	gt.NoError(t, err)
	gt.Value(t, info.IsDir()).Equal(true)
}

func TestExtractArchive_PathTraversalEntrySkipped(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.zip")
	writeZip(t, archivePath, map[string]string{
		"../../etc/passwd": "root:x:0:0",
		"/abs/path.txt":    "abs",
		"ok.txt":           "fine",
	})

	destDir := filepath.Join(dir, "out")
	gt.NoError(t, os.MkdirAll(destDir, 0o700))

	files := collectFiles(t, archivePath, destDir)

	// every extracted file resolves inside the extraction root
	root := filepath.Clean(destDir) + string(os.PathSeparator)
	for _, f := range files {
		gt.Value(t, strings.HasPrefix(f.Path, root)).Equal(true)
	}

	// the traversal target was never written outside the root
	_, err := os.Stat(filepath.Join(dir, "etc", "passwd"))
	gt.Error(t, err)

	byEntry := map[string]bool{}
	for _, f := range files {
		byEntry[f.EntryName] = true
	}
	gt.Value(t, byEntry["ok.txt"]).Equal(true)

	// the stripped names land inside the root
	for _, f := range files {
		content, err := os.ReadFile(f.Path)
		gt.NoError(t, err)
		gt.Number(t, len(content)).Greater(0)
	}
}

func TestExtractArchive_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "broken.zip")
	gt.NoError(t, os.WriteFile(archivePath, []byte("this is not a zip"), 0o644))

	destDir := filepath.Join(dir, "out")
	gt.NoError(t, os.MkdirAll(destDir, 0o700))

	var gotErr error
	for _, err := range usecase.ExtractArchive(context.Background(), archivePath, destDir) {
		if err != nil {
			gotErr = err
			break
		}
	}
	gt.Error(t, gotErr)
}

func TestExtractArchive_EarlyStop(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "many.zip")
	writeZip(t, archivePath, map[string]string{
		"a.txt": "a",
		"b.txt": "b",
		"c.txt": "c",
	})

	destDir := filepath.Join(dir, "out")
	gt.NoError(t, os.MkdirAll(destDir, 0o700))

	count := 0
	for _, err := range usecase.ExtractArchive(context.Background(), archivePath, destDir) {
		gt.NoError(t, err)
		count++
		if count == 1 {
			break
		}
	}
	gt.Number(t, count).Equal(1)
}

func TestExtractArchive_EmptyArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "empty.zip")
	writeZip(t, archivePath, map[string]string{})

	destDir := filepath.Join(dir, "out")
	gt.NoError(t, os.MkdirAll(destDir, 0o700))

	files := collectFiles(t, archivePath, destDir)
	gt.Number(t, len(files)).Equal(0)
}

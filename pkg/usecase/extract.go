package usecase

import (
	"archive/zip"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/model"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

// ExtractArchive opens the zip archive at archivePath and yields its
// regular files one at a time as they are written under destDir. The
// sequence is finite and non-restartable; the archive handle is released
// when iteration finishes or the consumer stops early.
//
// Directory entries only create directories. Entries whose name would
// resolve outside destDir are skipped with a warning. Any I/O failure
// terminates the sequence with an error, and the caller should treat the
// whole archive as failed.
func ExtractArchive(ctx context.Context, archivePath, destDir string) iter.Seq2[*model.ExtractedFile, error] {
	return func(yield func(*model.ExtractedFile, error) bool) {
		logger := ctxlog.From(ctx)

		zr, err := zip.OpenReader(archivePath)
		if err != nil {
			yield(nil, goerr.Wrap(err, "failed to open artifact archive",
				goerr.V("path", archivePath), goerr.T(types.ErrTagLocalIO)))
			return
		}
		defer zr.Close()

		root := filepath.Clean(destDir) + string(os.PathSeparator)

		for _, entry := range zr.File {
			rel, ok := safeEntryPath(entry.Name)
			if !ok {
				logger.Warn("skipping archive entry with unsafe name", "entry", entry.Name)
				continue
			}

			dest := filepath.Join(destDir, rel)
			if !strings.HasPrefix(dest, root) {
				logger.Warn("skipping archive entry resolving outside extraction root",
					"entry", entry.Name)
				continue
			}

			if isDirEntry(entry) {
				if err := os.MkdirAll(dest, 0o755); err != nil {
					yield(nil, goerr.Wrap(err, "failed to create directory from archive entry",
						goerr.V("entry", entry.Name), goerr.T(types.ErrTagLocalIO)))
					return
				}
				continue
			}

			written, err := writeEntry(entry, dest)
			if err != nil {
				yield(nil, err)
				return
			}

			file := &model.ExtractedFile{
				EntryName: entry.Name,
				Path:      dest,
				SizeBytes: written,
			}
			if !yield(file, nil) {
				return
			}
		}
	}
}

// safeEntryPath rebuilds an archive entry name from its path segments,
// dropping empty, "." and ".." segments. ok is false when nothing remains.
func safeEntryPath(name string) (string, bool) {
	var parts []string
	for _, seg := range strings.Split(name, "/") {
		switch seg {
		case "", ".", "..":
			continue
		}
		parts = append(parts, seg)
	}
	if len(parts) == 0 {
		return "", false
	}
	return filepath.Join(parts...), true
}

func isDirEntry(entry *zip.File) bool {
	return strings.HasSuffix(entry.Name, "/") || entry.FileInfo().IsDir()
}

// writeEntry streams one archive entry to dest, creating parent directories
// as needed
func writeEntry(entry *zip.File, dest string) (int64, error) {
	rc, err := entry.Open()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open archive entry",
			goerr.V("entry", entry.Name), goerr.T(types.ErrTagLocalIO))
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, goerr.Wrap(err, "failed to create parent directories",
			goerr.V("path", filepath.Dir(dest)), goerr.T(types.ErrTagLocalIO))
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create extracted file",
			goerr.V("path", dest), goerr.T(types.ErrTagLocalIO))
	}

	written, err := io.Copy(f, rc)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return 0, goerr.Wrap(err, "failed to write extracted file",
			goerr.V("entry", entry.Name), goerr.V("path", dest), goerr.T(types.ErrTagLocalIO))
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return 0, goerr.Wrap(err, "failed to finalize extracted file",
			goerr.V("path", dest), goerr.T(types.ErrTagLocalIO))
	}

	return written, nil
}

package email

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriter persists a generated document and returns where it went.
type OutputWriter interface {
	Write(ctx context.Context, slug, lang, html string) (string, error)
}

// FileName is the file name of a generated document: "<slug>-<lang>.html".
func FileName(slug, lang string) string {
	return slug + "-" + lang + ".html"
}

// LocalWriter writes documents into a directory on disk.
type LocalWriter struct {
	dir string
}

// NewLocalWriter creates a writer for dir. The directory is created on first write.
func NewLocalWriter(dir string) *LocalWriter {
	return &LocalWriter{dir: dir}
}

// Dir returns the output directory.
func (w *LocalWriter) Dir() string {
	return w.dir
}

// Write creates or overwrites <dir>/<slug>-<lang>.html.
func (w *LocalWriter) Write(ctx context.Context, slug, lang, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: create directory: %v", ErrWriteOutput, err)
	}

	path := filepath.Join(w.dir, FileName(slug, lang))
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return path, nil
}

type teeWriter struct {
	primary OutputWriter
	mirrors []OutputWriter
}

// TeeWriter writes to primary and then to every mirror.
// The returned location is the primary one; any failure fails the write.
func TeeWriter(primary OutputWriter, mirrors ...OutputWriter) OutputWriter {
	if len(mirrors) == 0 {
		return primary
	}
	return &teeWriter{primary: primary, mirrors: mirrors}
}

func (t *teeWriter) Write(ctx context.Context, slug, lang, html string) (string, error) {
	location, err := t.primary.Write(ctx, slug, lang, html)
	if err != nil {
		return "", err
	}

	var errs []error
	for _, m := range t.mirrors {
		if _, err := m.Write(ctx, slug, lang, html); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return location, errors.Join(errs...)
	}
	return location, nil
}

package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// extensions lists the locale file formats in lookup order.
var extensions = []string{"json", "yaml", "yml"}

// Loader reads locale dictionaries from disk.
//
// For a template slug and a language it merges, in order:
//
//	<global dir>/<lang>.{json,yaml,yml}              for every global dir
//	<templates dir>/<slug>/locales/<lang>.{json,yaml,yml}
//
// Later files override earlier keys, so template overrides win over the
// shared dictionary. Missing files are skipped.
type Loader struct {
	globalDirs   []string
	templatesDir string
	logger       *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithGlobalDirs appends shared locale directories, lowest priority first.
func WithGlobalDirs(dirs ...string) LoaderOption {
	return func(l *Loader) {
		for _, d := range dirs {
			if d != "" {
				l.globalDirs = append(l.globalDirs, d)
			}
		}
	}
}

// WithTemplatesDir sets the root of the per-template override directories.
func WithTemplatesDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.templatesDir = dir
	}
}

// WithLogger sets the logger. If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dirs returns every directory the loader may read for slug, in merge order.
// An empty slug returns only the global directories.
func (l *Loader) Dirs(slug string) []string {
	dirs := make([]string, 0, len(l.globalDirs)+1)
	dirs = append(dirs, l.globalDirs...)
	if l.templatesDir != "" && slug != "" {
		dirs = append(dirs, filepath.Join(l.templatesDir, slug, "locales"))
	}
	return dirs
}

// Load returns the merged dictionary for slug and lang. If no locale file
// exists the dictionary is empty. A file that cannot be read or decoded
// fails the whole load with ErrLocaleLoad.
func (l *Loader) Load(ctx context.Context, slug, lang string) (Dictionary, error) {
	if _, err := NormalizeLang(lang); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocaleLoad, err)
	}

	dict := make(Dictionary)
	for _, dir := range l.Dirs(slug) {
		for _, ext := range extensions {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrLocaleLoad, err)
			}

			path := filepath.Join(dir, lang+"."+ext)
			part, err := l.loadFile(ctx, path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}

			l.logger.DebugContext(ctx, "locale file loaded",
				slog.String("path", path),
				slog.Int("keys", len(part)),
			)
			dict.Merge(part)
		}
	}
	return dict, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) (Dictionary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrLocaleLoad, path, err)
	}

	parser := NewParserForFile(path)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s: unsupported file type", ErrLocaleLoad, path)
	}

	data, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLocaleLoad, path, err)
	}

	dict := make(Dictionary)
	flatten("", data, dict)
	return dict, nil
}

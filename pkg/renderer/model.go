package renderer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrymomot/emailkit/pkg/i18n"
)

// Model is the data a template renders with. Values come from model files
// and from the caller.
type Model map[string]any

// String returns the value under key formatted as a string, or fallback.
func (m Model) String(key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// Bool reports whether the value under key is true or "true".
func (m Model) Bool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Merge returns a new model with the values of over applied on top of m.
func (m Model) Merge(over Model) Model {
	out := make(Model, len(m)+len(over))
	maps.Copy(out, m)
	maps.Copy(out, over)
	return out
}

var modelExtensions = []string{"json", "yaml", "yml"}

// ModelLoader reads default model data from <dir>/<slug>.{json,yaml,yml}.
// The first existing file wins.
type ModelLoader struct {
	dir string
}

// NewModelLoader creates a loader reading from dir.
func NewModelLoader(dir string) *ModelLoader {
	return &ModelLoader{dir: dir}
}

// Load returns the default model for slug. A missing file yields an empty
// model; an unreadable or malformed one fails with ErrModelLoad.
func (l *ModelLoader) Load(ctx context.Context, slug string) (Model, error) {
	if l == nil || l.dir == "" {
		return Model{}, nil
	}

	for _, ext := range modelExtensions {
		path := filepath.Join(l.dir, slug+"."+ext)
		content, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrModelLoad, path, err)
		}

		data, err := i18n.NewParserForFile(path).Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrModelLoad, path, err)
		}
		return Model(data), nil
	}
	return Model{}, nil
}

package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes the content of one locale file into a (possibly nested)
// key/value map. A locale file holds a single language.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]any, error)

	// SupportsFileExtension reports whether the parser handles ext.
	// The extension may or may not include a leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

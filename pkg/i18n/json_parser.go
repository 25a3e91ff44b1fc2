package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// JSONParser implements Parser for JSON locale files.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser instance
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse decodes a JSON object. Any other top-level value is an error.
func (p *JSONParser) Parse(ctx context.Context, content []byte) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

// SupportsFileExtension checks if the parser supports the given file extension
func (p *JSONParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "json")
}

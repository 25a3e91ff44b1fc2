package i18n_test

import (
	"context"
	"testing"

	"github.com/dmitrymomot/emailkit/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser(t *testing.T) {
	t.Parallel()
	parser := i18n.NewJSONParser()

	t.Run("Parse valid JSON", func(t *testing.T) {
		t.Parallel()
		content := `{
			"title": "Hello",
			"details": {
				"device": "Device"
			}
		}`

		result, err := parser.Parse(context.Background(), []byte(content))
		require.NoError(t, err)

		assert.Equal(t, "Hello", result["title"])
		nested, ok := result["details"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Device", nested["device"])
	})

	t.Run("Parse invalid JSON", func(t *testing.T) {
		t.Parallel()

		result, err := parser.Parse(context.Background(), []byte(`{"title": "Hello",}`))
		require.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
		assert.Nil(t, result)
	})

	t.Run("Top level array is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := parser.Parse(context.Background(), []byte(`["a", "b"]`))
		require.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("Null document is empty", func(t *testing.T) {
		t.Parallel()

		result, err := parser.Parse(context.Background(), []byte(`null`))
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := parser.Parse(ctx, []byte(`{"title": "Hello"}`))
		require.ErrorIs(t, err, i18n.ErrParsingCancelled)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})
}

func TestYAMLParser(t *testing.T) {
	t.Parallel()
	parser := i18n.NewYAMLParser()

	t.Run("Parse valid YAML", func(t *testing.T) {
		t.Parallel()
		content := "title: Hello\ndetails:\n  device: Device\n"

		result, err := parser.Parse(context.Background(), []byte(content))
		require.NoError(t, err)

		assert.Equal(t, "Hello", result["title"])
		nested, ok := result["details"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Device", nested["device"])
	})

	t.Run("Parse invalid YAML", func(t *testing.T) {
		t.Parallel()

		result, err := parser.Parse(context.Background(), []byte("title: [unclosed\n"))
		require.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
		assert.Nil(t, result)
	})

	t.Run("Empty document", func(t *testing.T) {
		t.Parallel()

		result, err := parser.Parse(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := parser.Parse(ctx, []byte("title: Hello"))
		require.ErrorIs(t, err, i18n.ErrParsingCancelled)
	})
}

func TestParserFactory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		json     bool
		yaml     bool
	}{
		{filename: "en.json", json: true},
		{filename: "locales/EN.JSON", json: true},
		{filename: "en.yaml", yaml: true},
		{filename: "en.yml", yaml: true},
		{filename: "en.toml"},
		{filename: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			parser := i18n.NewParserForFile(tt.filename)
			switch {
			case tt.json:
				assert.IsType(t, &i18n.JSONParser{}, parser)
			case tt.yaml:
				assert.IsType(t, &i18n.YAMLParser{}, parser)
			default:
				assert.Nil(t, parser)
			}
		})
	}

	assert.True(t, i18n.NewJSONParser().SupportsFileExtension(".json"))
	assert.False(t, i18n.NewJSONParser().SupportsFileExtension("yaml"))
	assert.True(t, i18n.NewYAMLParser().SupportsFileExtension("YML"))
}

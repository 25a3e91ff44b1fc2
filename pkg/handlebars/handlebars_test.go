package handlebars_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailkit/pkg/handlebars"
)

func TestVariable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple name", input: "first_name", expected: "{{first_name}}"},
		{name: "dotted path", input: "user.email", expected: "{{user.email}}"},
		{name: "empty name passes through", input: "", expected: "{{}}"},
		{name: "already braced name passes through", input: "{{x}}", expected: "{{{{x}}}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, handlebars.Variable(tt.input))
		})
	}
}

func TestConditional(t *testing.T) {
	t.Parallel()

	got := handlebars.Conditional("has_discount", "<p>10% off</p>")
	assert.Equal(t, "{{#if has_discount}}<p>10% off</p>{{/if}}", got)

	assert.Equal(t, "{{#if x}}{{/if}}", handlebars.Conditional("x", ""))
}

func TestIteration(t *testing.T) {
	t.Parallel()

	got := handlebars.Iteration("items", "<li>{{name}}</li>")
	assert.Equal(t, "{{#each items}}<li>{{name}}</li>{{/each}}", got)
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestComponents(t *testing.T) {
	t.Parallel()

	t.Run("var is written unescaped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "{{a&b}}", render(t, handlebars.Var("a&b")))
	})

	t.Run("if wraps rendered children", func(t *testing.T) {
		t.Parallel()
		got := render(t, handlebars.If("show", text("<p>"), handlebars.Var("name"), text("</p>")))
		assert.Equal(t, "{{#if show}}<p>{{name}}</p>{{/if}}", got)
	})

	t.Run("each wraps rendered children", func(t *testing.T) {
		t.Parallel()
		got := render(t, handlebars.Each("rows", text("<tr></tr>")))
		assert.Equal(t, "{{#each rows}}<tr></tr>{{/each}}", got)
	})

	t.Run("nil children are skipped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "{{#if x}}{{/if}}", render(t, handlebars.If("x", nil)))
	})

	t.Run("child error is returned", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

		var sb strings.Builder
		err := handlebars.Each("rows", failing).Render(context.Background(), &sb)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, sb.String())
	})

	t.Run("context reaches children", func(t *testing.T) {
		t.Parallel()
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "seen")
		echo := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			v, _ := ctx.Value(key{}).(string)
			_, err := io.WriteString(w, v)
			return err
		})

		var sb strings.Builder
		require.NoError(t, handlebars.If("x", echo).Render(ctx, &sb))
		assert.Equal(t, "{{#if x}}seen{{/if}}", sb.String())
	})
}

package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/emailkit/pkg/style"
)

// Render renders a templ.Component to a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderWithStyles renders tpl inside a fresh style chunk and returns the
// markup together with every rule the components used.
func RenderWithStyles(ctx context.Context, tpl templ.Component) (string, *style.Chunk, error) {
	chunk := style.NewChunk()
	html, err := Render(style.WithChunk(ctx, chunk), tpl)
	if err != nil {
		return "", nil, err
	}
	return html, chunk, nil
}

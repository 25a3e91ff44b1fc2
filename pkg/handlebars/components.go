package handlebars

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Var is a templ component writing the {{name}} token.
// The token is written as is, without HTML escaping, so the personalization
// engine receives exactly what Variable returns.
func Var(name string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Variable(name))
		return err
	})
}

// If renders children with the caller's context and wraps the result
// into an {{#if cond}} block.
func If(cond string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		inner, err := renderChildren(ctx, children)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, Conditional(cond, inner))
		return err
	})
}

// Each renders children with the caller's context and wraps the result
// into an {{#each list}} block.
func Each(list string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		inner, err := renderChildren(ctx, children)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, Iteration(list, inner))
		return err
	})
}

// renderChildren flattens children into a static string. The context is passed
// through so any style rules used by the children land in the same chunk.
func renderChildren(ctx context.Context, children []templ.Component) (string, error) {
	var sb strings.Builder
	for _, c := range children {
		if c == nil {
			continue
		}
		if err := c.Render(ctx, &sb); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

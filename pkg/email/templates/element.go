package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/emailkit/pkg/style"
)

// Attr is a single HTML attribute. Attributes render in declaration order.
type Attr struct {
	Name  string
	Value string
}

// Attrs builds attributes from name/value pairs. A trailing name without a
// value is ignored.
func Attrs(pairs ...string) []Attr {
	out := make([]Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// Element is an HTML element whose style rules become class names at render
// time. The rules are recorded into the style chunk of the render context.
type Element struct {
	Tag      string
	Attrs    []Attr
	Styles   []style.Rule
	Children []templ.Component
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// IsVoid reports whether tag never has children or a closing tag.
func IsVoid(tag string) bool {
	_, ok := voidElements[strings.ToLower(tag)]
	return ok
}

// Render implements templ.Component.
func (e Element) Render(ctx context.Context, w io.Writer) error {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(e.Tag)

	class := style.Class(ctx, e.Styles...)
	classWritten := false
	for _, a := range e.Attrs {
		value := a.Value
		if a.Name == "class" && class != "" {
			value = joinClass(value, class)
			classWritten = true
		}
		writeAttr(&b, a.Name, value)
	}
	if class != "" && !classWritten {
		writeAttr(&b, "class", class)
	}

	if IsVoid(e.Tag) {
		b.WriteString("/>")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(">")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, child := range e.Children {
		if child == nil {
			continue
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+e.Tag+">")
	return err
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(templ.EscapeString(value))
	b.WriteString(`"`)
}

func joinClass(a, b string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return b
	}
	return a + " " + b
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Raw renders s without escaping.
func Raw(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// Fragment renders children one after another without a wrapping element.
func Fragment(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

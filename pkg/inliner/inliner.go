package inliner

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/emailkit/pkg/style"
)

// Inline turns rendered markup and the rules collected while rendering it into
// a standalone HTML document where every rule is written into the style
// attribute of the elements it matches. The result has no <style> blocks.
//
// Handlebars tokens ({{...}}) are written back byte for byte, wherever they
// sit: in text, in attribute values or between table rows. Malformed markup
// fails with ErrStyleInlining.
func Inline(markup string, chunk *style.Chunk, opts ...Option) (string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var ph placeholders
	protected, err := ph.protect(markup)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleInlining, err)
	}
	if err := validate(protected); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleInlining, err)
	}
	anchored, err := ph.anchor(protected)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleInlining, err)
	}

	doc, err := html.Parse(strings.NewReader(compose(anchored, chunk.Stylesheet())))
	if err != nil {
		return "", fmt.Errorf("%w: parse document: %v", ErrStyleInlining, err)
	}

	styleNodes := findStyleNodes(doc)
	rules, err := collectRules(styleNodes, o.logger)
	if err != nil {
		return "", err
	}
	for _, n := range styleNodes {
		n.Parent.RemoveChild(n)
	}

	if err := applyRules(doc, rules); err != nil {
		return "", err
	}

	if o.tableAttributes {
		if err := applyTableAttributes(doc); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: render document: %v", ErrStyleInlining, err)
	}
	return ph.restore(buf.String()), nil
}

func compose(markup, stylesheet string) string {
	var b strings.Builder
	b.Grow(len(markup) + len(stylesheet) + 128)
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"/><style>`)
	b.WriteString(stylesheet)
	b.WriteString(`</style></head><body>`)
	b.WriteString(markup)
	b.WriteString(`</body></html>`)
	return b.String()
}

// selectorRule is one inlinable selector of a stylesheet rule.
type selectorRule struct {
	sel   cascadia.Sel
	spec  cascadia.Specificity
	decls []style.Declaration
}

func findStyleNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style {
			nodes = append(nodes, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

func collectRules(styleNodes []*html.Node, log *slog.Logger) ([]selectorRule, error) {
	var out []selectorRule
	for _, n := range styleNodes {
		var text strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
			}
		}
		if strings.TrimSpace(text.String()) == "" {
			continue
		}

		sheet, err := parser.Parse(text.String())
		if err != nil {
			return nil, fmt.Errorf("%w: parse stylesheet: %v", ErrStyleInlining, err)
		}

		for _, rule := range sheet.Rules {
			if rule.Kind == css.AtRule {
				log.Debug("dropping at-rule", slog.String("rule", rule.Name))
				continue
			}
			decls := convertDeclarations(rule.Declarations)
			for _, selector := range rule.Selectors {
				selector = strings.TrimSpace(selector)
				if hasPseudo(selector) {
					log.Debug("dropping pseudo selector", slog.String("selector", selector))
					continue
				}
				sel, err := cascadia.Parse(selector)
				if err != nil {
					log.Debug("dropping invalid selector", slog.String("selector", selector), slog.String("error", err.Error()))
					continue
				}
				out = append(out, selectorRule{sel: sel, spec: sel.Specificity(), decls: decls})
			}
		}
	}

	// Stable sort keeps source order among selectors of equal specificity.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].spec.Less(out[j].spec)
	})
	return out, nil
}

func convertDeclarations(in []*css.Declaration) []style.Declaration {
	out := make([]style.Declaration, 0, len(in))
	for _, d := range in {
		out = append(out, style.Declaration{
			Property:  strings.ToLower(strings.TrimSpace(d.Property)),
			Value:     strings.TrimSpace(d.Value),
			Important: d.Important,
		})
	}
	return out
}

// hasPseudo reports a ':' outside attribute selectors and quotes.
func hasPseudo(selector string) bool {
	depth := 0
	var quote rune
	for _, r := range selector {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[':
			depth++
		case r == ']':
			depth--
		case r == ':' && depth == 0:
			return true
		}
	}
	return false
}

func applyRules(doc *html.Node, rules []selectorRule) error {
	computed := make(map[*html.Node]*declarationSet)
	var order []*html.Node

	for _, rule := range rules {
		for _, n := range cascadia.QueryAll(doc, rule.sel) {
			set, ok := computed[n]
			if !ok {
				set = newDeclarationSet()
				computed[n] = set
				order = append(order, n)
			}
			for _, d := range rule.decls {
				set.apply(d)
			}
		}
	}

	for _, n := range order {
		set := computed[n]
		if existing, ok := getAttr(n, "style"); ok && strings.TrimSpace(existing) != "" {
			inline, err := parser.ParseDeclarations(existing)
			if err != nil {
				return fmt.Errorf("%w: parse inline style of <%s>: %v", ErrStyleInlining, n.Data, err)
			}
			// Inline declarations go last: they win unless only the stylesheet one is !important.
			for _, d := range convertDeclarations(inline) {
				set.apply(d)
			}
		}
		setAttr(n, "style", set.String())
	}
	return nil
}

// declarationSet keeps declarations in first-appearance order.
// A later value replaces an earlier one at the same position.
type declarationSet struct {
	order  []string
	byProp map[string]style.Declaration
}

func newDeclarationSet() *declarationSet {
	return &declarationSet{byProp: make(map[string]style.Declaration)}
}

// apply adds a declaration. An !important value is only replaced
// by another !important value.
func (s *declarationSet) apply(d style.Declaration) {
	cur, ok := s.byProp[d.Property]
	if !ok {
		s.order = append(s.order, d.Property)
		s.byProp[d.Property] = d
		return
	}
	if cur.Important && !d.Important {
		return
	}
	s.byProp[d.Property] = d
}

func (s *declarationSet) get(prop string) (style.Declaration, bool) {
	d, ok := s.byProp[prop]
	return d, ok
}

func (s *declarationSet) String() string {
	parts := make([]string, 0, len(s.order))
	for _, prop := range s.order {
		parts = append(parts, s.byProp[prop].String()+";")
	}
	return strings.Join(parts, " ")
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

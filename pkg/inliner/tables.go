package inliner

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var tableAttributeMap = []struct {
	property  string
	attribute string
}{
	{"background-color", "bgcolor"},
	{"text-align", "align"},
	{"vertical-align", "valign"},
}

// applyTableAttributes copies presentation styles into legacy attributes of
// table, td and th (and width/height of img), which some clients only honour
// in attribute form. Attributes already present are left alone.
func applyTableAttributes(doc *html.Node) error {
	var walkErr error
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode {
			if err := mirrorAttributes(n); err != nil {
				walkErr = err
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return walkErr
}

func mirrorAttributes(n *html.Node) error {
	isTable := n.DataAtom == atom.Table || n.DataAtom == atom.Td || n.DataAtom == atom.Th
	if !isTable && n.DataAtom != atom.Img {
		return nil
	}
	raw, ok := getAttr(n, "style")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	parsed, err := parser.ParseDeclarations(raw)
	if err != nil {
		return fmt.Errorf("%w: parse inline style of <%s>: %v", ErrStyleInlining, n.Data, err)
	}
	set := newDeclarationSet()
	for _, d := range convertDeclarations(parsed) {
		set.apply(d)
	}

	for _, dim := range []string{"width", "height"} {
		d, ok := set.get(dim)
		if !ok {
			continue
		}
		if v, ok := dimensionAttr(d.Value); ok {
			setAttrIfAbsent(n, dim, v)
		}
	}

	if !isTable {
		return nil
	}
	for _, m := range tableAttributeMap {
		if d, ok := set.get(m.property); ok && d.Value != "" {
			setAttrIfAbsent(n, m.attribute, d.Value)
		}
	}
	return nil
}

// dimensionAttr converts "600px" to "600" and keeps percentages.
// Other units have no attribute form.
func dimensionAttr(v string) (string, bool) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "px"):
		num := strings.TrimSpace(strings.TrimSuffix(v, "px"))
		return num, num != ""
	case strings.HasSuffix(v, "%"):
		return v, len(v) > 1
	}
	return "", false
}

func setAttrIfAbsent(n *html.Node, key, val string) {
	if _, ok := getAttr(n, key); ok {
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

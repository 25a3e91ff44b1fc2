package inliner

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// markerPrefix starts every stand-in for a protected token. Markers are
// plain ASCII, so neither the parser nor the renderer escapes them.
const markerPrefix = "__emailkit_token_"

var (
	tokenPattern  = regexp.MustCompile(`(?s)\{\{\{.*?\}\}\}|\{\{.*?\}\}`)
	markerPattern = regexp.MustCompile(`<!--` + markerPrefix + `(\d+)__-->|` + markerPrefix + `(\d+)__`)
)

// placeholders keeps Handlebars tokens out of HTML processing. Tokens are
// swapped for markers before parsing and written back byte for byte after
// rendering.
type placeholders struct {
	tokens []string
}

func marker(i int) string {
	return markerPrefix + strconv.Itoa(i) + "__"
}

// protect replaces every token in markup with a marker.
func (p *placeholders) protect(markup string) (string, error) {
	if strings.Contains(markup, markerPrefix) {
		return "", fmt.Errorf("markup contains the reserved sequence %q", markerPrefix)
	}
	return tokenPattern.ReplaceAllStringFunc(markup, func(tok string) string {
		p.tokens = append(p.tokens, tok)
		return marker(len(p.tokens) - 1)
	}), nil
}

// anchor turns markers in text content into comments. The tree builder
// moves stray text out of table context but inserts comments in place, so
// a block wrapping table rows keeps its position.
// Markers inside tags and raw text elements stay as they are.
func (p *placeholders) anchor(markup string) (string, error) {
	if len(p.tokens) == 0 {
		return markup, nil
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	b.Grow(len(markup) + len(p.tokens)*7)

	rawText := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return b.String(), nil
		}

		raw := string(z.Raw())
		switch tt {
		case html.TextToken:
			if !rawText {
				raw = markerPattern.ReplaceAllString(raw, "<!--$0-->")
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "style", "script", "title", "textarea":
				rawText = true
				b.WriteString(raw)
				continue
			}
		}
		rawText = false
		b.WriteString(raw)
	}
}

// restore writes the original tokens back in place of their markers.
// Unknown markers are left untouched.
func (p *placeholders) restore(doc string) string {
	if len(p.tokens) == 0 {
		return doc
	}
	return markerPattern.ReplaceAllStringFunc(doc, func(m string) string {
		sub := markerPattern.FindStringSubmatch(m)
		idx := sub[1]
		if idx == "" {
			idx = sub[2]
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i >= len(p.tokens) {
			return m
		}
		return p.tokens[i]
	})
}

// stripMarkers removes markers from s.
func stripMarkers(s string) string {
	return markerPattern.ReplaceAllString(s, "")
}

package inliner

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dmitrymomot/emailkit/pkg/email/templates"
)

// tableContext lists elements whose direct text children the tree builder
// moves in front of the table.
var tableContext = map[string]struct{}{
	"table": {}, "tbody": {}, "thead": {}, "tfoot": {}, "tr": {},
}

// validate reports markup that an HTML parser would silently repair:
// unterminated tags, stray or mismatched closing tags, unclosed elements,
// self-closing syntax on non-void elements and text placed directly inside
// table structure. Token markers do not count as text.
func validate(markup string) error {
	z := html.NewTokenizer(strings.NewReader(markup))
	var stack []string
	consumed := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			break
		}
		consumed += len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if templates.IsVoid(tag) {
				continue
			}
			stack = append(stack, tag)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if tag := string(name); !templates.IsVoid(tag) {
				return fmt.Errorf("self-closing non-void element <%s/>", tag)
			}
		case html.TextToken:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if _, ok := tableContext[top]; !ok {
				continue
			}
			if strings.TrimSpace(stripMarkers(string(z.Text()))) != "" {
				return fmt.Errorf("text directly inside <%s>", top)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if templates.IsVoid(tag) {
				continue
			}
			if len(stack) == 0 {
				return fmt.Errorf("unexpected closing tag </%s>", tag)
			}
			if top := stack[len(stack)-1]; top != tag {
				return fmt.Errorf("mismatched closing tag </%s>, expected </%s>", tag, top)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if consumed != len(markup) {
		return fmt.Errorf("unterminated tag at offset %d", consumed)
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed element <%s>", stack[len(stack)-1])
	}
	return nil
}

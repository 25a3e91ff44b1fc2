// Package inliner rewrites stylesheet rules into inline style attributes so
// rendered emails survive clients that strip <style> blocks.
//
// Inline is the second phase of rendering: it takes the markup and the style
// chunk the renderer collected and returns a complete document:
//
//	doc, err := inliner.Inline(markup, chunk)
//
// Rules apply in specificity order, then source order. Declarations already
// present in a style attribute win over stylesheet ones unless the stylesheet
// declaration is !important and the inline one is not. At-rules and selectors
// with pseudo-classes cannot be inlined and are dropped together with the
// <style> blocks.
//
// Handlebars tokens are taken out before parsing and written back unchanged,
// so quotes and ampersands inside them are never escaped, and blocks such as
// {{#each items}} may wrap table rows.
//
// The markup must be well-formed: every non-void element closed, in order,
// and no text other than tokens directly inside table, tbody, thead, tfoot or
// tr. Anything else fails with ErrStyleInlining instead of being repaired.
package inliner

// Package handlebars emits the Handlebars tokens understood by SendGrid
// dynamic templates, so values bound at send time can be left inside
// statically rendered HTML.
//
// Three token shapes are supported:
//
//	handlebars.Variable("first_name")                 // {{first_name}}
//	handlebars.Conditional("has_discount", "<p>…</p>") // {{#if has_discount}}<p>…</p>{{/if}}
//	handlebars.Iteration("items", "<li>…</li>")        // {{#each items}}<li>…</li>{{/each}}
//
// The string functions are pure and total: nothing is validated or escaped.
//
// For templ based templates the package also provides components:
//
//	handlebars.Var("first_name")
//	handlebars.If("show_details", detailsTable)
//	handlebars.Each("items", itemRow)
//
// If and Each render their children first, using the same context, and then
// wrap the produced markup. Tokens are written unescaped; they are plain text
// for any later HTML processing and must survive it byte for byte.
package handlebars

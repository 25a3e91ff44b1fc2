package templates

import (
	"github.com/a-h/templ"

	ui "github.com/dmitrymomot/emailkit/pkg/email/templates"
	"github.com/dmitrymomot/emailkit/pkg/style"
)

var (
	wrapStyle    = style.MustNew("wrap", "width: 600px")
	headingStyle = style.MustNew("h1", "padding: 24px 0 8px; font-size: 22px; font-weight: 700")
	textStyle    = style.MustNew("p", "font-size: 14px; line-height: 1.5; padding: 6px 0")
	buttonStyle  = style.MustNew("btn", `display: inline-block; text-decoration: none; padding: 12px 18px;
		font-size: 14px; font-weight: 600; border-radius: 4px; background: #1a73e8; color: #ffffff !important`)
	mutedStyle = style.MustNew("muted", "font-size: 12px; color: #666; padding-top: 16px")
)

func el(tag string, rules []style.Rule, attrs []ui.Attr, children ...templ.Component) templ.Component {
	return ui.Element{Tag: tag, Attrs: attrs, Styles: rules, Children: children}
}

func presentationTable(rules []style.Rule, attrs []ui.Attr, rows ...templ.Component) templ.Component {
	attrs = append(ui.Attrs("role", "presentation", "cellpadding", "0", "cellspacing", "0"), attrs...)
	return el("table", rules, attrs, el("tbody", nil, nil, rows...))
}

// Row wraps content into a single-cell table row.
func Row(rules []style.Rule, attrs []ui.Attr, content ...templ.Component) templ.Component {
	return el("tr", nil, nil, el("td", rules, attrs, content...))
}

// Layout centers rows in a 600px presentation table.
func Layout(rows ...templ.Component) templ.Component {
	return presentationTable(nil, ui.Attrs("width", "100%"),
		Row(nil, ui.Attrs("align", "center"),
			presentationTable([]style.Rule{wrapStyle}, nil, rows...),
		),
	)
}

// Heading is the title row.
func Heading(text string) templ.Component {
	return Row([]style.Rule{headingStyle}, nil, ui.Text(text))
}

// Paragraph is a body text row.
func Paragraph(content ...templ.Component) templ.Component {
	return Row([]style.Rule{textStyle}, nil, content...)
}

// Button is a call to action row linking to href, which may be a placeholder.
func Button(href, label string) templ.Component {
	return Row(nil, ui.Attrs("style", "padding: 14px 0"),
		el("a", []style.Rule{buttonStyle},
			ui.Attrs("href", href, "target", "_blank", "rel", "noopener noreferrer"),
			ui.Text(label),
		),
	)
}

// Muted is the footer row.
func Muted(text string) templ.Component {
	return Row([]style.Rule{mutedStyle}, nil, ui.Text(text))
}

// Strong emphasizes content.
func Strong(content ...templ.Component) templ.Component {
	return el("strong", nil, nil, content...)
}

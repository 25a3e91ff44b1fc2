package templates

import (
	"github.com/a-h/templ"

	ui "github.com/dmitrymomot/emailkit/pkg/email/templates"
	"github.com/dmitrymomot/emailkit/pkg/handlebars"
	"github.com/dmitrymomot/emailkit/pkg/renderer"
	"github.com/dmitrymomot/emailkit/pkg/style"
)

var (
	welcomeTitleStyle    = style.MustNew("welcome-title", "padding: 24px 0; font-size: 24px; font-weight: bold")
	welcomeGreetingStyle = style.MustNew("welcome-greeting", "padding: 16px 0; font-size: 16px")
	welcomeOfferStyle    = style.MustNew("welcome-offer", "padding: 16px 0; font-size: 14px")
	welcomeFooterStyle   = style.MustNew("welcome-footer", "padding: 24px 0; font-size: 12px; color: #666")
)

// Welcome greets a new user. The discount line is shown by SendGrid when
// has_discount is set in the dynamic data.
var Welcome = renderer.Template{
	Name:      "Welcome",
	Component: welcome,
	Subject: func(p renderer.Props) string {
		return p.T("welcome_subject", "brand", p.Model.String("brand", ""))
	},
}

func welcome(p renderer.Props) templ.Component {
	brand := p.Model.String("brand", "")
	return Layout(
		Row([]style.Rule{welcomeTitleStyle}, nil, ui.Text(p.T("welcome_title", "brand", brand))),
		Row([]style.Rule{welcomeGreetingStyle}, nil,
			ui.Text(p.T("greeting")+", "),
			Strong(handlebars.Var("first_name")),
			ui.Text("!"),
		),
		Row([]style.Rule{welcomeOfferStyle}, nil,
			handlebars.If("has_discount",
				el("p", nil, nil, ui.Text(p.T("discount_line"))),
			),
		),
		Row([]style.Rule{welcomeFooterStyle}, nil, ui.Text(p.T("footer", "brand", brand))),
	)
}

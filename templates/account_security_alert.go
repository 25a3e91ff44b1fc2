package templates

import (
	"github.com/a-h/templ"

	ui "github.com/dmitrymomot/emailkit/pkg/email/templates"
	"github.com/dmitrymomot/emailkit/pkg/handlebars"
	"github.com/dmitrymomot/emailkit/pkg/renderer"
)

const detailCellStyle = "padding: 6px 0; font-size: 13px"

// AccountSecurityAlert tells a user about a sign-in from a new device.
// Device details are shown when show_details is set in the dynamic data.
var AccountSecurityAlert = renderer.Template{
	Name:      "AccountSecurityAlert",
	Component: accountSecurityAlert,
	Subject: func(p renderer.Props) string {
		return p.T("subject")
	},
}

func accountSecurityAlert(p renderer.Props) templ.Component {
	return Layout(
		Heading(p.T("title")),
		Paragraph(
			ui.Text(p.T("hello")+" "),
			Strong(handlebars.Var("first_name")),
			ui.Text(","),
		),
		Paragraph(
			ui.Text(p.T("intro")+" "),
			Strong(handlebars.Var("device")),
			ui.Text(" "+p.T("from_ip")+" "),
			Strong(handlebars.Var("ip")),
			ui.Text(" "+p.T("at")+" "),
			Strong(handlebars.Var("time")),
			ui.Text("."),
		),
		Paragraph(ui.Text(p.T("action_prompt"))),
		Button(handlebars.Variable("review_url"), p.T("review_button")),
		Paragraph(
			handlebars.If("show_details",
				presentationTable(nil,
					ui.Attrs("width", "100%", "style", "margin-top: 6px; border-collapse: collapse"),
					detailRow(p.T("details_device"), "device"),
					detailRow(p.T("details_location"), "location"),
					detailRow(p.T("details_ip"), "ip"),
				),
			),
		),
		Paragraph(ui.Text(p.T("outro"))),
		Muted(p.T("footer")),
	)
}

func detailRow(label, variable string) templ.Component {
	return Row(nil, ui.Attrs("style", detailCellStyle),
		Strong(ui.Text(label)),
		ui.Text(": "),
		handlebars.Var(variable),
	)
}

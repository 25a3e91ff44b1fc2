// Package renderer turns registered email templates into markup plus the
// style rules that markup uses.
//
// Templates are registered explicitly at startup:
//
//	reg := renderer.NewRegistry()
//	reg.MustRegister(renderer.Template{
//		Name:      "AccountSecurityAlert",
//		Component: AccountSecurityAlert,
//		Subject:   func(p renderer.Props) string { return p.T("subject") },
//	})
//
// and rendered by slug:
//
//	r := renderer.New(reg,
//		renderer.WithLocales(i18n.NewLoader(i18n.WithGlobalDirs("locales"))),
//		renderer.WithModels(renderer.NewModelLoader("models")),
//	)
//	out, err := r.Render(ctx, "account-security-alert", "en", nil)
//
// Unknown slugs fail with ErrTemplateNotFound, templates without a
// component with ErrInvalidTemplateExport.
package renderer

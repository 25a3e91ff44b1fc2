// Package i18n loads locale dictionaries for email templates.
//
// Translations live in one file per language (JSON or YAML), either in a
// shared locales directory or next to a template as an override:
//
//	locales/en.json
//	templates/welcome/locales/en.json
//
// The Loader merges every existing file for a language, overrides last,
// and flattens nested objects into dot separated keys:
//
//	loader := i18n.NewLoader(
//		i18n.WithGlobalDirs("locales"),
//		i18n.WithTemplatesDir("templates"),
//	)
//	dict, err := loader.Load(ctx, "welcome", "en")
//	if err != nil {
//		// errors.Is(err, i18n.ErrLocaleLoad)
//	}
//	title := dict.T("welcome_title")
//
// Missing keys translate to themselves, so an empty dictionary never breaks
// rendering. Named parameters use the %{name} form:
//
//	// "discount_line": "Use %{code} at checkout"
//	dict.T("discount_line", "code", "WELCOME10")
package i18n

package templates_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailkit/pkg/i18n"
	"github.com/dmitrymomot/emailkit/pkg/pipeline"
	"github.com/dmitrymomot/emailkit/pkg/renderer"
	"github.com/dmitrymomot/emailkit/templates"
)

func newPipeline(t *testing.T) (*pipeline.Pipeline, *renderer.Registry) {
	t.Helper()

	reg := renderer.NewRegistry()
	require.NoError(t, templates.Register(reg))

	r := renderer.New(reg,
		renderer.WithLocales(i18n.NewLoader(
			i18n.WithGlobalDirs("../locales"),
			i18n.WithTemplatesDir("."),
		)),
		renderer.WithModels(renderer.NewModelLoader("../models")),
	)
	return pipeline.New(r), reg
}

func TestRegister(t *testing.T) {
	t.Parallel()

	_, reg := newPipeline(t)
	assert.Equal(t, []string{"welcome", "account-security-alert"}, reg.Slugs())

	tpl, err := reg.Lookup("account-security-alert")
	require.NoError(t, err)
	assert.Equal(t, "Account Security Alert", tpl.Title)

	assert.ErrorIs(t, templates.Register(reg), renderer.ErrDuplicateTemplate)
}

func TestWelcome(t *testing.T) {
	t.Parallel()

	p, _ := newPipeline(t)

	tests := []struct {
		lang     string
		subject  string
		greeting string
	}{
		{"en", "Welcome to Acme", "Hi, "},
		{"pl", "Witamy w Acme", "Cześć, "},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()

			doc, err := p.Build(context.Background(), "welcome", tt.lang, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.subject, doc.Subject)
			assert.Contains(t, doc.HTML, tt.greeting)
			assert.Contains(t, doc.HTML, "<strong>{{first_name}}</strong>!")
			assert.Contains(t, doc.HTML, "{{#if has_discount}}")
			assert.Contains(t, doc.HTML, "{{/if}}")
			assert.Contains(t, doc.HTML, "padding: 24px 0; font-size: 24px; font-weight: bold;")
			assert.NotContains(t, doc.HTML, "<style")
		})
	}

	t.Run("model overrides default brand", func(t *testing.T) {
		t.Parallel()

		doc, err := p.Build(context.Background(), "welcome", "en", renderer.Model{"brand": "Globex"})
		require.NoError(t, err)
		assert.Equal(t, "Welcome to Globex", doc.Subject)
	})
}

func TestAccountSecurityAlert(t *testing.T) {
	t.Parallel()

	p, _ := newPipeline(t)

	doc, err := p.Build(context.Background(), "account-security-alert", "en", nil)
	require.NoError(t, err)

	assert.Equal(t, "New sign-in to your account", doc.Subject)
	for _, token := range []string{
		"{{first_name}}", "{{device}}", "{{ip}}", "{{time}}",
		"{{#if show_details}}", "{{location}}", "{{/if}}",
		`href="{{review_url}}"`,
	} {
		assert.Contains(t, doc.HTML, token)
	}

	assert.Contains(t, doc.HTML, "color: #ffffff !important;")
	assert.Contains(t, doc.HTML, "New sign-in detected")
	assert.Contains(t, doc.HTML, `width="600"`)
	assert.Contains(t, doc.HTML, `style="padding: 6px 0; font-size: 13px"`)
	assert.NotContains(t, doc.HTML, "<style")
	assert.Equal(t, 1, strings.Count(doc.HTML, "<!DOCTYPE html>"))
}

func TestAccountSecurityAlert_Polish(t *testing.T) {
	t.Parallel()

	p, _ := newPipeline(t)

	doc, err := p.Build(context.Background(), "account-security-alert", "pl", nil)
	require.NoError(t, err)
	assert.Equal(t, "Nowe logowanie na Twoje konto", doc.Subject)
	assert.Contains(t, doc.HTML, "Sprawdź aktywność")
}

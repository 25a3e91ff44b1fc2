package renderer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/emailkit/pkg/email/templates"
	"github.com/dmitrymomot/emailkit/pkg/i18n"
	"github.com/dmitrymomot/emailkit/pkg/logger"
	"github.com/dmitrymomot/emailkit/pkg/style"
)

// LocaleSource provides the dictionary for a template and language.
type LocaleSource interface {
	Load(ctx context.Context, slug, lang string) (i18n.Dictionary, error)
}

// ModelSource provides the default model of a template.
type ModelSource interface {
	Load(ctx context.Context, slug string) (Model, error)
}

// Output is the result of rendering one template in one language.
type Output struct {
	Slug       string
	Lang       string
	HTML       string
	Subject    string
	HasSubject bool
	// Chunk holds the style rules the markup references, in first-use order.
	Chunk *style.Chunk
}

// Renderer renders registered templates to markup.
type Renderer struct {
	registry       *Registry
	locales        LocaleSource
	models         ModelSource
	logger         *slog.Logger
	logMissingKeys bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLocales sets the locale source. Without one every key translates to itself.
func WithLocales(src LocaleSource) Option {
	return func(r *Renderer) {
		r.locales = src
	}
}

// WithModels sets the source of default model data.
func WithModels(src ModelSource) Option {
	return func(r *Renderer) {
		r.models = src
	}
}

// WithLogger sets the logger. If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMissingKeyLogging logs translation keys absent from the dictionary.
// Default is false.
func WithMissingKeyLogging(enabled bool) Option {
	return func(r *Renderer) {
		r.logMissingKeys = enabled
	}
}

// New creates a Renderer for the templates in registry.
func New(registry *Registry, opts ...Option) *Renderer {
	r := &Renderer{
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry the renderer resolves slugs against.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render renders the template registered under slug in lang.
// The default model of the template is merged under model, so values
// passed by the caller win.
//
// Rendering itself is synchronous and performs no I/O; locale and model
// files are read before the component runs. The returned chunk is fresh
// for every call.
func (r *Renderer) Render(ctx context.Context, slug, lang string, model Model) (Output, error) {
	tpl, err := r.registry.Lookup(slug)
	if err != nil {
		return Output{}, err
	}
	if tpl.Component == nil {
		return Output{}, fmt.Errorf("%w: %s", ErrInvalidTemplateExport, slug)
	}

	dict := i18n.Dictionary{}
	if r.locales != nil {
		if dict, err = r.locales.Load(ctx, slug, lang); err != nil {
			return Output{}, err
		}
	}

	base := Model{}
	if r.models != nil {
		if base, err = r.models.Load(ctx, slug); err != nil {
			return Output{}, err
		}
	}

	var onMissing func(string)
	if r.logMissingKeys {
		onMissing = func(key string) {
			r.logger.WarnContext(ctx, "translation not found",
				logger.Template(slug),
				logger.Lang(lang),
				slog.String("key", key),
			)
		}
	}

	props := Props{
		Lang:  lang,
		Model: base.Merge(model),
		T:     translator(dict, onMissing),
	}

	html, chunk, err := templates.RenderWithStyles(ctx, tpl.Component(props))
	if err != nil {
		return Output{}, fmt.Errorf("render %s/%s: %w", slug, lang, err)
	}

	out := Output{
		Slug:  slug,
		Lang:  lang,
		HTML:  html,
		Chunk: chunk,
	}
	if tpl.Subject != nil {
		out.Subject = tpl.Subject(props)
		out.HasSubject = true
	}

	r.logger.DebugContext(ctx, "template rendered",
		logger.Template(slug),
		logger.Lang(lang),
		slog.Int("rules", chunk.Len()),
	)
	return out, nil
}

// translator binds a dictionary to the Props.T signature.
func translator(dict i18n.Dictionary, onMissing func(key string)) func(string, ...string) string {
	return func(key string, args ...string) string {
		if _, ok := dict.Lookup(key); !ok && onMissing != nil {
			onMissing(key)
		}
		return dict.T(key, args...)
	}
}

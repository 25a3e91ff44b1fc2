package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/emailkit/pkg/email"
	"github.com/dmitrymomot/emailkit/pkg/inliner"
	"github.com/dmitrymomot/emailkit/pkg/logger"
	"github.com/dmitrymomot/emailkit/pkg/renderer"
)

// Renderer renders one template in one language.
type Renderer interface {
	Render(ctx context.Context, slug, lang string, model renderer.Model) (renderer.Output, error)
}

// Publisher manages hosted template versions.
type Publisher interface {
	Publish(ctx context.Context, slug string, opts email.PublishOptions, html, subject string) (email.PublishResult, error)
	UpdateVersion(ctx context.Context, templateID, versionID string, v email.Version) error
}

// Document is a rendered email with every style inlined.
type Document struct {
	Slug    string
	Lang    string
	HTML    string
	Subject string
}

// DeployOptions selects the remote template for Deploy.
type DeployOptions struct {
	TemplateID string
	Create     bool
}

// UpdateOptions identifies the remote version Update replaces.
type UpdateOptions struct {
	VersionID  string
	TemplateID string
}

// Pipeline renders, inlines and distributes templates.
// Batches run strictly in order, one pair at a time.
type Pipeline struct {
	renderer   Renderer
	writer     email.OutputWriter
	publisher  Publisher
	inlineOpts []inliner.Option
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWriter sets where Generate writes documents.
func WithWriter(w email.OutputWriter) Option {
	return func(p *Pipeline) {
		p.writer = w
	}
}

// WithPublisher sets the remote client used by Deploy and Update.
func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) {
		p.publisher = pub
	}
}

// WithInlinerOptions passes options to every inliner call.
func WithInlinerOptions(opts ...inliner.Option) Option {
	return func(p *Pipeline) {
		p.inlineOpts = append(p.inlineOpts, opts...)
	}
}

// WithLogger sets the logger. If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline around r.
func New(r Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		renderer: r,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build renders slug in lang and inlines its styles.
func (p *Pipeline) Build(ctx context.Context, slug, lang string, model renderer.Model) (Document, error) {
	out, err := p.renderer.Render(ctx, slug, lang, model)
	if err != nil {
		return Document{}, err
	}

	html, err := inliner.Inline(out.HTML, out.Chunk, p.inlineOpts...)
	if err != nil {
		return Document{}, fmt.Errorf("%s/%s: %w", slug, lang, err)
	}

	return Document{
		Slug:    slug,
		Lang:    lang,
		HTML:    html,
		Subject: out.Subject,
	}, nil
}

// Generate builds every (slug, lang) pair in slug-major order and writes each
// document before starting the next. A failing pair is recorded and the rest
// still run; only context cancellation stops the batch early.
func (p *Pipeline) Generate(ctx context.Context, slugs, langs []string) Report {
	var report Report
	if p.writer == nil {
		report.add(Result{Err: ErrNoWriter})
		return report
	}

	for _, slug := range slugs {
		for _, lang := range langs {
			if err := ctx.Err(); err != nil {
				report.add(Result{Slug: slug, Lang: lang, Err: err})
				continue
			}
			report.add(p.generateOne(ctx, slug, lang))
		}
	}

	p.logReport(ctx, "generate", report)
	return report
}

func (p *Pipeline) generateOne(ctx context.Context, slug, lang string) Result {
	res := Result{Slug: slug, Lang: lang}
	start := time.Now()

	doc, err := p.Build(ctx, slug, lang, nil)
	if err != nil {
		res.Err = err
		p.logger.ErrorContext(ctx, "build failed", logger.Template(slug), logger.Lang(lang), logger.Error(err))
		return res
	}

	loc, err := p.writer.Write(ctx, slug, lang, doc.HTML)
	res.Location = loc
	if err != nil {
		res.Err = err
		p.logger.ErrorContext(ctx, "write failed", logger.Template(slug), logger.Lang(lang), logger.Error(err))
		return res
	}

	p.logger.InfoContext(ctx, "generated",
		logger.Template(slug),
		logger.Lang(lang),
		logger.Location(loc),
		logger.Duration(time.Since(start)),
	)
	return res
}

// Deploy publishes the first language of langs for every slug as a new active
// remote version. The remaining languages are reported as skipped. Each slug
// is isolated: a failure is recorded and the next slug is still deployed.
func (p *Pipeline) Deploy(ctx context.Context, slugs, langs []string, opts DeployOptions) Report {
	var report Report
	if p.publisher == nil {
		report.add(Result{Err: ErrNoPublisher})
		return report
	}
	if len(langs) == 0 {
		report.add(Result{Err: ErrNoLanguages})
		return report
	}

	primary := langs[0]
	for _, slug := range slugs {
		res := Result{Slug: slug, Lang: primary}
		if err := ctx.Err(); err != nil {
			res.Err = err
		} else {
			res = p.deployOne(ctx, slug, primary, opts)
		}
		report.add(res)

		for _, lang := range langs[1:] {
			p.logger.InfoContext(ctx, "language not published", logger.Template(slug), logger.Lang(lang))
			report.add(Result{Slug: slug, Lang: lang, Skipped: true})
		}
	}

	p.logReport(ctx, "deploy", report)
	return report
}

func (p *Pipeline) deployOne(ctx context.Context, slug, lang string, opts DeployOptions) Result {
	res := Result{Slug: slug, Lang: lang}

	doc, err := p.Build(ctx, slug, lang, nil)
	if err != nil {
		res.Err = err
		p.logger.ErrorContext(ctx, "build failed", logger.Template(slug), logger.Lang(lang), logger.Error(err))
		return res
	}

	pub, err := p.publisher.Publish(ctx, slug, email.PublishOptions{
		Create:     opts.Create,
		TemplateID: opts.TemplateID,
	}, doc.HTML, doc.Subject)
	res.TemplateID = pub.TemplateID
	res.VersionID = pub.VersionID
	if err != nil {
		res.Err = err
		p.logger.ErrorContext(ctx, "deploy failed", logger.Template(slug), logger.Lang(lang), logger.Error(err))
		return res
	}

	if pub.TemplateCreated {
		p.logger.InfoContext(ctx, "remote template created", logger.Template(slug), logger.TemplateID(pub.TemplateID))
	}
	p.logger.InfoContext(ctx, "deployed",
		logger.Template(slug),
		logger.Lang(lang),
		logger.TemplateID(pub.TemplateID),
		logger.VersionID(pub.VersionID),
	)
	return res
}

// Update replaces the content of an existing remote version with the
// rendering of slug in the first language of langs.
func (p *Pipeline) Update(ctx context.Context, slug string, langs []string, opts UpdateOptions) Result {
	if len(langs) == 0 {
		return Result{Slug: slug, Err: ErrNoLanguages}
	}
	res := Result{
		Slug:       slug,
		Lang:       langs[0],
		TemplateID: opts.TemplateID,
		VersionID:  opts.VersionID,
	}
	if p.publisher == nil {
		res.Err = ErrNoPublisher
		return res
	}
	if opts.VersionID == "" {
		res.Err = email.ErrMissingVersionID
		return res
	}

	doc, err := p.Build(ctx, slug, res.Lang, nil)
	if err != nil {
		res.Err = err
		return res
	}

	if err := p.publisher.UpdateVersion(ctx, opts.TemplateID, opts.VersionID, email.Version{
		Subject: doc.Subject,
		HTML:    doc.HTML,
	}); err != nil {
		res.Err = err
		return res
	}

	p.logger.InfoContext(ctx, "version updated",
		logger.Template(slug),
		logger.Lang(res.Lang),
		logger.VersionID(opts.VersionID),
	)
	return res
}

func (p *Pipeline) logReport(ctx context.Context, op string, r Report) {
	level := slog.LevelInfo
	if len(r.Failed()) > 0 {
		level = slog.LevelWarn
	}
	p.logger.Log(ctx, level, op+" finished", slog.String("summary", r.Summary()))
}

package devserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/emailkit/pkg/email"
	"github.com/dmitrymomot/emailkit/pkg/email/templates"
	"github.com/dmitrymomot/emailkit/pkg/i18n"
	"github.com/dmitrymomot/emailkit/pkg/logger"
	"github.com/dmitrymomot/emailkit/pkg/renderer"
)

// Preview serves generated documents from an output directory.
type Preview struct {
	dir      string
	registry *renderer.Registry
	langs    []string
	reloader *Reloader
	logger   *slog.Logger
}

// PreviewOption configures Preview.
type PreviewOption func(*Preview)

// WithPreviewLogger sets the logger.
func WithPreviewLogger(l *slog.Logger) PreviewOption {
	return func(p *Preview) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithReloader makes served pages reload after each Notify.
func WithReloader(rl *Reloader) PreviewOption {
	return func(p *Preview) {
		p.reloader = rl
	}
}

// NewPreview creates a preview of the documents generated into dir for
// every registered template in each of langs.
func NewPreview(dir string, reg *renderer.Registry, langs []string, opts ...PreviewOption) *Preview {
	p := &Preview{
		dir:      dir,
		registry: reg,
		langs:    langs,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handler returns the preview routes:
//
//	GET /                     index of every (template, language) pair
//	GET /{slug}/{lang}.html   the generated document
//	GET /healthz              liveness probe
//	GET /_live                reload events, with WithReloader only
func (p *Preview) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", p.index)
	r.Get("/healthz", HealthCheckHandler())
	if p.reloader != nil {
		r.Get(LivePath, p.reloader.Handler())
	}
	r.Get("/{slug}/{lang}.html", p.document)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	return r
}

func (p *Preview) index(w http.ResponseWriter, r *http.Request) {
	page, err := templates.Render(r.Context(), indexPage(p.registry.Templates(), p.langs))
	if err != nil {
		p.logger.ErrorContext(r.Context(), "render preview index", logger.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	p.write(w, r, []byte(page))
}

func (p *Preview) document(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	lang := chi.URLParam(r, "lang")

	if _, err := p.registry.Lookup(slug); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if _, err := i18n.NormalizeLang(lang); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(p.dir, email.FileName(slug, lang)))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			p.logger.ErrorContext(r.Context(), "read generated document",
				logger.Template(slug),
				logger.Lang(lang),
				logger.Error(err),
			)
		}
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	p.write(w, r, data)
}

func (p *Preview) write(w http.ResponseWriter, r *http.Request, page []byte) {
	if p.reloader != nil {
		page = injectLiveReload(page, r.URL.Path)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

func indexPage(tpls []renderer.Template, langs []string) templ.Component {
	items := make([]templ.Component, 0, len(tpls)*len(langs))
	for _, t := range tpls {
		for _, lang := range langs {
			items = append(items, templates.Element{Tag: "li", Children: []templ.Component{
				templates.Element{
					Tag:      "a",
					Attrs:    templates.Attrs("href", "/"+t.Slug+"/"+lang+".html"),
					Children: []templ.Component{templates.Text(t.Slug + "/" + lang)},
				},
				templates.Text(" " + t.Title),
			}})
		}
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"/><title>Email Preview</title></head><body>`); err != nil {
			return err
		}
		body := templates.Fragment(
			templates.Element{Tag: "h1", Children: []templ.Component{templates.Text("Emails")}},
			templates.Element{Tag: "ul", Children: items},
		)
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// HealthCheckHandler answers liveness probes with 200 and "ALIVE".
func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

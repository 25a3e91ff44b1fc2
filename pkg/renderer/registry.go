package renderer

import (
	"fmt"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/emailkit/pkg/slug"
)

// Props is what a template receives when rendered.
type Props struct {
	Lang  string
	Model Model
	// T translates a key for Lang. Missing keys translate to themselves.
	T func(key string, args ...string) string
}

// Template is a registered email template.
type Template struct {
	// Name is the Go-style identifier, e.g. "AccountSecurityAlert".
	Name string
	// Slug defaults to Name split on case boundaries: "account-security-alert".
	Slug string
	// Title defaults to Name with spaces between words.
	Title     string
	Component func(Props) templ.Component
	// Subject is optional.
	Subject func(Props) string
}

// Registry holds templates in registration order, keyed by slug.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	bySlug map[string]Template
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySlug: make(map[string]Template)}
}

// SlugFor derives the slug for a template name.
func SlugFor(name string) string {
	return slug.Make(name, slug.SplitCase(true))
}

// Register adds t, filling in Slug and Title from Name when empty.
// A template without a component is accepted here and fails at render time.
func (r *Registry) Register(t Template) error {
	if t.Slug == "" {
		t.Slug = SlugFor(t.Name)
	}
	if t.Slug == "" {
		return fmt.Errorf("%w: name %q yields an empty slug", ErrInvalidTemplate, t.Name)
	}
	if t.Title == "" {
		t.Title = slug.Title(t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[t.Slug]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.Slug)
	}
	r.bySlug[t.Slug] = t
	r.order = append(r.order, t.Slug)
	return nil
}

// MustRegister registers every template and panics on the first error.
func (r *Registry) MustRegister(templates ...Template) {
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the template registered under slug.
func (r *Registry) Lookup(s string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.bySlug[s]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, s)
	}
	return t, nil
}

// Templates returns every template in registration order.
func (r *Registry) Templates() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, r.bySlug[s])
	}
	return out
}

// Slugs returns every slug in registration order.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

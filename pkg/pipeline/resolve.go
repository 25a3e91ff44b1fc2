package pipeline

import (
	"fmt"

	"github.com/dmitrymomot/emailkit/pkg/renderer"
)

// AllTemplates selects every registered template.
const AllTemplates = "all"

// ResolveSlugs maps a CLI name to template slugs. An empty name or "all"
// selects every registered template in registration order. Any other name
// is looked up directly, then by its slug form, so "AccountSecurityAlert"
// and "account-security-alert" select the same template.
func ResolveSlugs(reg *renderer.Registry, name string) ([]string, error) {
	if name == "" || name == AllTemplates {
		slugs := reg.Slugs()
		if len(slugs) == 0 {
			return nil, ErrNoTemplates
		}
		return slugs, nil
	}

	if _, err := reg.Lookup(name); err == nil {
		return []string{name}, nil
	}
	s := renderer.SlugFor(name)
	if _, err := reg.Lookup(s); err != nil {
		return nil, fmt.Errorf("%w: %s", renderer.ErrTemplateNotFound, name)
	}
	return []string{s}, nil
}

// Package templates holds the email templates of the project.
//
// Each template is a renderer.Template value built from the shared layout
// components in this package. Register adds all of them to a registry in a
// fixed order, which is also the order of batch runs:
//
//	reg := renderer.NewRegistry()
//	if err := templates.Register(reg); err != nil {
//		return err
//	}
//
// Template specific translations live in <slug>/locales next to this file
// and override the shared ones.
package templates

import "github.com/dmitrymomot/emailkit/pkg/renderer"

// All returns every template in registration order.
func All() []renderer.Template {
	return []renderer.Template{
		Welcome,
		AccountSecurityAlert,
	}
}

// Register adds every template to reg.
func Register(reg *renderer.Registry) error {
	for _, t := range All() {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

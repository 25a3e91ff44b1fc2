package renderer

import "errors"

var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrInvalidTemplateExport = errors.New("template has no renderable component")
	ErrDuplicateTemplate     = errors.New("template slug already registered")
	ErrInvalidTemplate       = errors.New("invalid template definition")
	ErrModelLoad             = errors.New("failed to load template model")
)

package pipeline

import "errors"

var (
	ErrNoLanguages = errors.New("pipeline: no languages given")
	ErrNoPublisher = errors.New("pipeline: remote publisher not configured")
	ErrNoWriter    = errors.New("pipeline: output writer not configured")
	ErrNoTemplates = errors.New("pipeline: no templates registered")
)

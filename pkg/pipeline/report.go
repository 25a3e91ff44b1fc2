package pipeline

import (
	"errors"
	"fmt"
)

// Result is the outcome of one (template, language) pair.
type Result struct {
	Slug string
	Lang string
	// Location is where the document was written by Generate.
	Location string
	// TemplateID and VersionID are set by Deploy and Update.
	TemplateID string
	VersionID  string
	// Skipped marks languages Deploy did not publish.
	Skipped bool
	Err     error
}

// OK reports whether the pair completed.
func (r Result) OK() bool {
	return r.Err == nil && !r.Skipped
}

// Report collects results in processing order.
type Report struct {
	Results []Result
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

// Succeeded returns the completed pairs.
func (r Report) Succeeded() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the pairs that ended with an error.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Skipped returns the pairs that were intentionally not processed.
func (r Report) Skipped() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Skipped && res.Err == nil {
			out = append(out, res)
		}
	}
	return out
}

// Err joins every failure, each prefixed with its pair. It is nil when
// nothing failed.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s/%s: %w", res.Slug, res.Lang, res.Err))
	}
	return errors.Join(errs...)
}

// Summary formats the counts as "N succeeded, M failed".
func (r Report) Summary() string {
	s := fmt.Sprintf("%d succeeded, %d failed", len(r.Succeeded()), len(r.Failed()))
	if n := len(r.Skipped()); n > 0 {
		s += fmt.Sprintf(", %d skipped", n)
	}
	return s
}

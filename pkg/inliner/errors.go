package inliner

import "errors"

// ErrStyleInlining is returned for markup or stylesheets that cannot be inlined.
// It is fatal for one document only.
var ErrStyleInlining = errors.New("style inlining failed")

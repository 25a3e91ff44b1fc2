package email

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential = errors.New("email: missing sendgrid api key")
	ErrMissingTemplateID = errors.New("email: missing template id")
	ErrMissingVersionID  = errors.New("email: missing version id")
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrWriteOutput       = errors.New("email: failed to write output")
	ErrUnexpectedReply   = errors.New("email: unexpected response body")

	ErrBucketNotFound     = errors.New("email: bucket not found")
	ErrAccessDenied       = errors.New("email: access denied")
	ErrServiceUnavailable = errors.New("email: storage service unavailable")
	ErrOperationTimeout   = errors.New("email: operation timeout")
	ErrOperationCanceled  = errors.New("email: operation canceled")
)

// RemoteAPIError is a non-2xx reply from the template API.
type RemoteAPIError struct {
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("email: remote api returned status %d: %s", e.StatusCode, e.Body)
}

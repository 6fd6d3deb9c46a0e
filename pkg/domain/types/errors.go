package types

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// Error kinds. Every error returned from the checker carries exactly one of these tags.
var (
	// ErrTagTransport marks failures to reach the GitHub API (DNS, connect, timeout)
	ErrTagTransport = goerr.NewTag("transport")
	// ErrTagHTTPStatus marks non-2xx responses. The wrapped *HTTPStatusError holds status and body.
	ErrTagHTTPStatus = goerr.NewTag("http_status")
	// ErrTagDecode marks response bodies that are not valid JSON or miss required fields
	ErrTagDecode = goerr.NewTag("decode")
	// ErrTagParse marks version strings with a non-numeric component
	ErrTagParse = goerr.NewTag("parse")
	// ErrTagConfig marks missing or invalid configuration
	ErrTagConfig = goerr.NewTag("config")
)

// HTTPStatusError is the cause of every ErrTagHTTPStatus error.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d (%s) from %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// AsHTTPStatusError extracts the HTTPStatusError from err's chain
func AsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// IsNotFound reports whether err was caused by a 404 response, e.g. a repository without any release.
func IsNotFound(err error) bool {
	statusErr, ok := AsHTTPStatusError(err)
	return ok && statusErr.StatusCode == http.StatusNotFound
}

package oci

import (
	"errors"
	"net/http"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// serviceError unwraps an OCI service error if present.
func serviceError(err error) (common.ServiceError, bool) {
	var se common.ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNotFound checks if an error indicates a resource was not found.
// Deleting an already-gone resource is treated as success by callers.
func IsNotFound(err error) bool {
	se, ok := serviceError(err)
	return ok && se.GetHTTPStatusCode() == http.StatusNotFound
}

// IsRateLimited checks if an error indicates API rate limiting.
func IsRateLimited(err error) bool {
	se, ok := serviceError(err)
	return ok && se.GetHTTPStatusCode() == http.StatusTooManyRequests
}

// IsConflict checks if an error indicates the resource is in a conflicting
// state, typically mid-transition.
func IsConflict(err error) bool {
	se, ok := serviceError(err)
	return ok && se.GetHTTPStatusCode() == http.StatusConflict
}

// IsRetryable reports whether a call may succeed if simply tried again:
// rate limiting, or a resource still mid-transition.
func IsRetryable(err error) bool {
	return IsRateLimited(err) || IsConflict(err)
}

// IsLimitExceeded checks if an error carries the service-limit error code.
// These require manual remediation and must never be retried.
func IsLimitExceeded(err error) bool {
	se, ok := serviceError(err)
	return ok && se.GetCode() == "LimitExceeded"
}

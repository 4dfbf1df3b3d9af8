package oci

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeServiceError implements common.ServiceError for tests.
type fakeServiceError struct {
	status int
	code   string
}

func (e fakeServiceError) Error() string          { return fmt.Sprintf("%d %s", e.status, e.code) }
func (e fakeServiceError) GetHTTPStatusCode() int { return e.status }
func (e fakeServiceError) GetMessage() string     { return e.code }
func (e fakeServiceError) GetCode() string        { return e.code }
func (e fakeServiceError) GetOpcRequestID() string {
	return "ocid1.request.test"
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := fakeServiceError{status: http.StatusNotFound, code: "NotAuthorizedOrNotFound"}
	throttled := fakeServiceError{status: http.StatusTooManyRequests, code: "TooManyRequests"}
	conflict := fakeServiceError{status: http.StatusConflict, code: "Conflict"}
	limit := fakeServiceError{status: http.StatusBadRequest, code: "LimitExceeded"}

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsRateLimited(throttled))
	assert.True(t, IsConflict(conflict))
	assert.True(t, IsLimitExceeded(limit))

	assert.False(t, IsNotFound(throttled))
	assert.False(t, IsLimitExceeded(conflict))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(fakeServiceError{status: http.StatusTooManyRequests, code: "TooManyRequests"}))
	assert.True(t, IsRetryable(fakeServiceError{status: http.StatusConflict, code: "Conflict"}))

	// Terminal answers are never retried.
	assert.False(t, IsRetryable(fakeServiceError{status: http.StatusNotFound, code: "NotAuthorizedOrNotFound"}))
	assert.False(t, IsRetryable(fakeServiceError{status: http.StatusBadRequest, code: "LimitExceeded"}))
	assert.False(t, IsRetryable(errors.New("connection refused")))
}

func TestErrorHelpersUnwrapChain(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("failed to delete subnet: %w", fakeServiceError{status: http.StatusTooManyRequests})
	assert.True(t, IsRateLimited(wrapped))
}

func TestErrorHelpersPlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")
	assert.False(t, IsNotFound(err))
	assert.False(t, IsRateLimited(err))
	assert.False(t, IsLimitExceeded(err))
	assert.False(t, IsNotFound(nil))
}

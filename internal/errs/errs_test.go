package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("'rice' item not found.", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("'rice' already exists.", true, nil), http.StatusConflict, "CONFLICT"},
		{"too many", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestCustomCode(t *testing.T) {
	code := "INVENTORY_LIST_ALREADY_EXISTS"
	err := NewConflictError("dup", true, &code)
	assert.Equal(t, code, err.Code)
}

func TestHTTPErrorIsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("missing", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestWithMessageCopies(t *testing.T) {
	orig := NewConflictError("one", true, nil)
	copied := orig.WithMessage("two")

	assert.Equal(t, "one", orig.Message)
	assert.Equal(t, "two", copied.Message)
	assert.Equal(t, orig.Status, copied.Status)
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("no", false), 401, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("no", false), 403, "FORBIDDEN"},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), 400, "BAD_REQUEST"},
		{"unprocessable", NewUnprocessableEntityError("bad", true, nil, nil), 422, "UNPROCESSABLE_ENTITY"},
		{"not found", NewNotFoundError("gone", false, nil), 404, "NOT_FOUND"},
		{"too many", NewTooManyRequestsError("slow", "1s"), 429, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), 500, "INTERNAL_SERVER_ERROR"},
		{"internal coded", NewInternalServerErrorWithCode("STL_ENCODING_FAILED"), 500, "STL_ENCODING_FAILED"},
		{"validation", ValidationError(errors.New("x")), 422, "UNPROCESSABLE_ENTITY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestCustomCode(t *testing.T) {
	code := "SIZE_INVALID"
	err := NewUnprocessableEntityError("bad", true, &code, []FieldError{{Field: "size_mm", Error: "too big"}})
	assert.Equal(t, code, err.Code)
	assert.Len(t, err.Errors, 1)
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("gone", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "gone", httpErr.Error())
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}

func TestWithMessageCopies(t *testing.T) {
	base := NewBadRequestError("base", true, nil, nil, nil)
	copied := base.WithMessage("other")

	assert.Equal(t, "base", base.Message)
	assert.Equal(t, "other", copied.Message)
	assert.Equal(t, base.Status, copied.Status)
	assert.True(t, copied.Override)
}

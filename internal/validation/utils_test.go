package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/boxgen/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Width float64 `json:"width_mm" validate:"gte=1,lte=10"`
	Label string  `json:"label" validate:"omitempty,max=5"`
}

func (r *sampleRequest) Validate() error {
	return Struct(r)
}

type customRequest struct {
	Value int `json:"value"`
}

func (r *customRequest) Validate() error {
	if r.Value%2 != 0 {
		return CustomValidationErrors{{Field: "value", Message: "must be even"}}
	}
	return nil
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestBindAndValidateSuccess(t *testing.T) {
	req := &sampleRequest{}
	require.NoError(t, BindAndValidate(newContext(`{"width_mm": 4}`), req))
	assert.Equal(t, 4.0, req.Width)
}

func TestBindAndValidateEmptyBodyKeepsDefaults(t *testing.T) {
	req := &sampleRequest{Width: 7}
	require.NoError(t, BindAndValidate(newContext(""), req))
	assert.Equal(t, 7.0, req.Width)
}

func TestBindAndValidateOutOfRange(t *testing.T) {
	err := BindAndValidate(newContext(`{"width_mm": 11, "label": "toolong"}`), &sampleRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "width_mm", Error: "must not exceed 10"},
		{Field: "label", Error: "must not exceed 5 characters"},
	}, httpErr.Errors)
}

func TestBindAndValidateWrongType(t *testing.T) {
	err := BindAndValidate(newContext(`{"width_mm": "wide"}`), &sampleRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "width_mm", httpErr.Errors[0].Field)
	assert.Equal(t, "must be of type number, got string", httpErr.Errors[0].Error)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(`{"width_mm": `), &sampleRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "body", httpErr.Errors[0].Field)
}

func TestBindAndValidateWithoutContentType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"width_mm": 6}`))
	c := e.NewContext(req, httptest.NewRecorder())

	payload := &sampleRequest{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, 6.0, payload.Width)
}

func TestBindAndValidateUnsupportedContentType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("width_mm=6"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	c := e.NewContext(req, httptest.NewRecorder())

	err := BindAndValidate(c, &sampleRequest{})

	var echoErr *echo.HTTPError
	require.ErrorAs(t, err, &echoErr)
	assert.Equal(t, http.StatusUnsupportedMediaType, echoErr.Code)
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{"value": 3}`), &customRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "value", Error: "must be even"}}, httpErr.Errors)
}

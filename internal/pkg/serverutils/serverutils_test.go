package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-buyer-be/internal/constant"
)

type silentLogger struct{}

func (silentLogger) Debug(string, string, map[string]interface{}) {}
func (silentLogger) Info(string, string, map[string]interface{})  {}
func (silentLogger) Warn(string, string, map[string]interface{})  {}
func (silentLogger) Error(string, string, map[string]interface{}) {}
func (silentLogger) Sync() error                                  { return nil }

func TestValidateRequestPassesValidStruct(t *testing.T) {
	req := struct {
		Content string `validate:"required"`
	}{Content: "hello"}

	assert.Nil(t, ValidateRequest(&req))
}

func TestValidateRequestReportsMissingField(t *testing.T) {
	req := struct {
		Content string `validate:"required"`
	}{}

	apiErr := ValidateRequest(&req)

	require.NotNil(t, apiErr)
	assert.Equal(t, constant.ErrCodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Message, "content failed on required")
}

func TestValidateRequestJoinsMultipleViolations(t *testing.T) {
	req := struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}{Email: "not-an-email"}

	apiErr := ValidateRequest(&req)

	require.NotNil(t, apiErr)
	assert.Contains(t, apiErr.Message, "name failed on required")
	assert.Contains(t, apiErr.Message, "email failed on email")
}

func TestSuccessResponseEnvelope(t *testing.T) {
	body, err := json.Marshal(SuccessResponse(map[string]string{"id": "abc"}))

	require.NoError(t, err)
	assert.JSONEq(t, `{"data": {"id": "abc"}, "error": null}`, string(body))
}

func TestErrorResponseEnvelope(t *testing.T) {
	body, err := json.Marshal(ErrorResponse("NO_PREFERENCES", "nothing extracted"))

	require.NoError(t, err)
	assert.JSONEq(t, `{"data": null, "error": {"code": "NO_PREFERENCES", "message": "nothing extracted"}}`, string(body))
}

func newErrorHandlerApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(silentLogger{})})
	app.Get("/test", handler)
	return app
}

func envelope(t *testing.T, body io.Reader) Response[json.RawMessage] {
	t.Helper()
	var res Response[json.RawMessage]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestErrorHandlerMapsNotFoundSentinels(t *testing.T) {
	app := newErrorHandlerApp(func(ctx *fiber.Ctx) error {
		return constant.ErrSessionNotFound
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	res := envelope(t, resp.Body)
	require.NotNil(t, res.Error)
	assert.Equal(t, "NOT_FOUND", res.Error.Code)
}

func TestErrorHandlerKeepsApiErrorsOnHTTP200(t *testing.T) {
	app := newErrorHandlerApp(func(ctx *fiber.Ctx) error {
		return NewApiError(constant.ErrCodeTranscriptTooShort, "too short")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	res := envelope(t, resp.Body)
	require.NotNil(t, res.Error)
	assert.Equal(t, constant.ErrCodeTranscriptTooShort, res.Error.Code)
	assert.Equal(t, "too short", res.Error.Message)
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	app := newErrorHandlerApp(func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	res := envelope(t, resp.Body)
	require.NotNil(t, res.Error)
	assert.Equal(t, "HTTP_ERROR", res.Error.Code)
	assert.Equal(t, "invalid session id", res.Error.Message)
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := newErrorHandlerApp(func(ctx *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	res := envelope(t, resp.Body)
	require.NotNil(t, res.Error)
	assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
	assert.NotContains(t, res.Error.Message, assert.AnError.Error())
}

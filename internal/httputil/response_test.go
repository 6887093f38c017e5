package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/anonymizer/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		statusCode int
		errorCode  string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "run not found"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "bad mode"), http.StatusUnprocessableEntity, "invalid_input"},
		{"configuration", apperrors.Wrap(apperrors.ErrConfiguration, "region not set"), http.StatusInternalServerError, "configuration_error"},
		{"integrity", apperrors.Wrap(apperrors.ErrIntegrity, "bad key size"), http.StatusInternalServerError, "integrity_error"},
		{"deadline", fmt.Errorf("anonymize: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "timeout"},
		{"canceled", context.Canceled, http.StatusRequestTimeout, "canceled"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.statusCode, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.errorCode, resp.Error)
		})
	}

	t.Run("configuration details are not exposed", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, apperrors.Wrap(apperrors.ErrConfiguration, "AWS_KMS_KEY_ID not set"), logger)
		assert.NotContains(t, w.Body.String(), "AWS_KMS_KEY_ID")
	})

	t.Run("invalid input message is returned", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "mode must be hash or format-preserving"), logger)
		assert.Contains(t, w.Body.String(), "mode must be hash or format-preserving")
	})

	t.Run("request id is echoed", func(t *testing.T) {
		router := gin.New()
		router.Use(requestid.New(requestid.WithGenerator(func() string { return "req-42" })))
		router.GET("/fail", func(c *gin.Context) {
			HandleErrorGin(c, errors.New("boom"), logger)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

		assert.JSONEq(t, `{"error":"internal_error","message":"An internal error occurred","request_id":"req-42"}`, w.Body.String())
	})

	t.Run("context without request omits request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		require.Nil(t, c.Request)

		assert.NotPanics(t, func() { HandleErrorGin(c, errors.New("boom"), logger) })
		assert.JSONEq(t, `{"error":"internal_error","message":"An internal error occurred"}`, w.Body.String())
	})

	t.Run("request id header is echoed without middleware", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/anonymize", nil)
		c.Request.Header.Set("X-Request-Id", "upstream-7")

		HandleErrorGin(c, apperrors.ErrConflict, logger)
		assert.Contains(t, w.Body.String(), `"request_id":"upstream-7"`)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, nil, logger)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.NotPanics(t, func() { HandleBadRequestGin(c, errors.New("unexpected EOF"), nil) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"unexpected EOF"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("columns: cannot be blank"), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"columns: cannot be blank"}`, w.Body.String())
}

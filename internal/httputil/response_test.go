package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "object not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
			expectedMsg:    "The requested resource was not found",
		},
		{
			name:           "first matching class wins",
			err:            errors.Join(apperrors.ErrNotFound, apperrors.ErrForbidden),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
		{
			name:           "invalid input echoes message",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "storage key is not allowed"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "invalid_input",
			expectedMsg:    "storage key is not allowed: invalid input",
		},
		{
			name:           "decryption failure hides cause",
			err:            apperrors.Wrap(apperrors.Wrap(apperrors.ErrDecryptionFailed, "key unwrap failed"), "decrypt"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "decryption_failed",
			expectedMsg:    "decryption failed",
		},
		{
			name:           "unauthorized",
			err:            apperrors.ErrUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "unauthorized",
		},
		{
			name:           "forbidden",
			err:            apperrors.Wrap(apperrors.ErrForbidden, "not owner"),
			expectedStatus: http.StatusForbidden,
			expectedCode:   "forbidden",
			expectedMsg:    "You don't have permission to access this resource",
		},
		{
			name:           "too many requests",
			err:            apperrors.ErrTooManyRequests,
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   "rate_limit_exceeded",
		},
		{
			name:           "internal error hides details",
			err:            fmt.Errorf("dial tcp 10.0.0.7:9000: %w", errors.New("connection refused")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "internal_error",
			expectedMsg:    "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body.Message)
			}
			assert.NotContains(t, w.Body.String(), "10.0.0.7")
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	c, w := newTestContext()
	HandleErrorGin(c, nil, nil)
	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()
	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"unexpected EOF"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleValidationErrorGin(c, errors.New("purpose: must be a valid value."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"purpose: must be a valid value."}`, w.Body.String())
}

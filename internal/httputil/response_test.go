package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/f107110126/rpc-cap/internal/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "domain"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "bad caveat"), http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
		{"rejected", apperrors.ErrRejected, http.StatusForbidden, "rejected"},
		{"internal", apperrors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, testLogger())

			assert.Equal(t, tt.wantStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantError, response.Error)
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, testLogger())

	assert.Empty(t, w.Body.Bytes())
}

func TestHandleValidationErrorGin(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, apperrors.New("method: must not be blank"), testLogger())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "validation_error", response.Error)
	assert.Contains(t, response.Message, "must not be blank")
}

func TestParsePagination(t *testing.T) {
	newContext := func(query string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/approvals"+query, nil)
		return c
	}

	t.Run("Success_Defaults", func(t *testing.T) {
		offset, limit, err := ParsePagination(newContext(""))
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("Success_ExplicitValues", func(t *testing.T) {
		offset, limit, err := ParsePagination(newContext("?offset=10&limit=25"))
		require.NoError(t, err)
		assert.Equal(t, 10, offset)
		assert.Equal(t, 25, limit)
	})

	t.Run("Error_NegativeOffset", func(t *testing.T) {
		_, _, err := ParsePagination(newContext("?offset=-1"))
		assert.Error(t, err)
	})

	t.Run("Error_LimitTooLarge", func(t *testing.T) {
		_, _, err := ParsePagination(newContext("?limit=101"))
		assert.Error(t, err)
	})
}

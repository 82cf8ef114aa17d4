package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ToResponse(c, err)
	return w
}

func TestToResponse_NotFound(t *testing.T) {
	w := respond(NotFound("post", 42))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post 42")
}

func TestToResponse_PermissionDenied(t *testing.T) {
	w := respond(PermissionDenied("account is blocked"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToResponse_Validation(t *testing.T) {
	w := respond(Validation("body", "must be at least 3 characters"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "body")
}

func TestToResponse_ProfileMissing(t *testing.T) {
	w := respond(ErrProfileMissing)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "redirect")
}

func TestToResponse_Unknown(t *testing.T) {
	w := respond(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internals are not leaked
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestWrappedErrorsKeepIdentity(t *testing.T) {
	err := fmt.Errorf("apply vote: %w", NotFound("post", 7))
	assert.True(t, errors.Is(err, ErrNotFound))
}

// Package apperr defines the error taxonomy shared by usecases and HTTP
// handlers. Usecases return these, handlers map them onto status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	// ErrProfileMissing marks an authenticated user without a provisioned
	// profile. Handled as a forced re-login, not a 500.
	ErrProfileMissing = errors.New("profile missing")
)

func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

func PermissionDenied(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrPermissionDenied)
}

func Validation(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrValidation)
}

// ToResponse writes the JSON response matching err's place in the taxonomy.
func ToResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrProfileMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": "/api/v1/auth/login"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

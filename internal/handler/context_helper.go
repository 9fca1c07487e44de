package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cancha-club/cancha-api/internal/middleware"
	"github.com/cancha-club/cancha-api/internal/models"
	appErrors "github.com/cancha-club/cancha-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// dateQuery parses a YYYY-MM-DD query parameter, defaulting to today when
// absent.
func dateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return models.DateOnly(time.Now().UTC()), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" format, expected YYYY-MM-DD")
	}
	return parsed, nil
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/emilearthur/todo/models"
	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// respondError maps the store's error kinds to HTTP statuses. Anything
// outside the taxonomy is an infrastructure failure and reported without
// detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

// CurrentUser returns the authenticated user placed in the context by the
// auth middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// publicUser is the expanded user representation for API responses. It is
// never used for identity comparisons.
func publicUser(u *models.User) gin.H {
	if u == nil {
		return nil
	}
	out := gin.H{
		"id":            u.ID,
		"username":      u.Username,
		"emailVerified": u.EmailVerified,
		"createdAt":     u.CreatedAt,
	}
	if u.Profile != nil {
		out["profile"] = u.Profile
	}
	return out
}

package handlers

import (
	"net/http"

	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser returns the authenticated user's own record.
func GetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"emailVerified": user.EmailVerified,
			"isActive":      user.IsActive,
			"profile":       user.Profile,
			"createdAt":     user.CreatedAt,
			"updatedAt":     user.UpdatedAt,
		})
	}
}

// UpdateUserRequest is the payload for changing account details. Absent
// fields are left untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// UpdateCurrentUser changes email, username or password of the caller.
func UpdateCurrentUser(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := s.UpdateUser(user, store.UserPatch{
			Email:    req.Email,
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":            updated.ID,
			"username":      updated.Username,
			"email":         updated.Email,
			"emailVerified": updated.EmailVerified,
			"updatedAt":     updated.UpdatedAt,
		})
	}
}

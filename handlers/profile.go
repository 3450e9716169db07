package handlers

import (
	"net/http"

	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the public profile behind a username.
func GetProfile(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		user, err := s.GetUserByUsername(username)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": user.Username,
			"profile":  user.Profile,
		})
	}
}

// UpdateProfileRequest is the payload for editing one's own profile. Absent
// fields are left untouched.
type UpdateProfileRequest struct {
	Firstname   *string `json:"firstname"`
	Lastname    *string `json:"lastname"`
	Middlename  *string `json:"middlename"`
	PhoneNumber *string `json:"phoneNumber"`
	Bio         *string `json:"bio"`
	Image       *string `json:"image"`
}

// UpdateMyProfile edits the caller's profile.
func UpdateMyProfile(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		profile, err := s.UpdateProfile(user, store.ProfilePatch{
			Firstname:   req.Firstname,
			Lastname:    req.Lastname,
			Middlename:  req.Middlename,
			PhoneNumber: req.PhoneNumber,
			Bio:         req.Bio,
			Image:       req.Image,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/emilearthur/todo/auth"
	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to an active user. Every failure
// mode collapses to the same unauthorized response so the shape of the error
// never reveals which check rejected the credential.
func AuthMiddleware(tokens *auth.Tokens, s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		unauthorized := func() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			c.Abort()
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized()
			return
		}

		username, err := tokens.Parse(parts[1])
		if err != nil {
			unauthorized()
			return
		}

		user, err := s.GetUserByUsername(username)
		if err != nil || !user.IsActive {
			unauthorized()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=7,max=80"`
}

// Register creates a user plus an empty profile and returns an access token.
func Register(s *store.Store, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := s.Register(req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := tokens.Issue(user.Username, user.Email)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":  publicUser(user),
			"token": token,
		})
	}
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns an access token.
func Login(s *store.Store, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := s.Authenticate(req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := tokens.Issue(user.Username, user.Email)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":  publicUser(user),
			"token": token,
		})
	}
}

package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/emilearthur/todo/auth"
	"github.com/emilearthur/todo/cache"
	"github.com/emilearthur/todo/smtp"
	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// SendVerificationCode generates a short-lived code for the caller's email
// address and mails it. The mail send is best effort: a failure is logged and
// the request still succeeds.
func SendVerificationCode(codes *cache.Codes, mailer *smtp.Mailer, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		// Reuse an unexpired code instead of minting a new one per request.
		code, found := codes.Get(user.Email)
		if !found {
			generated, err := auth.GenerateVerificationCode()
			if err != nil {
				respondError(c, err)
				return
			}
			code = generated
			codes.Set(user.Email, code, ttl)

			go func(email, username, code string) {
				if err := mailer.SendVerificationCode(email, username, code); err != nil {
					log.Printf("verification mail to %s failed: %v", email, err)
				}
			}(user.Email, user.Username, code)
		}

		c.JSON(http.StatusOK, gin.H{"message": "verification code sent", "email": user.Email})
	}
}

// VerifyEmailRequest is the payload for confirming a verification code.
type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyEmail checks the submitted code against the cache and marks the
// caller's email verified on match.
func VerifyEmail(s *store.Store, codes *cache.Codes) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		var req VerifyEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		code, found := codes.Get(user.Email)
		if !found || code != req.Code {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired verification code"})
			return
		}

		if err := s.MarkEmailVerified(user); err != nil {
			respondError(c, err)
			return
		}
		codes.Delete(user.Email)

		c.JSON(http.StatusOK, gin.H{"message": "email verified"})
	}
}

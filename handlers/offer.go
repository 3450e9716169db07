package handlers

import (
	"net/http"

	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// CreateOffer files the caller's offer on the todo.
func CreateOffer(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		offer, err := s.CreateOffer(user, todoID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, offer)
	}
}

// ListOffers returns all offers on the todo; owner only.
func ListOffers(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		offers, err := s.ListOffers(user, todoID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": offers})
	}
}

// GetOffer returns one candidate's offer on the todo; visible to the owner
// and the candidate only.
func GetOffer(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		candidate, err := s.GetUserByUsername(c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}

		offer, err := s.GetOffer(user, todoID, candidate)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, offer)
	}
}

// AcceptOffer accepts the candidate's offer and rejects the rest; owner only.
func AcceptOffer(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		candidate, err := s.GetUserByUsername(c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}

		offer, err := s.AcceptOffer(user, todoID, candidate)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, offer)
	}
}

// CancelOffer withdraws the caller's accepted offer; rejected siblings go
// back to pending.
func CancelOffer(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		offer, err := s.CancelOffer(user, todoID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, offer)
	}
}

// RescindOffer hard-deletes the caller's pending offer.
func RescindOffer(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		deleted, err := s.RescindOffer(user, todoID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}

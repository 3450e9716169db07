package handlers

import (
	"net/http"
	"strconv"

	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// CreateCommentRequest is the payload for a new comment. Task marks it as a
// remark on the todo's accepted offer rather than the todo itself.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
	Task bool   `json:"task"`
}

// CreateComment attaches a comment to the todo or its accepted offer.
func CreateComment(s *store.Store) gin.HandlerFunc {
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

		var req CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comment, err := s.CreateComment(user, todoID, req.Body, req.Task)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, comment)
	}
}

// ListComments returns the todo's comments, ?task=true for task comments.
func ListComments(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		task := c.Query("task") == "true"

		comments, err := s.ListComments(todoID, task)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": comments})
	}
}

// UpdateCommentRequest is the payload for editing a comment body.
type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

func commentIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return uint(id), true
}

// UpdateComment edits the caller's own comment.
func UpdateComment(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		commentID, ok := commentIDParam(c)
		if !ok {
			return
		}

		var req UpdateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comment, err := s.UpdateComment(user, commentID, req.Body)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, comment)
	}
}

// DeleteComment removes the caller's own comment.
func DeleteComment(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		commentID, ok := commentIDParam(c)
		if !ok {
			return
		}

		deletedID, err := s.DeleteComment(user, commentID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deletedID})
	}
}

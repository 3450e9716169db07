package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emilearthur/todo/models"
	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func todoIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("todo_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return 0, false
	}
	return uint(id), true
}

// CreateTodoRequest is the payload for posting a new job.
type CreateTodoRequest struct {
	Name          string `json:"name" binding:"required"`
	Notes         string `json:"notes"`
	Priority      string `json:"priority"`
	Duedate       string `json:"duedate" binding:"required"`
	OpenForOffers bool   `json:"openForOffers"`
}

// CreateTodo posts a new job owned by the caller.
func CreateTodo(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		var req CreateTodoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		duedate, err := time.Parse(dateLayout, req.Duedate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duedate must be formatted YYYY-MM-DD"})
			return
		}

		todo, err := s.CreateTodo(user, store.TodoCreate{
			Name:          req.Name,
			Notes:         req.Notes,
			Priority:      models.Priority(req.Priority),
			Duedate:       duedate,
			OpenForOffers: req.OpenForOffers,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, todo)
	}
}

// GetTodo fetches one todo with its owner expanded for display.
func GetTodo(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		todo, err := s.GetTodo(todoID)
		if err != nil {
			respondError(c, err)
			return
		}

		owner, err := s.GetUserByID(todo.OwnerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"todo":  todo,
			"owner": publicUser(owner),
		})
	}
}

// ListMyTodos returns every todo the caller owns.
func ListMyTodos(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		todos, err := s.ListUserTodos(user)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": todos})
	}
}

// ListOpenTodos returns every todo currently open for offers.
func ListOpenTodos(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		todos, err := s.ListOpenTodos()
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": todos})
	}
}

// UpdateTodoRequest is the patch payload for a todo. Absent fields are left
// untouched.
type UpdateTodoRequest struct {
	Name          *string `json:"name"`
	Notes         *string `json:"notes"`
	Priority      *string `json:"priority"`
	Duedate       *string `json:"duedate"`
	OpenForOffers *bool   `json:"openForOffers"`
}

// UpdateTodo applies a partial update; owner only.
func UpdateTodo(s *store.Store) gin.HandlerFunc {
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

		var req UpdateTodoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		patch := store.TodoPatch{
			Name:          req.Name,
			Notes:         req.Notes,
			OpenForOffers: req.OpenForOffers,
		}
		if req.Priority != nil {
			priority := models.Priority(*req.Priority)
			patch.Priority = &priority
		}
		if req.Duedate != nil {
			duedate, err := time.Parse(dateLayout, *req.Duedate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "duedate must be formatted YYYY-MM-DD"})
				return
			}
			patch.Duedate = &duedate
		}

		todo, err := s.UpdateTodo(user, todoID, patch)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, todo)
	}
}

// DeleteTodo removes a todo and everything attached to it; owner only.
func DeleteTodo(s *store.Store) gin.HandlerFunc {
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

		deletedID, err := s.DeleteTodo(user, todoID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deletedID})
	}
}

package handlers

import (
	"net/http"

	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// CreateEvaluationRequest is the payload for rating a candidate. The overall
// rating is required; the other three scales may be omitted.
type CreateEvaluationRequest struct {
	NoShow          bool   `json:"noShow"`
	Headline        string `json:"headline"`
	Comment         string `json:"comment"`
	Professionalism *int   `json:"professionalism"`
	Completeness    *int   `json:"completeness"`
	Efficiency      *int   `json:"efficiency"`
	OverallRating   *int   `json:"overallRating" binding:"required"`
}

// CreateEvaluation records the caller's rating for the candidate on the todo
// and completes the accepted offer in the same transaction.
func CreateEvaluation(s *store.Store) gin.HandlerFunc {
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

		tasktaker, err := s.GetUserByUsername(c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}

		var req CreateEvaluationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		evaluation, err := s.CreateEvaluation(user, todoID, tasktaker, store.EvaluationCreate{
			NoShow:          req.NoShow,
			Headline:        req.Headline,
			Comment:         req.Comment,
			Professionalism: req.Professionalism,
			Completeness:    req.Completeness,
			Efficiency:      req.Efficiency,
			OverallRating:   *req.OverallRating,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, evaluation)
	}
}

// ListEvaluations returns every evaluation left for the candidate.
func ListEvaluations(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasktaker, err := s.GetUserByUsername(c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}

		evaluations, err := s.ListEvaluations(tasktaker)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": evaluations})
	}
}

// GetEvaluation returns the evaluation for one todo and candidate.
func GetEvaluation(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID, ok := todoIDParam(c)
		if !ok {
			return
		}

		tasktaker, err := s.GetUserByUsername(c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}

		evaluation, err := s.GetEvaluation(todoID, tasktaker)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, evaluation)
	}
}

// GetEvaluationStats returns the candidate's aggregated rating summary.
func GetEvaluationStats(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasktaker, err := s.GetUserByUsername(c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}

		stats, err := s.AggregateEvaluations(tasktaker)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

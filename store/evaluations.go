package store

import (
	"errors"
	"fmt"

	"github.com/emilearthur/todo/auth"
	"github.com/emilearthur/todo/models"

	"gorm.io/gorm"
)

// EvaluationCreate carries the rating fields for a new evaluation. The overall
// rating is required; the other three may be omitted and are then excluded
// from averages.
type EvaluationCreate struct {
	NoShow          bool
	Headline        string
	Comment         string
	Professionalism *int
	Completeness    *int
	Efficiency      *int
	OverallRating   int
}

// EvaluationAggregate is the rating summary for one candidate. Averages and
// min/max are nil when the candidate has no evaluations at all.
type EvaluationAggregate struct {
	AvgProfessionalism *float64 `json:"avgProfessionalism"`
	AvgCompleteness    *float64 `json:"avgCompleteness"`
	AvgEfficiency      *float64 `json:"avgEfficiency"`
	AvgOverallRating   *float64 `json:"avgOverallRating"`
	MinOverallRating   *int     `json:"minOverallRating"`
	MaxOverallRating   *int     `json:"maxOverallRating"`
	OneStars           int64    `json:"oneStars"`
	TwoStars           int64    `json:"twoStars"`
	ThreeStars         int64    `json:"threeStars"`
	FourStars          int64    `json:"fourStars"`
	FiveStars          int64    `json:"fiveStars"`
	TotalEvaluations   int64    `json:"totalEvaluations"`
	TotalNoShow        int64    `json:"totalNoShow"`
}

const aggregateRatingsQuery = `
SELECT AVG(professionalism) AS avg_professionalism,
       AVG(completeness) AS avg_completeness,
       AVG(efficiency) AS avg_efficiency,
       AVG(overall_rating) AS avg_overall_rating,
       MIN(overall_rating) AS min_overall_rating,
       MAX(overall_rating) AS max_overall_rating,
       COALESCE(SUM(CASE WHEN overall_rating = 1 THEN 1 ELSE 0 END), 0) AS one_stars,
       COALESCE(SUM(CASE WHEN overall_rating = 2 THEN 1 ELSE 0 END), 0) AS two_stars,
       COALESCE(SUM(CASE WHEN overall_rating = 3 THEN 1 ELSE 0 END), 0) AS three_stars,
       COALESCE(SUM(CASE WHEN overall_rating = 4 THEN 1 ELSE 0 END), 0) AS four_stars,
       COALESCE(SUM(CASE WHEN overall_rating = 5 THEN 1 ELSE 0 END), 0) AS five_stars,
       COUNT(todo_id) AS total_evaluations,
       COALESCE(SUM(CASE WHEN no_show THEN 1 ELSE 0 END), 0) AS total_no_show
FROM evaluations
WHERE tasktaker_id = ?`

// CreateEvaluation records the owner's one-time rating of the accepted
// candidate and flips that offer to completed in the same transaction.
// Completing without evaluating, or the reverse, is not reachable.
func (s *Store) CreateEvaluation(actor *models.User, todoID uint, tasktaker *models.User, create EvaluationCreate) (*models.Evaluation, error) {
	if !auth.ValidateRating(create.OverallRating) {
		return nil, fmt.Errorf("%w: overall rating must be between 0 and 5", ErrValidation)
	}
	for _, rating := range []*int{create.Professionalism, create.Completeness, create.Efficiency} {
		if rating != nil && !auth.ValidateRating(*rating) {
			return nil, fmt.Errorf("%w: ratings must be between 0 and 5", ErrValidation)
		}
	}

	todo, err := s.GetTodo(todoID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, todo) {
		return nil, fmt.Errorf("%w: users are unable to leave evaluations for todos they don't own", ErrForbidden)
	}

	evaluation := &models.Evaluation{
		TodoID:          todo.ID,
		TasktakerID:     tasktaker.ID,
		NoShow:          create.NoShow,
		Headline:        create.Headline,
		Comment:         create.Comment,
		Professionalism: create.Professionalism,
		Completeness:    create.Completeness,
		Efficiency:      create.Efficiency,
		OverallRating:   create.OverallRating,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		offer, err := s.getOffer(tx, todo.ID, tasktaker.ID)
		if err != nil {
			return err
		}
		if offer.Status != models.OfferAccepted {
			return fmt.Errorf("%w: only accepted offers can be evaluated", ErrConflict)
		}

		var count int64
		if err := tx.Model(&models.Evaluation{}).
			Where("todo_id = ? AND tasktaker_id = ?", todo.ID, tasktaker.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: an evaluation for this todo and candidate already exists", ErrConflict)
		}

		if err := tx.Create(evaluation).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Offer{}).
			Where("todo_id = ? AND user_id = ? AND status = ?", todo.ID, tasktaker.ID, models.OfferAccepted).
			Update("status", models.OfferCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("%w: offer is no longer accepted", ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return evaluation, nil
}

// GetEvaluation returns the evaluation left for the candidate on the todo.
func (s *Store) GetEvaluation(todoID uint, tasktaker *models.User) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := s.db.Where("todo_id = ? AND tasktaker_id = ?", todoID, tasktaker.ID).First(&evaluation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no evaluation found", ErrNotFound)
		}
		return nil, err
	}
	return &evaluation, nil
}

// ListEvaluations returns every evaluation left for the candidate.
func (s *Store) ListEvaluations(tasktaker *models.User) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := s.db.Where("tasktaker_id = ?", tasktaker.ID).Order("created_at DESC").Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

// AggregateEvaluations computes the candidate's rating summary in a single
// query. Averages run only over rows that carry a value for the field.
func (s *Store) AggregateEvaluations(tasktaker *models.User) (*EvaluationAggregate, error) {
	var agg EvaluationAggregate
	if err := s.db.Raw(aggregateRatingsQuery, tasktaker.ID).Scan(&agg).Error; err != nil {
		return nil, err
	}
	return &agg, nil
}

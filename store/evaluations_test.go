package store

import (
	"fmt"
	"testing"

	"github.com/emilearthur/todo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEvaluation(t *testing.T) {
	t.Run("completes the accepted offer", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		candidate := createTestUser(t, s, "candidate")
		todo := createAcceptedOffer(t, s, owner, candidate)

		professionalism := 4
		evaluation, err := s.CreateEvaluation(owner, todo.ID, candidate, EvaluationCreate{
			Headline:        "solid work",
			Professionalism: &professionalism,
			OverallRating:   5,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, evaluation.OverallRating)

		offer, err := s.GetOffer(owner, todo.ID, candidate)
		require.NoError(t, err)
		assert.Equal(t, models.OfferCompleted, offer.Status)
	})

	t.Run("one evaluation per todo and candidate", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		candidate := createTestUser(t, s, "candidate")
		todo := createAcceptedOffer(t, s, owner, candidate)

		_, err := s.CreateEvaluation(owner, todo.ID, candidate, EvaluationCreate{OverallRating: 4})
		require.NoError(t, err)

		_, err = s.CreateEvaluation(owner, todo.ID, candidate, EvaluationCreate{OverallRating: 2})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("pending offers cannot be evaluated", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		candidate := createTestUser(t, s, "candidate")
		todo := createTestTodo(t, s, owner, true)

		_, err := s.CreateOffer(candidate, todo.ID)
		require.NoError(t, err)

		_, err = s.CreateEvaluation(owner, todo.ID, candidate, EvaluationCreate{OverallRating: 4})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("only owner evaluates", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		candidate := createTestUser(t, s, "candidate")
		todo := createAcceptedOffer(t, s, owner, candidate)

		_, err := s.CreateEvaluation(candidate, todo.ID, candidate, EvaluationCreate{OverallRating: 5})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("ratings out of range", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		candidate := createTestUser(t, s, "candidate")
		todo := createAcceptedOffer(t, s, owner, candidate)

		_, err := s.CreateEvaluation(owner, todo.ID, candidate, EvaluationCreate{OverallRating: 6})
		assert.ErrorIs(t, err, ErrValidation)

		bad := -1
		_, err = s.CreateEvaluation(owner, todo.ID, candidate, EvaluationCreate{
			OverallRating: 4,
			Efficiency:    &bad,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAggregateEvaluations(t *testing.T) {
	t.Run("summary over all evaluations", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		candidate := createTestUser(t, s, "candidate")

		four := 4
		five := 5
		evaluations := []EvaluationCreate{
			{OverallRating: 5, Professionalism: &four},
			{OverallRating: 5, Professionalism: &five},
			{OverallRating: 4},
			{OverallRating: 3, NoShow: true},
			{OverallRating: 5},
		}
		for i, create := range evaluations {
			todo, err := s.CreateTodo(owner, createTestTodoInput(i))
			require.NoError(t, err)
			_, err = s.CreateOffer(candidate, todo.ID)
			require.NoError(t, err)
			_, err = s.AcceptOffer(owner, todo.ID, candidate)
			require.NoError(t, err)
			_, err = s.CreateEvaluation(owner, todo.ID, candidate, create)
			require.NoError(t, err)
		}

		agg, err := s.AggregateEvaluations(candidate)
		require.NoError(t, err)

		require.NotNil(t, agg.AvgOverallRating)
		assert.InDelta(t, 4.4, *agg.AvgOverallRating, 0.001)
		require.NotNil(t, agg.MinOverallRating)
		assert.Equal(t, 3, *agg.MinOverallRating)
		require.NotNil(t, agg.MaxOverallRating)
		assert.Equal(t, 5, *agg.MaxOverallRating)

		// Professionalism was rated on two evaluations only; the average must
		// ignore the rest.
		require.NotNil(t, agg.AvgProfessionalism)
		assert.InDelta(t, 4.5, *agg.AvgProfessionalism, 0.001)
		assert.Nil(t, agg.AvgCompleteness)

		assert.Equal(t, int64(3), agg.FiveStars)
		assert.Equal(t, int64(1), agg.FourStars)
		assert.Equal(t, int64(1), agg.ThreeStars)
		assert.Equal(t, int64(0), agg.TwoStars)
		assert.Equal(t, int64(5), agg.TotalEvaluations)
		assert.Equal(t, int64(1), agg.TotalNoShow)
	})

	t.Run("empty summary has nil averages", func(t *testing.T) {
		s := CreateTestStore()
		candidate := createTestUser(t, s, "candidate")

		agg, err := s.AggregateEvaluations(candidate)
		require.NoError(t, err)
		assert.Nil(t, agg.AvgOverallRating)
		assert.Nil(t, agg.MinOverallRating)
		assert.Zero(t, agg.TotalEvaluations)
		assert.Zero(t, agg.FiveStars)
	})
}

func createTestTodoInput(i int) TodoCreate {
	return TodoCreate{
		Name:          fmt.Sprintf("errand %d", i),
		Duedate:       testDuedate(),
		OpenForOffers: true,
	}
}

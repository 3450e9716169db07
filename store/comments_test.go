package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	t.Run("owner comments own todo", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		todo := createTestTodo(t, s, owner, false)

		comment, err := s.CreateComment(owner, todo.ID, "remember the hedge trimmer", false)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, comment.OwnerID)
		assert.False(t, comment.Task)
	})

	t.Run("outsiders cannot comment a todo", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		intruder := createTestUser(t, s, "intruder")
		todo := createTestTodo(t, s, owner, false)

		_, err := s.CreateComment(intruder, todo.ID, "hello", false)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("task comments need an accepted offer", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		todo := createTestTodo(t, s, owner, true)

		_, err := s.CreateComment(owner, todo.ID, "any progress?", true)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("accepted candidate can task-comment", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		candidate := createTestUser(t, s, "candidate")
		bystander := createTestUser(t, s, "bystander")
		todo := createAcceptedOffer(t, s, owner, candidate)

		_, err := s.CreateComment(candidate, todo.ID, "starting tomorrow morning", true)
		assert.NoError(t, err)
		_, err = s.CreateComment(owner, todo.ID, "sounds good", true)
		assert.NoError(t, err)

		_, err = s.CreateComment(bystander, todo.ID, "me too", true)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("body is required", func(t *testing.T) {
		s := CreateTestStore()
		owner := createTestUser(t, s, "owner")
		todo := createTestTodo(t, s, owner, false)

		_, err := s.CreateComment(owner, todo.ID, "", false)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestListComments(t *testing.T) {
	s := CreateTestStore()
	owner := createTestUser(t, s, "owner")
	candidate := createTestUser(t, s, "candidate")
	todo := createAcceptedOffer(t, s, owner, candidate)

	_, err := s.CreateComment(owner, todo.ID, "todo note", false)
	require.NoError(t, err)
	_, err = s.CreateComment(candidate, todo.ID, "task note", true)
	require.NoError(t, err)

	todoComments, err := s.ListComments(todo.ID, false)
	require.NoError(t, err)
	require.Len(t, todoComments, 1)
	assert.Equal(t, "todo note", todoComments[0].Body)

	taskComments, err := s.ListComments(todo.ID, true)
	require.NoError(t, err)
	require.Len(t, taskComments, 1)
	assert.Equal(t, "task note", taskComments[0].Body)
}

func TestUpdateAndDeleteComment(t *testing.T) {
	s := CreateTestStore()
	owner := createTestUser(t, s, "owner")
	intruder := createTestUser(t, s, "intruder")
	todo := createTestTodo(t, s, owner, false)

	comment, err := s.CreateComment(owner, todo.ID, "first draft", false)
	require.NoError(t, err)

	t.Run("author edits", func(t *testing.T) {
		updated, err := s.UpdateComment(owner, comment.ID, "second draft")
		require.NoError(t, err)
		assert.Equal(t, "second draft", updated.Body)
	})

	t.Run("others cannot edit or delete", func(t *testing.T) {
		_, err := s.UpdateComment(intruder, comment.ID, "vandalism")
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = s.DeleteComment(intruder, comment.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("author deletes", func(t *testing.T) {
		deletedID, err := s.DeleteComment(owner, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, comment.ID, deletedID)

		_, err = s.GetComment(comment.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

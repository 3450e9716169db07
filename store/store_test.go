package store

import (
	"testing"
	"time"

	"github.com/emilearthur/todo/models"

	"github.com/stretchr/testify/require"
)

func testDuedate() time.Time {
	return time.Now().Add(48 * time.Hour)
}

func createTestUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()

	user, err := s.Register(username, username+"@example.com", "opensesame")
	require.NoError(t, err)
	return user
}

func createTestTodo(t *testing.T, s *Store, owner *models.User, open bool) *models.Todo {
	t.Helper()

	todo, err := s.CreateTodo(owner, TodoCreate{
		Name:          "mow the lawn",
		Notes:         "front yard only",
		Duedate:       time.Now().Add(48 * time.Hour),
		OpenForOffers: open,
	})
	require.NoError(t, err)
	return todo
}

// createAcceptedOffer wires the full happy path: candidate offers on the
// owner's open todo and the owner accepts.
func createAcceptedOffer(t *testing.T, s *Store, owner, candidate *models.User) *models.Todo {
	t.Helper()

	todo := createTestTodo(t, s, owner, true)
	_, err := s.CreateOffer(candidate, todo.ID)
	require.NoError(t, err)
	_, err = s.AcceptOffer(owner, todo.ID, candidate)
	require.NoError(t, err)
	return todo
}

package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/emilearthur/todo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedFeedTodos inserts todos with fixed timestamps so the event ordering is
// deterministic: 30 open todos created a minute apart, every third one
// modified later, plus noise the feed must never show (the reader's own todos
// and closed ones).
func seedFeedTodos(t *testing.T, s *Store, poster, reader *models.User, base time.Time) {
	t.Helper()

	for i := 1; i <= 30; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		updated := created
		if i%3 == 0 {
			updated = base.Add(time.Duration(30+i) * time.Minute)
		}
		todo := models.Todo{
			Name:          fmt.Sprintf("todo %d", i),
			Priority:      models.PriorityStandard,
			Duedate:       base.Add(72 * time.Hour),
			OpenForOffers: true,
			OwnerID:       poster.ID,
			CreatedAt:     created,
			UpdatedAt:     updated,
		}
		require.NoError(t, s.db.Create(&todo).Error)
	}

	noise := []models.Todo{
		{Name: "readers own", Priority: models.PriorityStandard, Duedate: base.Add(72 * time.Hour),
			OpenForOffers: true, OwnerID: reader.ID, CreatedAt: base.Add(15 * time.Minute), UpdatedAt: base.Add(15 * time.Minute)},
		{Name: "closed", Priority: models.PriorityStandard, Duedate: base.Add(72 * time.Hour),
			OpenForOffers: false, OwnerID: poster.ID, CreatedAt: base.Add(16 * time.Minute), UpdatedAt: base.Add(16 * time.Minute)},
	}
	for i := range noise {
		require.NoError(t, s.db.Create(&noise[i]).Error)
	}
}

func TestFeed(t *testing.T) {
	s := CreateTestStore()
	poster := createTestUser(t, s, "poster")
	reader := createTestUser(t, s, "reader")
	base := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	seedFeedTodos(t, s, poster, reader, base)

	t.Run("newest first, own and closed todos excluded", func(t *testing.T) {
		items, err := s.Feed(reader, 50, time.Now())
		require.NoError(t, err)

		// 30 creates plus 10 updates.
		require.Len(t, items, 40)

		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].EventTimestamp.After(items[i-1].EventTimestamp),
				"items must be sorted newest first")
		}
		for _, item := range items {
			assert.NotEqual(t, reader.ID, item.Todo.OwnerID)
			assert.True(t, item.Todo.OpenForOffers)
		}

		// The most recent event is the update of todo 30.
		assert.Equal(t, FeedEventUpdate, items[0].EventType)
		assert.Equal(t, "todo 30", items[0].Todo.Name)
	})

	t.Run("modified todos appear twice", func(t *testing.T) {
		items, err := s.Feed(reader, 50, time.Now())
		require.NoError(t, err)

		byName := map[string][]string{}
		for _, item := range items {
			byName[item.Todo.Name] = append(byName[item.Todo.Name], item.EventType)
		}
		assert.ElementsMatch(t, []string{FeedEventCreate, FeedEventUpdate}, byName["todo 3"])
		assert.ElementsMatch(t, []string{FeedEventCreate}, byName["todo 4"])
	})

	t.Run("cursor pages do not overlap", func(t *testing.T) {
		page1, err := s.Feed(reader, 15, time.Now())
		require.NoError(t, err)
		require.Len(t, page1, 15)

		cursor := page1[len(page1)-1].EventTimestamp
		page2, err := s.Feed(reader, 15, cursor)
		require.NoError(t, err)
		require.NotEmpty(t, page2)

		seen := map[string]bool{}
		for _, item := range page1 {
			seen[fmt.Sprintf("%d/%s", item.Todo.ID, item.EventType)] = true
		}
		for _, item := range page2 {
			key := fmt.Sprintf("%d/%s", item.Todo.ID, item.EventType)
			assert.False(t, seen[key], "event %s appeared on both pages", key)
			assert.True(t, item.EventTimestamp.Before(cursor))
		}
	})

	t.Run("page size is truncated and bounded", func(t *testing.T) {
		items, err := s.Feed(reader, 5, time.Now())
		require.NoError(t, err)
		assert.Len(t, items, 5)

		_, err = s.Feed(reader, 0, time.Now())
		assert.ErrorIs(t, err, ErrValidation)
		_, err = s.Feed(reader, 51, time.Now())
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("cursor before all events is empty", func(t *testing.T) {
		items, err := s.Feed(reader, 20, base)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

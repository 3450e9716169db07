package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/emilearthur/todo/models"
)

// Feed event types.
const (
	FeedEventCreate = "is_create"
	FeedEventUpdate = "is_update"
)

// FeedItem is one entry of the activity stream: a todo plus the event that
// put it there.
type FeedItem struct {
	Todo           models.Todo `json:"todo"`
	EventType      string      `json:"eventType"`
	EventTimestamp time.Time   `json:"eventTimestamp"`
}

// Feed returns up to pageSize events over open todos not owned by the
// requester, newest first. A todo contributes a create event at its creation
// time and, when it has been modified since, an update event at its
// last-modified time. The cursor is a strict less-than on event timestamp;
// the todo id breaks timestamp ties so pagination stays deterministic.
func (s *Store) Feed(requester *models.User, pageSize int, startingAt time.Time) ([]FeedItem, error) {
	if pageSize < 1 || pageSize > 50 {
		return nil, fmt.Errorf("%w: page size must be between 1 and 50", ErrValidation)
	}

	var created []models.Todo
	if err := s.db.
		Where("open_for_offers = ? AND owner_id <> ? AND created_at < ?", true, requester.ID, startingAt).
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Find(&created).Error; err != nil {
		return nil, err
	}

	var updated []models.Todo
	if err := s.db.
		Where("open_for_offers = ? AND owner_id <> ? AND updated_at < ? AND updated_at <> created_at",
			true, requester.ID, startingAt).
		Order("updated_at DESC, id DESC").
		Limit(pageSize).
		Find(&updated).Error; err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(created)+len(updated))
	for _, todo := range created {
		items = append(items, FeedItem{Todo: todo, EventType: FeedEventCreate, EventTimestamp: todo.CreatedAt})
	}
	for _, todo := range updated {
		items = append(items, FeedItem{Todo: todo, EventType: FeedEventUpdate, EventTimestamp: todo.UpdatedAt})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].EventTimestamp.Equal(items[j].EventTimestamp) {
			return items[i].EventTimestamp.After(items[j].EventTimestamp)
		}
		return items[i].Todo.ID > items[j].Todo.ID
	})

	if len(items) > pageSize {
		items = items[:pageSize]
	}
	return items, nil
}

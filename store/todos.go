package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/emilearthur/todo/models"

	"gorm.io/gorm"
)

// TodoCreate carries the fields for a new todo. Priority defaults to critical
// when unset.
type TodoCreate struct {
	Name          string
	Notes         string
	Priority      models.Priority
	Duedate       time.Time
	OpenForOffers bool
}

// TodoPatch carries the todo fields an owner may change. Nil fields are left
// untouched.
type TodoPatch struct {
	Name          *string
	Notes         *string
	Priority      *models.Priority
	Duedate       *time.Time
	OpenForOffers *bool
}

// CreateTodo inserts a todo owned by the actor.
func (s *Store) CreateTodo(actor *models.User, create TodoCreate) (*models.Todo, error) {
	if create.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if create.Duedate.IsZero() {
		return nil, fmt.Errorf("%w: duedate is required", ErrValidation)
	}
	if create.Priority == "" {
		create.Priority = models.PriorityCritical
	}
	if !models.ValidPriority(create.Priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, create.Priority)
	}

	todo := &models.Todo{
		Name:          create.Name,
		Notes:         create.Notes,
		Priority:      create.Priority,
		Duedate:       create.Duedate,
		OpenForOffers: create.OpenForOffers,
		OwnerID:       actor.ID,
	}
	if err := s.db.Create(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

// GetTodo fetches a todo by id.
func (s *Store) GetTodo(id uint) (*models.Todo, error) {
	var todo models.Todo
	if err := s.db.First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no todo found with that id", ErrNotFound)
		}
		return nil, err
	}
	return &todo, nil
}

// ListUserTodos returns every todo the actor owns.
func (s *Store) ListUserTodos(actor *models.User) ([]models.Todo, error) {
	var todos []models.Todo
	if err := s.db.Where("owner_id = ?", actor.ID).Order("created_at DESC, id DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// ListOpenTodos returns every todo currently open for offers.
func (s *Store) ListOpenTodos() ([]models.Todo, error) {
	var todos []models.Todo
	if err := s.db.Where("open_for_offers = ?", true).Order("created_at DESC, id DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo applies the patch to the todo. Only the owner may update, and
// priority must never resolve to an empty value after the merge.
func (s *Store) UpdateTodo(actor *models.User, todoID uint, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.GetTodo(todoID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, todo) {
		return nil, fmt.Errorf("%w: users are only able to modify todos they own", ErrForbidden)
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		updates["name"] = *patch.Name
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.Priority != nil {
		if !models.ValidPriority(*patch.Priority) {
			return nil, fmt.Errorf("%w: invalid priority, cannot be empty", ErrValidation)
		}
		updates["priority"] = *patch.Priority
	}
	if patch.Duedate != nil {
		if patch.Duedate.IsZero() {
			return nil, fmt.Errorf("%w: duedate cannot be empty", ErrValidation)
		}
		updates["duedate"] = *patch.Duedate
	}
	if patch.OpenForOffers != nil {
		updates["open_for_offers"] = *patch.OpenForOffers
	}

	if len(updates) == 0 {
		return todo, nil
	}

	if err := s.db.Model(todo).Updates(updates).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

// DeleteTodo removes the todo and everything hanging off it in one
// transaction. Returns the deleted id.
func (s *Store) DeleteTodo(actor *models.User, todoID uint) (uint, error) {
	todo, err := s.GetTodo(todoID)
	if err != nil {
		return 0, err
	}
	if !IsOwner(actor, todo) {
		return 0, fmt.Errorf("%w: users are only able to delete todos they own", ErrForbidden)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", todo.ID).Delete(&models.Offer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", todo.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", todo.ID).Delete(&models.Evaluation{}).Error; err != nil {
			return err
		}
		return tx.Delete(todo).Error
	})
	if err != nil {
		return 0, err
	}
	return todo.ID, nil
}

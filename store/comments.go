package store

import (
	"errors"
	"fmt"

	"github.com/emilearthur/todo/models"

	"gorm.io/gorm"
)

// CreateComment attaches a remark to a todo, or to its accepted offer when
// task is set. Todo comments are owner-only; task comments are open to the
// owner and the accepted candidate, and only while an accepted offer exists.
func (s *Store) CreateComment(actor *models.User, todoID uint, body string, task bool) (*models.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", ErrValidation)
	}

	todo, err := s.GetTodo(todoID)
	if err != nil {
		return nil, err
	}

	if task {
		var offer models.Offer
		err := s.db.Where("todo_id = ? AND status = ?", todo.ID, models.OfferAccepted).First(&offer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: only accepted tasks can be commented", ErrConflict)
			}
			return nil, err
		}
		if !IsOwner(actor, todo) && actor.ID != offer.UserID {
			return nil, fmt.Errorf("%w: users are unable to leave comments for tasks they don't take part in", ErrForbidden)
		}
	} else if !IsOwner(actor, todo) {
		return nil, fmt.Errorf("%w: users are unable to comment todos they don't own", ErrForbidden)
	}

	comment := &models.Comment{
		Body:    body,
		TodoID:  todo.ID,
		OwnerID: actor.ID,
		Task:    task,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment fetches a comment by id.
func (s *Store) GetComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no comment found with that id", ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

// ListComments returns the todo's comments of one kind, newest first.
func (s *Store) ListComments(todoID uint, task bool) ([]models.Comment, error) {
	if _, err := s.GetTodo(todoID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.Where("todo_id = ? AND task = ?", todoID, task).
		Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment changes the body of the actor's own comment.
func (s *Store) UpdateComment(actor *models.User, commentID uint, body string) (*models.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", ErrValidation)
	}

	comment, err := s.GetComment(commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != actor.ID {
		return nil, fmt.Errorf("%w: users are unable to modify comments they did not create", ErrForbidden)
	}

	if err := s.db.Model(comment).Update("body", body).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the actor's own comment and returns the deleted id.
func (s *Store) DeleteComment(actor *models.User, commentID uint) (uint, error) {
	comment, err := s.GetComment(commentID)
	if err != nil {
		return 0, err
	}
	if comment.OwnerID != actor.ID {
		return 0, fmt.Errorf("%w: users are unable to delete comments they did not create", ErrForbidden)
	}

	if err := s.db.Delete(comment).Error; err != nil {
		return 0, err
	}
	return comment.ID, nil
}

package store

import (
	"errors"
	"fmt"

	"github.com/emilearthur/todo/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOffer files a pending offer by the actor on the todo.
func (s *Store) CreateOffer(actor *models.User, todoID uint) (*models.Offer, error) {
	todo, err := s.GetTodo(todoID)
	if err != nil {
		return nil, err
	}
	if IsOwner(actor, todo) {
		return nil, fmt.Errorf("%w: users are unable to create offers for todos they own", ErrConflict)
	}
	if !todo.OpenForOffers {
		return nil, fmt.Errorf("%w: todo is not open for offers", ErrConflict)
	}

	var count int64
	if err := s.db.Model(&models.Offer{}).
		Where("todo_id = ? AND user_id = ?", todo.ID, actor.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: users are not allowed to offer on a todo more than once", ErrConflict)
	}

	offer := &models.Offer{TodoID: todo.ID, UserID: actor.ID, Status: models.OfferPending}
	if err := s.db.Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// ListOffers returns all offers on the todo. Only the owner may list them.
func (s *Store) ListOffers(actor *models.User, todoID uint) ([]models.Offer, error) {
	todo, err := s.GetTodo(todoID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, todo) {
		return nil, fmt.Errorf("%w: only the todo owner can list its offers", ErrForbidden)
	}

	var offers []models.Offer
	if err := s.db.Where("todo_id = ?", todo.ID).Order("created_at ASC").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// GetOffer returns the candidate's offer on the todo. Visible to the todo
// owner and to the candidate themself only.
func (s *Store) GetOffer(actor *models.User, todoID uint, candidate *models.User) (*models.Offer, error) {
	todo, err := s.GetTodo(todoID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, todo) && actor.ID != candidate.ID {
		return nil, fmt.Errorf("%w: offers are visible to the todo owner and the candidate only", ErrForbidden)
	}
	return s.getOffer(s.db, todoID, candidate.ID)
}

func (s *Store) getOffer(tx *gorm.DB, todoID, userID uint) (*models.Offer, error) {
	var offer models.Offer
	if err := tx.Where("todo_id = ? AND user_id = ?", todoID, userID).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no offer found", ErrNotFound)
		}
		return nil, err
	}
	return &offer, nil
}

// AcceptOffer moves the candidate's pending offer to accepted and rejects all
// other pending offers on the todo in the same transaction. The todo row is
// locked for the duration so two concurrent accepts cannot both pass the
// "no accepted sibling" check; the loser gets a conflict.
func (s *Store) AcceptOffer(actor *models.User, todoID uint, candidate *models.User) (*models.Offer, error) {
	var accepted models.Offer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// sqlite has no FOR UPDATE; its single writer serializes accepts anyway.
		q := tx
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var todo models.Todo
		if err := q.First(&todo, todoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no todo found with that id", ErrNotFound)
			}
			return err
		}
		if !IsOwner(actor, &todo) {
			return fmt.Errorf("%w: only the todo owner can accept an offer", ErrForbidden)
		}

		offer, err := s.getOffer(tx, todo.ID, candidate.ID)
		if err != nil {
			return err
		}
		if offer.Status != models.OfferPending {
			return fmt.Errorf("%w: only pending offers can be accepted", ErrConflict)
		}

		var acceptedCount int64
		if err := tx.Model(&models.Offer{}).
			Where("todo_id = ? AND status = ?", todo.ID, models.OfferAccepted).
			Count(&acceptedCount).Error; err != nil {
			return err
		}
		if acceptedCount > 0 {
			return fmt.Errorf("%w: another offer on this todo is already accepted", ErrConflict)
		}

		// Target first, siblings second: a reader inside this transaction
		// sees one accepted offer, never zero, between the two writes.
		res := tx.Model(&models.Offer{}).
			Where("todo_id = ? AND user_id = ? AND status = ?", todo.ID, candidate.ID, models.OfferPending).
			Update("status", models.OfferAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("%w: offer is no longer pending", ErrConflict)
		}

		if err := tx.Model(&models.Offer{}).
			Where("todo_id = ? AND user_id <> ? AND status = ?", todo.ID, candidate.ID, models.OfferPending).
			Update("status", models.OfferRejected).Error; err != nil {
			return err
		}

		return tx.Where("todo_id = ? AND user_id = ?", todo.ID, candidate.ID).First(&accepted).Error
	})
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}

// CancelOffer lets the accepted candidate withdraw. Every rejected sibling on
// the todo returns to pending in the same transaction.
func (s *Store) CancelOffer(actor *models.User, todoID uint) (*models.Offer, error) {
	var cancelled models.Offer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		offer, err := s.getOffer(tx, todoID, actor.ID)
		if err != nil {
			return err
		}
		if offer.Status != models.OfferAccepted {
			return fmt.Errorf("%w: only accepted offers can be cancelled", ErrConflict)
		}

		res := tx.Model(&models.Offer{}).
			Where("todo_id = ? AND user_id = ? AND status = ?", todoID, actor.ID, models.OfferAccepted).
			Update("status", models.OfferCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("%w: offer is no longer accepted", ErrConflict)
		}

		if err := tx.Model(&models.Offer{}).
			Where("todo_id = ? AND user_id <> ? AND status = ?", todoID, actor.ID, models.OfferRejected).
			Update("status", models.OfferPending).Error; err != nil {
			return err
		}

		return tx.Where("todo_id = ? AND user_id = ?", todoID, actor.ID).First(&cancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// RescindOffer hard-deletes the actor's own pending offer and returns the
// number of rows removed.
func (s *Store) RescindOffer(actor *models.User, todoID uint) (int64, error) {
	offer, err := s.getOffer(s.db, todoID, actor.ID)
	if err != nil {
		return 0, err
	}
	if offer.Status != models.OfferPending {
		return 0, fmt.Errorf("%w: only pending offers can be rescinded", ErrConflict)
	}

	res := s.db.Where("todo_id = ? AND user_id = ? AND status = ?", todoID, actor.ID, models.OfferPending).
		Delete(&models.Offer{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: offer is no longer pending", ErrConflict)
	}
	return res.RowsAffected, nil
}

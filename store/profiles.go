package store

import (
	"errors"
	"fmt"

	"github.com/emilearthur/todo/models"

	"gorm.io/gorm"
)

// ProfilePatch carries the profile fields a caller may change. Nil fields are
// left untouched.
type ProfilePatch struct {
	Firstname   *string
	Lastname    *string
	Middlename  *string
	PhoneNumber *string
	Bio         *string
	Image       *string
}

// GetProfileByUsername returns the profile behind a username.
func (s *Store) GetProfileByUsername(username string) (*models.Profile, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, fmt.Errorf("%w: no profile found", ErrNotFound)
	}
	return user.Profile, nil
}

// UpdateProfile applies the patch to the actor's own profile.
func (s *Store) UpdateProfile(actor *models.User, patch ProfilePatch) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", actor.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no profile found", ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Firstname != nil {
		updates["firstname"] = *patch.Firstname
	}
	if patch.Lastname != nil {
		updates["lastname"] = *patch.Lastname
	}
	if patch.Middlename != nil {
		updates["middlename"] = *patch.Middlename
	}
	if patch.PhoneNumber != nil {
		updates["phone_number"] = *patch.PhoneNumber
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}

	if len(updates) > 0 {
		if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &profile, nil
}

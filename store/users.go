package store

import (
	"errors"
	"fmt"

	"github.com/emilearthur/todo/auth"
	"github.com/emilearthur/todo/models"

	"gorm.io/gorm"
)

// Register creates a user with a salted password hash and provisions an empty
// profile in the same transaction.
func (s *Store) Register(username, email, password string) (*models.User, error) {
	if !auth.ValidateUsername(username) {
		return nil, fmt.Errorf("%w: invalid username", ErrValidation)
	}
	if !auth.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email is already taken", ErrConflict)
	}
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username is already taken", ErrConflict)
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, salt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		IsActive: true,
		Password: hash,
		Salt:     salt,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies email+password. Unknown email and wrong password both
// fail closed with the same unauthorized error.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}

	if err := auth.CheckPassword(password, user.Salt, user.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return &user, nil
}

// GetUserByUsername loads a user with their profile attached.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no user found", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user with their profile attached.
func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no user found", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UserPatch carries the user fields a caller may change. Nil fields are left
// untouched.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
}

// UpdateUser applies the patch to the user. Changing the email clears the
// verified flag until the new address is confirmed again.
func (s *Store) UpdateUser(user *models.User, patch UserPatch) (*models.User, error) {
	updates := map[string]interface{}{}

	if patch.Email != nil && *patch.Email != user.Email {
		if !auth.ValidateEmail(*patch.Email) {
			return nil, fmt.Errorf("%w: invalid email", ErrValidation)
		}
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", *patch.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: email is already taken", ErrConflict)
		}
		updates["email"] = *patch.Email
		updates["email_verified"] = false
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if !auth.ValidateUsername(*patch.Username) {
			return nil, fmt.Errorf("%w: invalid username", ErrValidation)
		}
		var count int64
		if err := s.db.Model(&models.User{}).Where("username = ?", *patch.Username).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: username is already taken", ErrConflict)
		}
		updates["username"] = *patch.Username
	}

	if patch.Password != nil {
		if err := auth.ValidatePassword(*patch.Password); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		salt, err := auth.GenerateSalt()
		if err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*patch.Password, salt)
		if err != nil {
			return nil, err
		}
		updates["salt"] = salt
		updates["password"] = hash
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(user.ID)
}

// MarkEmailVerified flips the user's verification flag.
func (s *Store) MarkEmailVerified(user *models.User) error {
	return s.db.Model(user).Update("email_verified", true).Error
}

// UsersByIDs batch-loads users for response population.
func (s *Store) UsersByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

package auth

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// HashPassword hashes password+salt with bcrypt.
func HashPassword(password, salt string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password+salt), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies password+salt against the stored hash.
func CheckPassword(password, salt, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+salt))
}

// ValidatePassword enforces password length limits.
func ValidatePassword(password string) error {
	if len(password) < 7 {
		return errors.New("password must be at least 7 characters long")
	}
	if len(password) > 80 {
		return errors.New("password must be at most 80 characters long")
	}
	return nil
}

// ValidateUsername restricts usernames to letters, digits, underscore and dash.
func ValidateUsername(username string) bool {
	if len(username) < 3 || len(username) > 80 {
		return false
	}
	return usernamePattern.MatchString(username)
}

// ValidateEmail checks the email shape.
func ValidateEmail(email string) bool {
	pattern := `^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`
	re := regexp.MustCompile(pattern)
	return re.MatchString(email)
}

// ValidateRating checks that a rating value is inside the 0..5 scale.
func ValidateRating(rating int) bool {
	return rating >= 0 && rating <= 5
}

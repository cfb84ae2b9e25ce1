package store

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/notelab/notelab-api/models"
)

const maxEmailLength = 254

// ResolveOrCreateUser maps the identity provider's subject to our user row,
// creating it on first sight and syncing email/name on later logins.
// Repeated calls with the same subject converge to a single row, including
// under concurrent first-login races.
func (s *Store) ResolveOrCreateUser(authID, email, name string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	var user models.User
	err := s.db.Where("auth_id = ?", authID).First(&user).Error
	if err == nil {
		if user.Email != email || user.Name != name {
			user.Email = email
			user.Name = name
			if err := s.db.Save(&user).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	user = models.User{
		PublicID: publicID,
		AuthID:   authID,
		Email:    email,
		Name:     name,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Two first-login requests can race on the insert; whoever lost
		// re-resolves the row the winner created.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.User
			if err := s.db.Where("auth_id = ?", authID).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &user, nil
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return &ValidationError{Field: "email", Message: "email must be at most 254 characters"}
	}
	// ParseAddress also accepts display-name forms like "Alice <a@b.co>";
	// only a bare address is a valid email here.
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "invalid email"}
	}
	return nil
}

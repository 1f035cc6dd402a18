package services

import (
	"errors"
	"strings"

	"gamelibrary/webapp/internal/models"
	"gamelibrary/webapp/internal/repository"
	"gamelibrary/webapp/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is lowered in tests.
var hashCost = bcrypt.DefaultCost

// AddUser registers username with a bcrypt hash of password.
func AddUser(repo repository.Repository, username, password string) error {
	username = strings.TrimSpace(username)
	existing, err := repo.GetUser(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrNameNotUnique
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return apperrors.Internal("Failed to hash password", err)
	}
	err = repo.AddUser(&models.User{Username: username, PasswordHash: string(hash)})
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return ErrNameNotUnique
	}
	return err
}

// AuthenticateUser checks the credentials and tells an unknown user apart from a
// wrong password.
func AuthenticateUser(repo repository.Repository, username, password string) (*UserProfile, error) {
	user, err := repo.GetUser(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthentication
	}
	return &UserProfile{ID: user.ID, Username: user.Username}, nil
}

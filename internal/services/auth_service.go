package services

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "taskhero.com/taskhero/internal/errors"
	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
	"taskhero.com/taskhero/internal/sessions"
)

type AuthService struct {
	users    *repository.UserRepository
	sessions sessions.Store
	cost     int
}

type SignUpInput struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
}

func NewAuthService(users *repository.UserRepository, store sessions.Store, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:    users,
		sessions: store,
		cost:     bcryptCost,
	}
}

// SignUp creates the account and opens a session for it.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*model.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Username == "":
		return nil, "", apperrors.Validation("username is required")
	case in.FirstName == "":
		return nil, "", apperrors.Validation("first name is required")
	case in.LastName == "":
		return nil, "", apperrors.Validation("last name is required")
	case in.Email == "":
		return nil, "", apperrors.Validation("email is required")
	case in.Password == "":
		return nil, "", apperrors.Validation("password is required")
	case in.Password != in.PasswordConfirm:
		return nil, "", apperrors.Validation("passwords do not match")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, "", apperrors.Validation("email is invalid")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[auth] user %s signed up", user.Username)
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

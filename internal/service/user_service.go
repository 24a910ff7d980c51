package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserService covers account documents outside the auth flow: social-login
// style creation, profile lookup and partial profile updates.
type UserService interface {
	// CreateUser stores a user document. A password, when present, is hashed
	// before storage; the role defaults to member.
	CreateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateProfile applies a partial update to the user matched by email.
	UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser inserts a new user, failing with ErrUserAlreadyExists on a
// duplicate email.
func (s *userService) CreateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user == nil || user.Email == "" {
		return nil, errors.New("user email is required")
	}
	if user.Role == "" {
		user.Role = domain.RoleMember
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// GetByEmail fetches one user profile.
func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies a partial update; the repository strips immutable fields.
func (s *userService) UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) error {
	if email == "" {
		return errors.New("email is required")
	}
	err := s.userRepo.UpdateByEmail(ctx, email, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

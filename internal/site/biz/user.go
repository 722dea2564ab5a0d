package biz

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/site/store"
	apperrors "github.com/edukit/campus/pkg/errors"
)

// UserService handles administrative account management.
type UserService struct {
	store store.Factory
}

// NewUserService creates a new UserService.
func NewUserService(store store.Factory) *UserService {
	return &UserService{store: store}
}

// Create creates an account with a hashed password.
func (s *UserService) Create(ctx context.Context, user *model.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.ErrInternal.WithCause(err)
	}
	user.Password = string(hashed)
	if err := s.store.Users().Create(ctx, user); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves an account by username.
func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.store.Users().Get(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return user, nil
}

// List lists accounts with pagination.
func (s *UserService) List(ctx context.Context, offset, limit int) (*model.UserList, error) {
	count, items, err := s.store.Users().List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.UserList{TotalCount: count, Items: items}, nil
}

// ChangePassword rehashes and stores a new password for the account.
func (s *UserService) ChangePassword(ctx context.Context, username, newPassword string) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.ErrInternal.WithCause(err)
	}
	user.Password = string(hashed)
	if err := s.store.Users().Update(ctx, user); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator when no account with the
// username exists yet. Returns true when it created one.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.store.Users().Get(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, apperrors.ErrDatabase.WithCause(err)
	}

	admin := &model.User{
		Username: username,
		Password: password,
		Name:     "Administrator",
		Role:     model.RoleAdmin,
		Status:   model.UserStatusEnabled,
	}
	if err := s.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

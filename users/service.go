// Package users, as part of the profile management module.
// This file, `service.go`, contains the business logic behind the profile routes.
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/auth"
	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/store"
)

// UserService provides profile management for the authenticated user.
type UserService struct {
	store    store.Store
	hasher   auth.Hasher
	notifier auth.Notifier
	log      logging.Logger
}

// NewUserService creates a new UserService.
func NewUserService(st store.Store, hasher auth.Hasher, notifier auth.Notifier, log logging.Logger) *UserService {
	if notifier == nil {
		notifier = auth.NopNotifier{}
	}
	return &UserService{store: st, hasher: hasher, notifier: notifier, log: log}
}

// UpdateProfile applies the non-nil fields of req to user. Every field is validated
// before anything is written, and a new password is re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, user *store.User, req *UpdateProfileRequest) (*store.User, error) {
	updated := *user

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := auth.ValidateName(name); err != nil {
			return nil, err
		}
		updated.Name = name
	}

	if req.Email != nil {
		email := auth.NormalizeEmail(*req.Email)
		if err := auth.ValidateEmail(email); err != nil {
			return nil, err
		}
		updated.Email = email
	}

	if req.Password != nil {
		password := strings.TrimSpace(*req.Password)
		if err := auth.ValidatePassword(password); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return nil, apperror.NewInternalError("failed to hash password", err)
		}
		updated.Password = hashed
	}

	if err := s.store.UpdateUser(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, apperror.NewValidationError("email is already in use", err)
		case errors.Is(err, store.ErrNotFound):
			return nil, apperror.NewNotFoundError("user not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}

	return &updated, nil
}

// DeleteAccount removes the user together with every task it owns and
// queues the cancellation email.
func (s *UserService) DeleteAccount(ctx context.Context, user *store.User) (*store.User, error) {
	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError("user not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to delete user", err)
	}

	s.log.Info(ctx, "user deleted", "user_id", user.ID)
	s.notifier.SendCancellation(ctx, user.Email, user.Name)
	return user, nil
}

// SetAvatar stores an already normalized avatar image.
func (s *UserService) SetAvatar(ctx context.Context, userID uuid.UUID, png []byte) error {
	if err := s.store.SetAvatar(ctx, userID, png); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NewNotFoundError("user not found", err)
		}
		return apperror.NewDatabaseError("failed to save avatar", err)
	}
	return nil
}

// DeleteAvatar clears the avatar.
func (s *UserService) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	return s.SetAvatar(ctx, userID, nil)
}

// GetAvatar returns the PNG avatar of any user. A missing user and a user
// without an avatar are both NotFound.
func (s *UserService) GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError("avatar not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	if len(user.Avatar) == 0 {
		return nil, apperror.NewNotFoundError("avatar not found", nil)
	}
	return user.Avatar, nil
}

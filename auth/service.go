package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/store"
)

// Service implements the credential operations: signup, login, logout and logout-all.
type Service struct {
	store    store.Store
	hasher   Hasher
	tokens   *TokenIssuer
	notifier Notifier
	log      logging.Logger
}

// NewService wires the credential operations to their collaborators.
func NewService(st store.Store, hasher Hasher, tokens *TokenIssuer, notifier Notifier, log logging.Logger) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		store:    st,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
}

// Signup validates and stores a new user with its first session token, then queues the welcome email.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	req.normalize()
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	// The ID is chosen up front so the first token can be embedded in the insert.
	user := &store.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	user.Tokens = []string{token}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperror.NewValidationError("email is already in use", err)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	s.log.Info(ctx, "user signed up", "user_id", user.ID)
	s.notifier.SendWelcome(ctx, user.Email, user.Name)

	return &AuthResponse{User: user, Token: token}, nil
}

// Login checks the credentials and appends a new session token; earlier sessions stay valid.
// Unknown email and wrong password produce the same AuthError.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperror.NewAuthError("Unable to login", nil)
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewAuthError("Unable to login", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to verify password", err)
	}
	if !ok {
		return nil, apperror.NewAuthError("Unable to login", nil)
	}

	if s.hasher.NeedsRehash(user.Password) {
		s.rehash(ctx, user, req.Password)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	if err := s.store.AppendToken(ctx, user.ID, token); err != nil {
		return nil, apperror.NewDatabaseError("failed to save token", err)
	}
	user.Tokens = append(user.Tokens, token)

	return &AuthResponse{User: user, Token: token}, nil
}

// Logout revokes exactly the given session.
func (s *Service) Logout(ctx context.Context, user *store.User, token string) error {
	if err := s.store.RemoveToken(ctx, user.ID, token); err != nil {
		return apperror.NewDatabaseError("failed to revoke token", err)
	}
	return nil
}

// LogoutAll revokes every session of the user.
func (s *Service) LogoutAll(ctx context.Context, user *store.User) error {
	if err := s.store.ClearTokens(ctx, user.ID); err != nil {
		return apperror.NewDatabaseError("failed to revoke tokens", err)
	}
	return nil
}

// rehash upgrades a hash made with an old cost. Failure only costs us the upgrade.
func (s *Service) rehash(ctx context.Context, user *store.User, password string) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Warn(ctx, "password rehash failed", "user_id", user.ID, "error", err)
		return
	}
	user.Password = hashed
	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.log.Warn(ctx, "saving rehashed password failed", "user_id", user.ID, "error", err)
	}
}

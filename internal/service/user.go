package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/auth"
	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
)

// UserStore is the storage surface for accounts and profiles.
type UserStore interface {
	CreateUserWithProfile(ctx context.Context, user repository.CreateUserParams, profile repository.CreateProfileParams) (domain.User, error)
	GetUserWithProfile(ctx context.Context, userID int64) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, params repository.UpdateProfileParams) error
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	store  UserStore
	logger *slog.Logger
}

var _ domain.UserService = (*userService)(nil)

// NewUserService creates the account service. Logger may be nil.
func NewUserService(store UserStore, logger *slog.Logger) domain.UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{store: store, logger: logger}
}

// CreateUser registers an account with its role-tagged profile. The password
// is bcrypt-hashed before storage; the plaintext is never persisted.
func (s *userService) CreateUser(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	const op = "user.create"

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, domain.Invalid(op, "email is required")
	}
	if !params.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if params.FirstName == "" || params.LastName == "" {
		return nil, domain.Invalid(op, "first_name and last_name are required")
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid(op, "password must be at least 8 characters")
		}
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	user, err := s.store.CreateUserWithProfile(ctx,
		repository.CreateUserParams{Email: email, PasswordHash: hash},
		repository.CreateProfileParams{
			Role:      params.Role,
			FirstName: params.FirstName,
			LastName:  params.LastName,
			Phone:     params.Phone,
			Address:   params.Address,
		})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, domain.Internal(err, op, "failed to create user")
	}

	s.logger.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(params.Role)))
	return &user, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.GetUserWithProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get", "failed to read user")
	}
	return &user, nil
}

func (s *userService) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	users, err := s.store.ListUsersByRole(ctx, role)
	if err != nil {
		return nil, domain.Internal(err, "user.list", "failed to list users")
	}
	return users, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, params domain.UpdateProfileParams) (*domain.User, error) {
	err := s.store.UpdateProfile(ctx, userID, repository.UpdateProfileParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Address:   params.Address,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.update", "failed to update profile")
	}
	return s.GetUser(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return domain.Internal(err, "user.delete", "failed to delete user")
	}
	s.logger.Info("user deleted", slog.Int64("user_id", userID))
	return nil
}

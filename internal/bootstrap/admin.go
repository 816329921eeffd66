// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopinger/shopinger/internal/domain"
)

// AdminConfig contains configuration for the initial admin user.
type AdminConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Validate checks that the admin configuration is usable.
func (c *AdminConfig) Validate() error {
	if c.Email == "" {
		return errors.New("admin email is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	return nil
}

// EnsureMasterAdmin creates the initial admin user if it doesn't exist.
// Idempotent: safe to call on every startup. If the config is empty the step
// is skipped with a warning, which allows running without an admin in dev.
func EnsureMasterAdmin(ctx context.Context, users domain.UserService, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - SHOPINGER_ADMIN_EMAIL or SHOPINGER_ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	user, err := users.CreateUser(ctx, domain.CreateUserParams{
		Email:     cfg.Email,
		Password:  cfg.Password,
		Role:      domain.RoleAdmin,
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			logger.Info("bootstrap: admin user already exists", "email", cfg.Email)
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("bootstrap: admin user created",
		"user_id", user.ID,
		"email", cfg.Email,
	)
	return nil
}

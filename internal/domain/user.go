package domain

import (
	"context"
	"time"
)

// User domain errors.
var (
	ErrUserNotFound   = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrDuplicateEmail = &Error{Code: ECONFLICT, Message: "Email already registered"}
	ErrInvalidRole    = &Error{Code: EINVALID, Message: "Invalid role"}
)

// Role tags a user's profile. One User entity covers every kind of actor in
// the system; the role determines which dashboard and operations apply.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleTeller          Role = "teller"
	RoleDeliverer       Role = "deliverer"
	RoleSupplierContact Role = "supplier_contact"
	RoleAdmin           Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTeller, RoleDeliverer, RoleSupplierContact, RoleAdmin:
		return true
	}
	return false
}

// User is the account record. Credentials live here; everything
// role-specific lives on the Profile.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Profile      *Profile  `json:"profile,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the role tag and role-specific payload for a user.
type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService manages users and their role-tagged profiles.
type UserService interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	GetUser(ctx context.Context, userID int64) (*User, error)
	ListUsersByRole(ctx context.Context, role Role) ([]User, error)
	UpdateProfile(ctx context.Context, userID int64, params UpdateProfileParams) (*User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// CreateUserParams contains fields for creating a user with its profile.
type CreateUserParams struct {
	Email     string
	Password  string
	Role      Role
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// UpdateProfileParams contains mutable profile fields.
type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

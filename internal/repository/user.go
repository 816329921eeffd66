package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
)

// CreateUserParams contains fields for inserting a user account.
type CreateUserParams struct {
	Email        string
	PasswordHash string
}

// CreateUser inserts the account row and returns its id and timestamps.
func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (domain.User, error) {
	user := domain.User{Email: params.Email, PasswordHash: params.PasswordHash}
	err := q.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		params.Email, params.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

// CreateProfileParams contains fields for inserting a profile.
type CreateProfileParams struct {
	UserID    int64
	Role      domain.Role
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// CreateProfile inserts the role-tagged profile for a user.
func (q *Queries) CreateProfile(ctx context.Context, params CreateProfileParams) (domain.Profile, error) {
	profile := domain.Profile{
		UserID:    params.UserID,
		Role:      params.Role,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Address:   params.Address,
	}
	err := q.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, role, first_name, last_name, phone, address)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		RETURNING id, created_at, updated_at`,
		params.UserID, params.Role, params.FirstName, params.LastName, params.Phone, params.Address,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	return profile, err
}

const userWithProfileColumns = `
	u.id, u.email, u.password_hash, u.created_at, u.updated_at,
	p.id, p.user_id, p.role, p.first_name, p.last_name,
	COALESCE(p.phone, ''), COALESCE(p.address, ''), p.created_at, p.updated_at`

func scanUserWithProfile(row pgx.Row) (domain.User, error) {
	var user domain.User
	var profile domain.Profile
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
		&profile.ID, &profile.UserID, &profile.Role, &profile.FirstName, &profile.LastName,
		&profile.Phone, &profile.Address, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	user.Profile = &profile
	return user, nil
}

// GetUserWithProfile fetches a user and its profile by user id.
func (q *Queries) GetUserWithProfile(ctx context.Context, userID int64) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+userWithProfileColumns+`
		FROM users u JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1`, userID)
	return scanUserWithProfile(row)
}

// GetUserByEmail fetches a user and its profile by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+userWithProfileColumns+`
		FROM users u JOIN profiles p ON p.user_id = u.id
		WHERE u.email = $1`, email)
	return scanUserWithProfile(row)
}

// ListUsersByRole returns all users holding the given role.
func (q *Queries) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+userWithProfileColumns+`
		FROM users u JOIN profiles p ON p.user_id = u.id
		WHERE p.role = $1
		ORDER BY u.id`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUserWithProfile(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfileParams contains mutable profile fields. Nil pointers leave
// the stored value unchanged.
type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

// UpdateProfile updates a user's profile fields.
func (q *Queries) UpdateProfile(ctx context.Context, userID int64, params UpdateProfileParams) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE profiles SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone = COALESCE($4, phone),
			address = COALESCE($5, address),
			updated_at = now()
		WHERE user_id = $1`,
		userID, params.FirstName, params.LastName, params.Phone, params.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreateUserWithProfile inserts the account and its profile in one
// transaction, so a user can never exist without a role tag.
func (s *Store) CreateUserWithProfile(ctx context.Context, user CreateUserParams, profile CreateProfileParams) (domain.User, error) {
	var created domain.User
	err := s.ExecTx(ctx, func(q *Queries) error {
		u, err := q.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		profile.UserID = u.ID
		p, err := q.CreateProfile(ctx, profile)
		if err != nil {
			return err
		}
		u.Profile = &p
		created = u
		return nil
	})
	return created, err
}

// DeleteUser removes a user; the profile row cascades.
func (q *Queries) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
)

// fakeUserStore stores accounts in memory with a unique email constraint.
type fakeUserStore struct {
	users   map[int64]domain.User
	byEmail map[string]int64
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   make(map[int64]domain.User),
		byEmail: make(map[string]int64),
	}
}

func (s *fakeUserStore) CreateUserWithProfile(_ context.Context, user repository.CreateUserParams, profile repository.CreateProfileParams) (domain.User, error) {
	if _, exists := s.byEmail[user.Email]; exists {
		return domain.User{}, &pgconn.PgError{Code: "23505"}
	}
	s.nextID++
	u := domain.User{
		ID:           s.nextID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Profile: &domain.Profile{
			UserID:    s.nextID,
			Role:      profile.Role,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Phone:     profile.Phone,
			Address:   profile.Address,
		},
	}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return u, nil
}

func (s *fakeUserStore) GetUserWithProfile(_ context.Context, userID int64) (domain.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return s.users[id], nil
}

func (s *fakeUserStore) ListUsersByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range s.users {
		if u.Profile != nil && u.Profile.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, userID int64, params repository.UpdateProfileParams) error {
	u, ok := s.users[userID]
	if !ok || u.Profile == nil {
		return pgx.ErrNoRows
	}
	if params.FirstName != nil {
		u.Profile.FirstName = *params.FirstName
	}
	if params.Phone != nil {
		u.Profile.Phone = *params.Phone
	}
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) DeleteUser(_ context.Context, userID int64) error {
	u, ok := s.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(s.byEmail, u.Email)
	delete(s.users, userID)
	return nil
}

func validUserParams() domain.CreateUserParams {
	return domain.CreateUserParams{
		Email:     "teller@shopinger.test",
		Password:  "correct horse battery",
		Role:      domain.RoleTeller,
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestUserService_CreateUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	user, err := svc.CreateUser(context.Background(), validUserParams())
	require.NoError(t, err)

	assert.Equal(t, "teller@shopinger.test", user.Email)
	require.NotNil(t, user.Profile)
	assert.Equal(t, domain.RoleTeller, user.Profile.Role)

	// The stored hash verifies against the plaintext and is not the plaintext.
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
}

func TestUserService_CreateUserNormalizesEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	params := validUserParams()
	params.Email = "  Teller@Shopinger.Test "
	user, err := svc.CreateUser(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "teller@shopinger.test", user.Email)
}

func TestUserService_CreateUserDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	_, err := svc.CreateUser(context.Background(), validUserParams())
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), validUserParams())
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_CreateUserValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil)

	cases := []struct {
		name   string
		mutate func(*domain.CreateUserParams)
	}{
		{"empty email", func(p *domain.CreateUserParams) { p.Email = " " }},
		{"bad role", func(p *domain.CreateUserParams) { p.Role = "superuser" }},
		{"missing first name", func(p *domain.CreateUserParams) { p.FirstName = "" }},
		{"short password", func(p *domain.CreateUserParams) { p.Password = "short" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validUserParams()
			tc.mutate(&params)
			_, err := svc.CreateUser(context.Background(), params)
			assert.True(t, domain.IsCode(err, domain.EINVALID))
		})
	}
}

func TestUserService_ListUsersByRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	_, err := svc.CreateUser(context.Background(), validUserParams())
	require.NoError(t, err)

	deliverer := validUserParams()
	deliverer.Email = "rider@shopinger.test"
	deliverer.Role = domain.RoleDeliverer
	_, err = svc.CreateUser(context.Background(), deliverer)
	require.NoError(t, err)

	tellers, err := svc.ListUsersByRole(context.Background(), domain.RoleTeller)
	require.NoError(t, err)
	assert.Len(t, tellers, 1)

	_, err = svc.ListUsersByRole(context.Background(), "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserService_UpdateProfile(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	created, err := svc.CreateUser(context.Background(), validUserParams())
	require.NoError(t, err)

	phone := "555-0100"
	user, err := svc.UpdateProfile(context.Background(), created.ID, domain.UpdateProfileParams{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", user.Profile.Phone)

	_, err = svc.UpdateProfile(context.Background(), 999, domain.UpdateProfileParams{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	created, err := svc.CreateUser(context.Background(), validUserParams())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), created.ID), domain.ErrUserNotFound)

	_, err = svc.GetUser(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

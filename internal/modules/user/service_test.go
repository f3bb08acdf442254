package user

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (r *fakeRepo) CreateUser(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return apperr.Conflict("an account with this email already exists")
	}
	r.byEmail[u.Email] = u
	r.byID[u.ID.String()] = u
	return nil
}

func (r *fakeRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (r *fakeRepo) UpdateBillingAddress(_ context.Context, id string, address json.RawMessage) error {
	u, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.BillingAddress = address
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeRepo(), auth.New("test-secret"))

	u, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ada",
		Email:    "  Ada@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Ada Again",
		Email:    "ada@example.com",
		Password: "another pass",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	tokens := auth.New("test-secret")
	svc := NewService(newFakeRepo(), tokens)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, u, err := svc.Login(context.Background(), "Ada@Example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email)

		p, err := tokens.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, p.UserID)
		assert.Equal(t, RoleCustomer, p.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("unknown email reports the same error", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		require.Error(t, err)
		assert.EqualError(t, err, "invalid credentials")
	})
}

func TestSaveBillingAddress(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, auth.New("test-secret"))

	u, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	addr := json.RawMessage(`{"city":"Lagos"}`)
	require.NoError(t, svc.SaveBillingAddress(context.Background(), u.ID.String(), addr))
	assert.JSONEq(t, `{"city":"Lagos"}`, string(repo.byID[u.ID.String()].BillingAddress))

	err = svc.SaveBillingAddress(context.Background(), u.ID.String(), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

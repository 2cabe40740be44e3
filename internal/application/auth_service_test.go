package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentwheels/service-rental/internal/auth"
	"github.com/rentwheels/service-rental/internal/domain"
	userDomain "github.com/rentwheels/service-rental/internal/domain/user"
)

// fakeUserRepo is an in-memory user repository enforcing unique emails.
type fakeUserRepo struct {
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("User", email)
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("a user with this email already exists")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func newAuthService() *AuthService {
	return NewAuthService(newFakeUserRepo(), auth.NewJWTManager("test-secret", time.Hour), zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()

	reg, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ana@example.com", reg.User.Email)
	assert.Equal(t, "customer", reg.User.Role)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name: "Other", Email: "ana@example.com", Password: "another-pass",
	})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	// Wrong password and unknown email fail the same way.
	var unauthorized *domain.UnauthorizedError

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorAs(t, err, &unauthorized)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorAs(t, err, &unauthorized)
}

func TestGetProfile(t *testing.T) {
	svc := newAuthService()

	reg, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
}

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/application/auth"
	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/finanzas-api/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	uc := auth.NewAuthUseCase(store, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "finanzas-test"})
	return uc, store
}

func TestRegisterUser_NormalizaEmailYHasheaPassword(t *testing.T) {
	uc, store := newAuth(t)

	out, err := uc.RegisterUser(dto.RegisterRequest{Email: " Ana@Example.com ", Password: "secreto123", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.False(t, out.EmailVerified)

	u, err := store.GetByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "secreto123", u.PasswordHash)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ANA@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenContieneUsuarioYRol(t *testing.T) {
	uc, _ := newAuth(t)
	reg, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
}

func TestLogin_Errores(t *testing.T) {
	uc, store := newAuth(t)
	reg, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := store.GetByID(reg.ID)
	require.NoError(t, err)
	u.Status = entity.UserStatusSuspended
	require.NoError(t, store.Update(u))

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/application/apptest"
	"github.com/jhoicas/retailflow-api/internal/application/auth"
	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(s *apptest.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(s.UserRepo(), s.BranchRepo(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestRegister_CreaCustomerYToken(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "  Ana@Mail.com ", Password: "secreto"})
	require.NoError(t, err)

	assert.Equal(t, "ana@mail.com", out.User.Email)
	assert.Equal(t, "customer", out.User.Role)
	assert.Nil(t, out.User.AssignedBranch)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "customer", role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)
	in := dto.RegisterRequest{Name: "Ana", Email: "ana@mail.com", Password: "secreto"}

	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newAuth(apptest.NewStore())
	cases := []dto.RegisterRequest{
		{Name: "", Email: "a@b.com", Password: "secreto"},
		{Name: "A", Email: "no-es-email", Password: "secreto"},
		{Name: "A", Email: "a@b.com", Password: "123"},
	}
	for _, in := range cases {
		_, err := uc.Register(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestLogin(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@mail.com", Password: "secreto"})
	require.NoError(t, err)

	t.Run("rol por defecto customer", func(t *testing.T) {
		out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@mail.com", Password: "secreto"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@mail.com", Password: "otro"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("email desconocido", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "x@mail.com", Password: "secreto"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("rol declarado distinto es credencial inválida, no forbidden", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@mail.com", Password: "secreto", Role: "admin"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestMe_IncluyeSucursalAsignada(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)
	b := s.AddBranch("Norte")
	emp := s.AddUser("emp", entity.RoleEmployee)
	require.NoError(t, s.UserRepo().SetAssignedBranch(context.Background(), emp.ID, b.ID))

	out, err := uc.Me(context.Background(), emp.ID)
	require.NoError(t, err)
	require.NotNil(t, out.AssignedBranch)
	assert.Equal(t, "Norte", out.AssignedBranch.Name)

	_, err = uc.Me(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
	"github.com/jhoicas/retailflow-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña en el registro.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil actual.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, branchRepo repository.BranchRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, branchRepo: branchRepo, jwtCfg: jwtCfg}
}

// Register crea siempre un customer: nunca asigna sucursal ni rol elevado.
// ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email y password son requeridos", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		WalletAmount: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Dos registros simultáneos con el mismo email: el constraint único decide.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(user, nil)
}

// Login verifica email, password y que el rol declarado coincida con el almacenado.
// Cualquiera de las tres fallas devuelve ErrInvalidCredentials (nunca ErrForbidden).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	claimed := entity.RoleCustomer
	if strings.TrimSpace(in.Role) != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, domain.ErrInvalidCredentials
		}
		claimed = r
	}

	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Role != claimed {
		return nil, domain.ErrInvalidCredentials
	}

	ref, err := uc.branchRef(ctx, user)
	if err != nil {
		return nil, err
	}
	return uc.issue(user, ref)
}

// Me devuelve el perfil del usuario autenticado con su sucursal asignada.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	ref, err := uc.branchRef(ctx, user)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user, ref), nil
}

func (uc *AuthUseCase) issue(user *entity.User, ref *entity.BranchRef) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: *toUserResponse(user, ref)}, nil
}

func (uc *AuthUseCase) branchRef(ctx context.Context, user *entity.User) (*entity.BranchRef, error) {
	if user.AssignedBranchID == nil {
		return nil, nil
	}
	refs, err := uc.branchRepo.GetRefs(ctx, []string{*user.AssignedBranchID})
	if err != nil {
		return nil, err
	}
	if ref, ok := refs[*user.AssignedBranchID]; ok {
		return &ref, nil
	}
	return nil, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User, ref *entity.BranchRef) *dto.UserResponse {
	out := &dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role.String(),
		WalletAmount: u.WalletAmount,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
	if ref != nil {
		out.AssignedBranch = &dto.BranchRefResponse{ID: ref.ID, Name: ref.Name, Location: ref.Location}
	}
	return out
}

// seed aplica las migraciones y crea cuentas de administrador o empleado.
// El registro público solo crea clientes, así que las cuentas con rol elevado se crean aquí.
//
// Uso:
//
//	go run ./cmd/seed -migrate
//	go run ./cmd/seed -name "Admin" -email admin@retail.test -password secreto -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retailflow-api/internal/application/auth"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/retailflow-api/pkg/config"
	"github.com/jhoicas/retailflow-api/pkg/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "aplicar migraciones antes de sembrar")
	name := flag.String("name", "", "nombre del usuario")
	email := flag.String("email", "", "email del usuario")
	password := flag.String("password", "", "contraseña (mínimo 6 caracteres)")
	roleFlag := flag.String("role", "admin", "admin | employee")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("files", applied).Msg("migraciones aplicadas")
	}

	if *email == "" {
		if !*migrate {
			flag.Usage()
			os.Exit(2)
		}
		return
	}

	user, err := buildUser(*name, *email, *password, *roleFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	users := postgres.NewUserRepository(pool)
	existing, err := users.GetByEmail(ctx, user.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if existing != nil {
		log.Warn().Str("email", user.Email).Str("role", existing.Role.String()).Msg("el usuario ya existe; no se modifica")
		return
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("crear usuario")
	}
	log.Info().Str("id", user.ID).Str("email", user.Email).Str("role", user.Role.String()).Msg("usuario creado")
}

// buildUser valida los flags y arma el usuario con la contraseña hasheada.
func buildUser(name, email, password, roleFlag string) (*entity.User, error) {
	role, err := entity.ParseRole(roleFlag)
	if err != nil || role == entity.RoleCustomer {
		return nil, fmt.Errorf("role debe ser admin o employee")
	}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name y email son requeridos")
	}
	if len(password) < auth.MinPasswordLength {
		return nil, fmt.Errorf("la contraseña debe tener al menos %d caracteres", auth.MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		WalletAmount: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

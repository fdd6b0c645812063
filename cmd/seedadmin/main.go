// Crea el administrador inicial del sistema.
// Uso: go run ./cmd/seedadmin
//
// This CLI is the only path allowed to mint an admin account directly. It is
// idempotent: when any admin already exists it reports it and exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lisalescano/back-mapp/internal/config"
	"github.com/lisalescano/back-mapp/internal/infra"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	if existing, err := users.FindAnyAdmin(ctx); err == nil {
		fmt.Println("⚠️  Ya existe un usuario administrador")
		fmt.Printf("Email: %s\nUsername: %s\n", existing.Email, existing.Username)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("failed to query admins")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	fullName := "Administrador del Sistema"
	admin := &model.User{
		Username:     "admin",
		Email:        "admin@incidentes.com",
		PasswordHash: string(hash),
		FullName:     &fullName,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	fmt.Println("✅ Usuario administrador creado exitosamente")
	fmt.Printf("Email: %s\nUsername: %s\n", admin.Email, admin.Username)
	fmt.Println("⚠️  IMPORTANTE: cambia la contraseña después del primer login")
}

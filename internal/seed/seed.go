package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/edusphere/edusphere/internal/app/models"
	appRepos "github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@edusphere.app"
	}

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		lgr.Debug().Str("email", adminEmail).Msg("Admin account already present")
		return nil
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set, skipping admin account creation")
		return nil
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.User{
		Email:    adminEmail,
		Password: hashed,
		Name:     "Platform Admin",
		Role:     appModels.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
	return nil
}

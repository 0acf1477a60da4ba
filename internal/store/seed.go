package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/ec-shop-api/internal/auth"
	"github.com/example/ec-shop-api/internal/config"
	"github.com/example/ec-shop-api/internal/models"
)

// SeedAdmin ensures the configured administrative account exists as a
// regular user document with the admin role. Login then takes the same
// path for every principal.
func SeedAdmin(ctx context.Context, users UserStore, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		log.Println("[Store] No admin credentials configured, skipping admin seed")
		return nil
	}

	if _, err := users.GetByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check admin account: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		// A concurrent boot may have seeded it first.
		if IsDuplicateKey(err) {
			return nil
		}
		return fmt.Errorf("seed admin account: %w", err)
	}

	log.Printf("[Store] Seeded admin account %s", cfg.Email)
	return nil
}

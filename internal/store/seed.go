package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/im-saif/Blogify/internal/auth"
	"github.com/im-saif/Blogify/internal/model"
)

// AdminSeed describes the administrative account created on first start.
type AdminSeed struct {
	Email    string
	Name     string
	Password string
}

// Seed ensures the single admin account exists.
// The admin is distinguished by its role, not by insertion order.
func Seed(ctx context.Context, db *sql.DB, admin AdminSeed) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)

	_, err = queries.GetUserByEmail(ctx, admin.Email)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        admin.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         admin.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)

	return nil
}

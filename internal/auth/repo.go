package auth

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"chronomap/pkg/utils"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	TokenVersion int64
	CreatedAt    time.Time
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *Repo) getBy(ctx context.Context, column, value string) (*User, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, token_version, created_at
		FROM users
		WHERE `+column+` = ?
	`, value)

	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.TokenVersion, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return &u, nil
}

func (r *Repo) CreateUser(ctx context.Context, u User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repo) GetTokenVersion(ctx context.Context, userID string) (int64, error) {
	var v int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT token_version FROM users WHERE id = ?
	`, userID).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("get token version: %w", err)
	}
	return v, nil
}

// UpdatePasswordAndBumpTokenVersion changes the password and invalidates
// every previously issued token.
func (r *Repo) UpdatePasswordAndBumpTokenVersion(ctx context.Context, userID, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, token_version = token_version + 1
		WHERE id = ?
	`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *Repo) BumpTokenVersion(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET token_version = token_version + 1 WHERE id = ?
	`, userID)
	if err != nil {
		return fmt.Errorf("bump token version: %w", err)
	}
	return nil
}

// EnsureOwner bootstraps the single owner account from config. There is
// no open registration; the owner is the only user.
func EnsureOwner(ctx context.Context, repo *Repo, cfg utils.AuthConfig) error {
	if !cfg.OwnerConfigured() {
		log.Println("[auth] no owner password configured, mutating routes are unprotected")
		return nil
	}

	existing, err := repo.GetByEmail(ctx, cfg.OwnerEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     cfg.OwnerUsername,
		Email:        cfg.OwnerEmail,
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		return err
	}
	log.Printf("[auth] owner account %q created", cfg.OwnerUsername)
	return nil
}

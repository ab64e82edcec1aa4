package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateUser(
	ctx context.Context,
	u model.User,
) (model.User, error) {
	if strings.TrimSpace(u.Email) == "" {
		return model.User{}, fmt.Errorf("user email must not be empty")
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, boolToInt(u.IsActive), u.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user %s: %w", u.Email, err)
	}
	return u, nil
}

// GetUserByID retrieves a single user by ID. Returns (nil, nil) when no
// user has that ID.
func (s *SQLiteStore) GetUserByID(
	ctx context.Context,
	id string,
) (*model.User, error) {
	var u model.User
	var activeInt int
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, email, display_name, is_active, created_at FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &activeInt, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	u.IsActive = activeInt != 0
	return &u, nil
}

// FindUserByNameOrEmail locates a user by a case-insensitive partial
// match on email first, then display name. Returns (nil, nil) when
// nothing matches.
func (s *SQLiteStore) FindUserByNameOrEmail(
	ctx context.Context,
	query string,
) (*model.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var u model.User
	var activeInt int
	err := s.db.QueryRowxContext(ctx, `
		SELECT id, email, display_name, is_active, created_at FROM users
		WHERE LOWER(email) LIKE ?
		ORDER BY created_at LIMIT 1`, pattern,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &activeInt, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.QueryRowxContext(ctx, `
			SELECT id, email, display_name, is_active, created_at FROM users
			WHERE LOWER(display_name) LIKE ?
			ORDER BY created_at LIMIT 1`, pattern,
		).Scan(&u.ID, &u.Email, &u.DisplayName, &activeInt, &u.CreatedAt)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %q: %w", query, err)
	}
	u.IsActive = activeInt != 0
	return &u, nil
}

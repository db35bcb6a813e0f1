package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anle/todo-api/models"
)

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserStore persists user records. It exclusively owns the users table.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a new user. passwordHash must already be hashed by the
// caller; the store never sees plaintext credentials.
func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)", username,
	).Scan(&exists)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	user := models.User{Username: username, Password: passwordHash}
	err = s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, passwordHash,
	).Scan(&user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, refresh_token FROM users WHERE username=$1", username)
	return scanUser(row)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, refresh_token FROM users WHERE id=$1", id)
	return scanUser(row)
}

// SetRefreshToken overwrites the stored refresh token, invalidating any
// previously issued one.
func (s *UserStore) SetRefreshToken(ctx context.Context, id int64, token string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET refresh_token=$1 WHERE id=$2", token, id)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var refresh sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.Password, &refresh)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.RefreshToken = refresh.String
	return user, nil
}

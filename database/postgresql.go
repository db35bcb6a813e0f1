package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
)

// Connect opens the PostgreSQL connection, verifies it and creates the
// tables if they do not exist yet. A failure here is fatal for startup.
func Connect(uri string) (*sql.DB, error) {
	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		password TEXT NOT NULL,
		refresh_token TEXT
	);

	CREATE TABLE IF NOT EXISTS todos (
		id VARCHAR(50) PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)
	`
	_, err := db.Exec(query)
	return err
}

// Close closes the database handle.
func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anle/todo-api/models"
	"github.com/anle/todo-api/utils"
)

// TodoStore persists todo records. Every query is scoped by the owning user
// so a caller can never see or touch another user's todos.
type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

func (s *TodoStore) ListByUser(ctx context.Context, userID int64) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, content, created_at FROM todos WHERE user_id=$1 ORDER BY created_at",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Content, &todo.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (s *TodoStore) Create(ctx context.Context, userID int64, content string) (models.Todo, error) {
	// retry the random id at most 3 times on the off chance of a collision
	var id string
	for i := 0; i < 3; i++ {
		candidate, err := utils.GenerateRandomID()
		if err != nil {
			return models.Todo{}, fmt.Errorf("generate id: %w", err)
		}

		var exists bool
		if err := s.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM todos WHERE id=$1)", candidate,
		).Scan(&exists); err != nil {
			return models.Todo{}, fmt.Errorf("check id: %w", err)
		}
		if !exists {
			id = candidate
			break
		}
	}
	if id == "" {
		return models.Todo{}, errors.New("failed to generate a unique id")
	}

	todo := models.Todo{
		ID:        id,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (id, user_id, content, created_at) VALUES ($1, $2, $3, $4)",
		todo.ID, todo.UserID, todo.Content, todo.CreatedAt)
	if err != nil {
		return models.Todo{}, fmt.Errorf("insert todo: %w", err)
	}

	return todo, nil
}

// Update changes the content of the todo matching both id and owner.
// ErrNotFound covers a missing record and a record owned by someone else,
// the two cases are deliberately indistinguishable.
func (s *TodoStore) Update(ctx context.Context, id string, userID int64, content string) (models.Todo, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE todos SET content=$1 WHERE id=$2 AND user_id=$3",
		content, id, userID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return models.Todo{}, err
	}
	if count == 0 {
		return models.Todo{}, ErrNotFound
	}

	var todo models.Todo
	err = s.db.QueryRowContext(ctx,
		"SELECT id, user_id, content, created_at FROM todos WHERE id=$1", id,
	).Scan(&todo.ID, &todo.UserID, &todo.Content, &todo.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("reload todo: %w", err)
	}
	return todo, nil
}

// Delete removes the todo matching both id and owner.
func (s *TodoStore) Delete(ctx context.Context, id string, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM todos WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
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

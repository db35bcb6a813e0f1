package store

import (
	"context"
	"errors"
	"testing"
)

func TestTodoStore_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)
	ctx := context.Background()

	todo, err := s.Create(ctx, 1, "buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if todo.ID == "" {
		t.Error("Create() did not assign an id")
	}
	if todo.UserID != 1 {
		t.Errorf("Create() UserID = %d, want 1", todo.UserID)
	}
	if todo.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}

	todos, err := s.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("ListByUser() returned %d todos, want 1", len(todos))
	}
	if todos[0].Content != "buy milk" {
		t.Errorf("ListByUser() Content = %q, want %q", todos[0].Content, "buy milk")
	}
}

func TestTodoStore_ListScopedByUser(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)
	ctx := context.Background()

	if _, err := s.Create(ctx, 1, "mine"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Create(ctx, 2, "theirs"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	todos, err := s.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(todos) != 1 || todos[0].Content != "mine" {
		t.Errorf("ListByUser(1) = %+v, want only the owner's todo", todos)
	}

	empty, err := s.ListByUser(ctx, 3)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if empty == nil {
		t.Error("ListByUser() returned nil, want empty slice")
	}
	if len(empty) != 0 {
		t.Errorf("ListByUser(3) returned %d todos, want 0", len(empty))
	}
}

func TestTodoStore_Update(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)
	ctx := context.Background()

	created, err := s.Create(ctx, 1, "buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := s.Update(ctx, created.ID, 1, "buy oat milk")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Content != "buy oat milk" {
		t.Errorf("Update() Content = %q, want %q", updated.Content, "buy oat milk")
	}
	if updated.ID != created.ID {
		t.Errorf("Update() changed id from %q to %q", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Update() changed CreatedAt from %v to %v", created.CreatedAt, updated.CreatedAt)
	}
}

func TestTodoStore_UpdateOwnershipMismatch(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)
	ctx := context.Background()

	created, err := s.Create(ctx, 1, "buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name   string
		id     string
		userID int64
	}{
		{name: "wrong owner", id: created.ID, userID: 2},
		{name: "missing id", id: "does-not-exist", userID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Update(ctx, tt.id, tt.userID, "hijack"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Update() error = %v, want ErrNotFound", err)
			}
		})
	}

	// content untouched after the failed attempts
	todos, err := s.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if todos[0].Content != "buy milk" {
		t.Errorf("Content = %q after failed updates, want %q", todos[0].Content, "buy milk")
	}
}

func TestTodoStore_Delete(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)
	ctx := context.Background()

	created, err := s.Create(ctx, 1, "buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Delete(ctx, created.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(wrong owner) error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, created.ID, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if err := s.Delete(ctx, created.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(twice) error = %v, want ErrNotFound", err)
	}

	todos, err := s.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("ListByUser() returned %d todos after delete, want 0", len(todos))
	}
}

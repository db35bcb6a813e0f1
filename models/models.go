package models

import "time"

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext. RefreshToken is the most recently issued refresh token, empty
// until the first sign-in.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"-"`
	RefreshToken string `json:"-"`
}

// Todo belongs to exactly one user. UserID is set from the authenticated
// identity at creation and never changes.
type Todo struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials is the request body for /signup and /signin.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TodoInput is the request body for creating or updating a todo.
type TodoInput struct {
	Content string `json:"content"`
}

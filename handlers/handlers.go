package handlers

import (
	"log/slog"

	"github.com/anle/todo-api/auth"
	"github.com/anle/todo-api/events"
	"github.com/anle/todo-api/store"
)

// Handler bundles the collaborators every route needs. Constructed once at
// startup, no package-level state.
type Handler struct {
	users  *store.UserStore
	todos  *store.TodoStore
	tokens *auth.TokenService
	events *events.Hub
	log    *slog.Logger
}

func New(users *store.UserStore, todos *store.TodoStore, tokens *auth.TokenService, hub *events.Hub, log *slog.Logger) *Handler {
	return &Handler{
		users:  users,
		todos:  todos,
		tokens: tokens,
		events: hub,
		log:    log,
	}
}

package router

import (
	"github.com/anle/todo-api/auth"
	"github.com/anle/todo-api/handlers"
	"github.com/anle/todo-api/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler, tokens *auth.TokenService) {
	app.Get("/health", h.HandleHealthCheck)

	app.Post("/signup", h.Signup)
	app.Post("/signin", h.Signin)
	app.Post("/token", h.RefreshToken)

	todos := app.Group("/todos", middleware.Protected(tokens))
	todos.Get("/", h.HandleAllTodos)
	todos.Post("/", middleware.TodoCreateLimiter(), h.HandleCreateTodo)
	todos.Get("/events", h.HandleTodoEvents)
	todos.Put("/:id", h.HandleUpdateTodo)
	todos.Delete("/:id", h.HandleDeleteTodo)
}

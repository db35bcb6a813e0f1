package handlers

import (
	"errors"
	"log/slog"

	"github.com/anle/todo-api/events"
	"github.com/anle/todo-api/middleware"
	"github.com/anle/todo-api/models"
	"github.com/anle/todo-api/store"
	"github.com/gofiber/fiber/v2"
)

// HandleAllTodos lists the caller's todos.
//
//	@Summary	List the caller's todos
//	@Tags		todos
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		models.Todo
//	@Failure	401	{object}	map[string]string
//	@Failure	403	{object}	map[string]string
//	@Router		/todos [get]
func (h *Handler) HandleAllTodos(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	todos, err := h.todos.ListByUser(c.Context(), userID)
	if err != nil {
		h.log.Error("failed to list todos", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching todos"})
	}

	return c.Status(fiber.StatusOK).JSON(todos)
}

// HandleCreateTodo creates a todo owned by the caller.
//
//	@Summary	Create a todo
//	@Tags		todos
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		todo	body		models.TodoInput	true	"todo content"
//	@Success	201		{object}	models.Todo
//	@Failure	400		{object}	map[string]string
//	@Failure	429		{object}	map[string]string
//	@Router		/todos [post]
func (h *Handler) HandleCreateTodo(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input models.TodoInput
	if err := c.BodyParser(&input); err != nil || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing content"})
	}

	todo, err := h.todos.Create(c.Context(), userID, input.Content)
	if err != nil {
		h.log.Error("failed to create todo", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating todo"})
	}

	h.events.Publish(events.Event{Action: events.ActionCreated, Todo: todo})

	return c.Status(fiber.StatusCreated).JSON(todo)
}

// HandleUpdateTodo replaces the content of one of the caller's todos. A todo
// owned by someone else reads as not found.
//
//	@Summary	Update a todo's content
//	@Tags		todos
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"todo id"
//	@Param		todo	body		models.TodoInput	true	"new content"
//	@Success	200		{object}	models.Todo
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/todos/{id} [put]
func (h *Handler) HandleUpdateTodo(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id := c.Params("id")

	var input models.TodoInput
	if err := c.BodyParser(&input); err != nil || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing content"})
	}

	todo, err := h.todos.Update(c.Context(), id, userID, input.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Todo not found"})
		}
		h.log.Error("failed to update todo", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating todo"})
	}

	h.events.Publish(events.Event{Action: events.ActionUpdated, Todo: todo})

	return c.Status(fiber.StatusOK).JSON(todo)
}

// HandleDeleteTodo removes one of the caller's todos.
//
//	@Summary	Delete a todo
//	@Tags		todos
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"todo id"
//	@Success	200	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/todos/{id} [delete]
func (h *Handler) HandleDeleteTodo(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id := c.Params("id")

	if err := h.todos.Delete(c.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Todo not found"})
		}
		h.log.Error("failed to delete todo", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error deleting todo"})
	}

	h.events.Publish(events.Event{
		Action: events.ActionDeleted,
		Todo:   models.Todo{ID: id, UserID: userID},
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Todo deleted"})
}

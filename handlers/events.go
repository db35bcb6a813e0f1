package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anle/todo-api/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

func formatSSEMessage(eventType string, data any) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("event: %s\n", eventType))
	sb.WriteString(fmt.Sprintf("retry: %d\n", 15000))
	sb.WriteString(fmt.Sprintf("data: %v\n", buf.String()))
	sb.WriteString("\n")

	return sb.String(), nil
}

// HandleTodoEvents streams the caller's todo changes as server-sent events.
//
//	@Summary	Stream todo change events
//	@Tags		todos
//	@Produce	text/event-stream
//	@Security	BearerAuth
//	@Success	200
//	@Failure	401	{object}	map[string]string
//	@Failure	403	{object}	map[string]string
//	@Router		/todos/events [get]
func (h *Handler) HandleTodoEvents(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	ch, cancel := h.events.Subscribe(userID)
	notify := c.Context().Done()
	log := h.log

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		keepAliveTickler := time.NewTicker(15 * time.Second)
		defer keepAliveTickler.Stop()
		defer cancel()

		for {
			select {
			case <-notify:
				return
			case ev := <-ch:
				sseMessage, err := formatSSEMessage(ev.Action, ev)
				if err != nil {
					log.Error("failed to format sse message", slog.Any("error", err))
					continue
				}
				if _, err := fmt.Fprint(w, sseMessage); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAliveTickler.C:
				fmt.Fprint(w, ":keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/anle/todo-api/models"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Actions carried by todo change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes a change to a single todo.
type Event struct {
	Action string      `json:"action"`
	Todo   models.Todo `json:"todo"`
}

type session struct {
	userID int64
	ch     chan Event
}

// Hub fans todo change events out to the owner's live SSE sessions and,
// when a broker is configured, publishes them to MQTT.
type Hub struct {
	mu       sync.Mutex
	sessions []*session

	client mqtt.Client
	topic  string
	log    *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{log: log}
}

// ConnectMQTT attaches an MQTT publisher. The topic comes from the URL path,
// defaulting to "todos".
func (h *Hub) ConnectMQTT(rawURL string) error {
	uri, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse mqtt url: %w", err)
	}

	topic := "todos"
	if len(uri.Path) > 1 {
		topic = uri.Path[1:]
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", uri.Host))
	opts.SetClientID("todo-api-pub")

	client := mqtt.NewClient(opts)
	token := client.Connect()
	for !token.WaitTimeout(3 * time.Second) {
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect mqtt: %w", err)
	}

	h.mu.Lock()
	h.client = client
	h.topic = topic
	h.mu.Unlock()

	return nil
}

// Subscribe registers a session for one user. The returned cancel func must
// be called when the client disconnects.
func (h *Hub) Subscribe(userID int64) (<-chan Event, func()) {
	s := &session{userID: userID, ch: make(chan Event, 8)}

	h.mu.Lock()
	h.sessions = append(h.sessions, s)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		idx := slices.Index(h.sessions, s)
		if idx != -1 {
			h.sessions[idx] = nil
			h.sessions = slices.Delete(h.sessions, idx, idx+1)
		}
		h.mu.Unlock()
	}
	return s.ch, cancel
}

// Publish delivers the event to every session of the owning user. A slow
// session drops events rather than blocking the request.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	client, topic := h.client, h.topic
	for _, s := range h.sessions {
		if s.userID != ev.Todo.UserID {
			continue
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
	h.mu.Unlock()

	if client == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("failed to marshal event", slog.Any("error", err))
		return
	}
	client.Publish(topic, 0, false, payload)
}

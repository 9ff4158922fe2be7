package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/policy"
	"github.com/prehab-dev/prehab/internal/services"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type RefreshMessage struct {
	Type       string `json:"type"`
	ExerciseID uint   `json:"exercise_id"`
	Event      string `json:"event"`
}

// ExerciseFinder loads the current state of an exercise so subscribers can be
// re-checked against the read policy.
type ExerciseFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Exercise, error)
}

// client serializes writes; gorilla connections allow one writer at a time.
type client struct {
	conn   *websocket.Conn
	userID uint
	mu     sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub fans exercise change events out to websocket subscribers of that
// exercise.
type Hub struct {
	mu        sync.RWMutex
	clients   map[uint]map[*client]bool
	upgrader  websocket.Upgrader
	exercises ExerciseFinder
	log       zerolog.Logger
}

func NewHub(allowedOrigins []string, exercises ExerciseFinder, log zerolog.Logger) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Hub{
		clients: make(map[uint]map[*client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
		exercises: exercises,
		log:       log,
	}
}

// ExerciseChanged sends a refresh message to every subscriber of exerciseID
// that may still read it. Subscribers that lost read access are disconnected.
func (h *Hub) ExerciseChanged(exerciseID uint, event string) {
	h.mu.RLock()
	subscribers := make([]*client, 0, len(h.clients[exerciseID]))
	for c := range h.clients[exerciseID] {
		subscribers = append(subscribers, c)
	}
	h.mu.RUnlock()

	if len(subscribers) == 0 {
		return
	}

	readable, ok := h.readCheck(exerciseID, event)
	if !ok {
		return
	}

	message := RefreshMessage{Type: "refresh", ExerciseID: exerciseID, Event: event}

	for _, c := range subscribers {
		if !readable(c.userID) {
			h.log.Debug().Uint("exercise_id", exerciseID).Uint("user_id", c.userID).Msg("subscriber lost read access")
			h.drop(exerciseID, c, websocket.ClosePolicyViolation, "exercise is no longer readable")
			continue
		}

		if err := c.writeJSON(message); err != nil {
			h.log.Debug().Err(err).Uint("exercise_id", exerciseID).Msg("failed to broadcast refresh")
			h.unregister(exerciseID, c)
			c.conn.Close()
		}
	}
}

// readCheck returns the read predicate for subscribers of exerciseID after
// event. A deleted exercise is announced to everyone who was subscribed.
func (h *Hub) readCheck(exerciseID uint, event string) (func(userID uint) bool, bool) {
	everyone := func(uint) bool { return true }

	if h.exercises == nil || event == services.EventDeleted {
		return everyone, true
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()

	exercise, err := h.exercises.FindByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return everyone, true
		}
		h.log.Error().Err(err).Uint("exercise_id", exerciseID).Msg("failed to load exercise for broadcast")
		return nil, false
	}

	return func(userID uint) bool {
		return policy.CanRead(*exercise, userID)
	}, true
}

func (h *Hub) drop(exerciseID uint, c *client, code int, reason string) {
	h.unregister(exerciseID, c)

	c.mu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
	c.mu.Unlock()

	c.conn.Close()
}

func (h *Hub) Subscribers(exerciseID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[exerciseID])
}

func (h *Hub) register(exerciseID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[exerciseID] == nil {
		h.clients[exerciseID] = make(map[*client]bool)
	}
	h.clients[exerciseID][c] = true
}

func (h *Hub) unregister(exerciseID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[exerciseID]; exists {
		delete(clients, c)

		if len(clients) == 0 {
			delete(h.clients, exerciseID)
		}
	}
}

// serve owns conn until the peer goes away.
func (h *Hub) serve(conn *websocket.Conn, userID, exerciseID uint, welcome interface{}) {
	c := &client{conn: conn, userID: userID}

	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.register(exerciseID, c)

	done := make(chan struct{})

	defer func() {
		close(done)
		h.unregister(exerciseID, c)
		conn.Close()

		h.log.Debug().Uint("exercise_id", exerciseID).Msg("websocket connection closed")
	}()

	if err := c.writeJSON(welcome); err != nil {
		h.log.Debug().Err(err).Uint("exercise_id", exerciseID).Msg("failed to send welcome message")
		return
	}

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug().Err(err).Uint("exercise_id", exerciseID).Msg("websocket error")
			}
			return
		}
	}
}

// LiveExercise upgrades to a websocket that receives refresh messages for one
// readable exercise. The first message carries the current decorated view.
func (h *ExerciseHandler) LiveExercise(ctx *gin.Context) {
	userID, exerciseID, ok := userAndExercise(ctx)

	if !ok {
		return
	}

	exercise, err := h.exercises.Get(ctx.Request.Context(), userID, exerciseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	conn, err := h.hub.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)

	if err != nil {
		zerolog.Ctx(ctx.Request.Context()).Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.hub.serve(conn, userID, exerciseID, gin.H{
		"type":     "connected",
		"exercise": exercise,
	})
}

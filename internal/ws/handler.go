// Package ws exposes the websocket transport: session handshake, the
// read loop feeding actions into a session, and the write pump draining
// its broadcast channel.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cardhouse/blackjackd/internal/cache"
	"github.com/cardhouse/blackjackd/internal/game"
	"github.com/cardhouse/blackjackd/internal/models"
)

const writeTimeout = 10 * time.Second

// Handler serves the /session handshake and the /ws game socket.
type Handler struct {
	registry *game.Registry
	tokens   *TokenIssuer
}

func NewHandler(registry *game.Registry, tokens *TokenIssuer) *Handler {
	return &Handler{registry: registry, tokens: tokens}
}

// Register mounts the handler's routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/session", h.handleSession)
	mux.HandleFunc("/history", h.handleHistory)
	mux.HandleFunc("/ws", h.handleWS)
}

// handleHistory returns the recorded action history for a session. Empty
// when Redis is not configured.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}
	records := []cache.ActionRecord{}
	if cache.Rdb != nil {
		var err error
		records, err = cache.SessionHistory(r.Context(), sessionID)
		if err != nil {
			logrus.WithError(err).Error("failed reading action history")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// handleSession mints a fresh session ID plus a resume token. The client
// passes either on the websocket URL.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	token, err := h.tokens.Issue(sessionID)
	if err != nil {
		logrus.WithError(err).Error("failed issuing session token")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"session_id": sessionID,
		"token":      token,
	})
}

// resolveSessionID picks the session for a connection: a valid resume token
// wins, then an explicit session query parameter, then a fresh ID.
func (h *Handler) resolveSessionID(r *http.Request) string {
	if tok := r.URL.Query().Get("token"); tok != "" {
		if id, err := h.tokens.Verify(tok); err == nil {
			return id
		}
		logrus.Warn("rejected invalid session token")
	}
	if id := r.URL.Query().Get("session"); id != "" {
		return id
	}
	return uuid.NewString()
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logrus.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection closed")

	sessionID := h.resolveSessionID(r)
	session := h.registry.GetOrCreate(sessionID)
	log := logrus.WithField("session_id", sessionID)

	subID, frames := session.Subscribe()
	defer session.Unsubscribe(subID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Initial snapshot so the client renders without waiting for an action.
	if err := writeFrame(ctx, conn, session.StateMessage()); err != nil {
		return
	}

	go writePump(ctx, cancel, conn, frames, log)

	for {
		var act models.Action
		if err := wsjson.Read(ctx, conn, &act); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				log.WithError(err).Debug("websocket read ended")
			}
			return
		}
		session.HandleAction(act)
	}
}

// writePump drains the session's broadcast channel into the socket.
func writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, frames <-chan models.Message, log *logrus.Entry) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-frames:
			if !ok {
				return
			}
			if err := writeFrame(ctx, conn, msg); err != nil {
				log.WithError(err).Debug("websocket write failed")
				return
			}
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, msg models.Message) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, msg)
}

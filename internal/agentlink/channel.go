package agentlink

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/cutline/cutline-agent/internal/actions"
	"github.com/cutline/cutline-agent/internal/editor"
	"github.com/cutline/cutline-agent/internal/logging"
)

var (
	errMalformed  = errors.New("message is not valid JSON")
	errBadType    = errors.New("message type must be " + TypeAction)
	errEmptyBatch = errors.New("actions must be a non-empty array")
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	maxMessageSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The agent runs on the same machine as the editor.
		return true
	},
}

// Channel upgrades HTTP requests to per-project agent connections. Each
// connection binds to one editing session; edits inside a connection are
// serialized by that session.
type Channel struct {
	sessions *editor.Manager
	registry *actions.Registry
	logger   *slog.Logger
}

func NewChannel(sessions *editor.Manager, registry *actions.Registry, logger *slog.Logger) *Channel {
	return &Channel{
		sessions: sessions,
		registry: registry,
		logger:   logging.WithComponent(logger, "agentlink"),
	}
}

// Handler serves GET /projects/{projectID}/agent.
func (c *Channel) Handler(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	session, err := c.sessions.Session(r.Context(), projectID)
	if err != nil {
		c.logger.Warn("agent connection refused", "project_id", projectID, "error", err)
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &agentConn{
		conn:    conn,
		session: session,
		send:    make(chan any, 16),
		logger:  logging.WithProjectID(c.logger, projectID),
	}

	client.send <- ConnectedEnvelope{
		Type:            TypeConnected,
		ProjectID:       projectID,
		Actions:         c.registry.Catalog(),
		TimelineContext: BuildTimelineContext(session.Snapshot(), session.Playhead()),
	}

	go client.writePump()
	client.readPump()
}

// agentConn is one live agent connection.
type agentConn struct {
	conn    *websocket.Conn
	session *editor.Session
	send    chan any
	logger  *slog.Logger
}

// readPump reads action batches until the connection closes. Each batch is
// executed against the session and answered with a result envelope.
func (a *agentConn) readPump() {
	defer func() {
		close(a.send)
		a.conn.Close()
	}()

	a.conn.SetReadLimit(maxMessageSize)
	a.conn.SetReadDeadline(time.Now().Add(pongWait))
	a.conn.SetPongHandler(func(string) error {
		a.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := a.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				a.logger.Warn("agent read error", "error", err)
			}
			return
		}
		a.send <- a.handle(raw)
	}
}

// handle validates and executes one inbound frame.
func (a *agentConn) handle(raw []byte) ResultEnvelope {
	env, actionID, err := parseEnvelope(raw)
	if err != nil {
		a.logger.Warn("rejected agent message", "action_id", actionID, "error", err)
		return ResultEnvelope{
			Type:            TypeResult,
			ActionID:        actionID,
			Result:          rejected(err.Error()),
			TimelineContext: BuildTimelineContext(a.session.Snapshot(), a.session.Playhead()),
		}
	}

	results := a.session.ExecuteActions(context.Background(), env.Actions)
	batch := aggregate(results)
	a.logger.Info("agent batch executed",
		"action_id", env.ActionID,
		"total", batch.Total,
		"failed", batch.Failed)

	return ResultEnvelope{
		Type:            TypeResult,
		ActionID:        env.ActionID,
		Result:          batch,
		TimelineContext: BuildTimelineContext(a.session.Snapshot(), a.session.Playhead()),
	}
}

// writePump owns all writes to the socket, including keepalive pings.
func (a *agentConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		a.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-a.send:
			a.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				a.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := a.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			a.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := a.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

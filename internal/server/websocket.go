package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/logging"
	"github.com/muurk/edtable/internal/render"
	"github.com/muurk/edtable/internal/table"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. An edit carries a whole cell.
	maxMessageSize = 1 << 16

	// Outbound messages buffered per session
	sendBuffer = 32
)

// Message types of the websocket protocol
const (
	TypeEdit        = "edit"
	TypeSave        = "save"
	TypeRender      = "render"
	TypeValue       = host.TypeValue
	TypeFrameHeight = host.TypeFrameHeight
)

// InboundMessage is a browser event. Row, Col and Value are only used by
// edit messages.
type InboundMessage struct {
	Type  string `json:"type"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// RenderMessage replaces the page's table markup.
type RenderMessage struct {
	Type string `json:"type"`
	HTML string `json:"html"`
}

// session is one browser connection. The read loop owns the controller;
// writePump is the only writer on conn.
type session struct {
	conn       *websocket.Conn
	remoteAddr string
	send       chan []byte
	theme      render.Theme
	sink       host.Host
	ctrl       *table.Controller

	mu     sync.Mutex
	closed bool
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	sess := &session{
		conn:       conn,
		remoteAddr: r.RemoteAddr,
		send:       make(chan []byte, sendBuffer),
		theme:      s.config.Args.Theme,
		sink:       s.config.Sink,
	}
	s.track(sess)
	logging.LogConnection(sess.remoteAddr, "websocket_upgraded")

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		sess.writePump()
	}()
	go func() {
		defer s.wg.Done()
		defer s.untrack(sess)
		sess.mount(s.config.Args.Options(render.FrameHeight))
		sess.readLoop()
	}()
}

// mount creates the session's controller. Its mount report is queued before
// the initial render.
func (sess *session) mount(opts table.Options) {
	sess.ctrl = table.New(sessionHost{sess}, opts)
	sess.render()
}

// readLoop handles inbound messages until the connection fails or closes.
func (sess *session) readLoop() {
	defer func() {
		sess.close()
		logging.LogConnection(sess.remoteAddr, "websocket_closed")
	}()

	sess.conn.SetReadLimit(maxMessageSize)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", sess.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(sess.remoteAddr, "received", msgType, data)

		if msgType != websocket.TextMessage {
			logging.Warn("Ignoring non-text WebSocket message",
				zap.String("remote_addr", sess.remoteAddr),
				zap.Int("message_type", msgType),
			)
			continue
		}
		if err := sess.handle(data); err != nil {
			logging.Warn("Ignoring message",
				zap.String("remote_addr", sess.remoteAddr),
				zap.Error(err),
			)
		}
	}
}

var (
	errUnknownType = errors.New("unknown message type")
	errReadOnly    = errors.New("cell is not editable")
)

// handle applies one browser event to the controller.
func (sess *session) handle(data []byte) error {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}

	switch msg.Type {
	case TypeEdit:
		if !sess.ctrl.Editable(msg.Row, msg.Col) {
			return errReadOnly
		}
		if _, ok := sess.ctrl.Committed().Cell(grid.Coord{Row: msg.Row, Col: msg.Col}); !ok {
			return errReadOnly
		}
		sess.ctrl.RecordEdit(msg.Row, msg.Col, msg.Value)
	case TypeSave:
		if sess.ctrl.Commit() {
			sess.render()
		}
	default:
		return errUnknownType
	}
	return nil
}

// render queues the current table markup.
func (sess *session) render() {
	html, err := render.TableHTML(sess.ctrl.View(), sess.theme)
	if err != nil {
		logging.Error("Failed to render table",
			zap.String("remote_addr", sess.remoteAddr),
			zap.Error(err),
		)
		return
	}
	sess.queue(RenderMessage{Type: TypeRender, HTML: html})
}

// queue encodes msg for the write pump without blocking. A session whose
// buffer is full is too slow to keep and is closed.
func (sess *session) queue(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("Failed to encode message",
			zap.String("remote_addr", sess.remoteAddr),
			zap.Error(err),
		)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return
	}
	select {
	case sess.send <- data:
	default:
		logging.Warn("Send buffer full, closing session",
			zap.String("remote_addr", sess.remoteAddr),
		)
		sess.closeLocked()
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (sess *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sess.conn.Close()
	}()

	for {
		select {
		case data, ok := <-sess.send:
			_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sess.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Info("Failed to write message",
					zap.String("remote_addr", sess.remoteAddr),
					zap.Error(err),
				)
				return
			}
			logging.LogWebSocketMessage(sess.remoteAddr, "sent", websocket.TextMessage, data)

		case <-ticker.C:
			_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close stops the write pump, which closes the connection. The read loop
// then fails and exits.
func (sess *session) close() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.closeLocked()
}

func (sess *session) closeLocked() {
	if !sess.closed {
		sess.closed = true
		close(sess.send)
	}
}

// sessionHost reports a session's value and frame height to the browser and
// to the server's sink.
type sessionHost struct {
	sess *session
}

func (h sessionHost) SetValue(g grid.Grid) {
	if h.sess.sink != nil {
		h.sess.sink.SetValue(g)
	}
	h.sess.queue(host.ValueMessage{Type: TypeValue, Value: g})
}

func (h sessionHost) SetFrameHeight(height int) {
	if h.sess.sink != nil {
		h.sess.sink.SetFrameHeight(height)
	}
	h.sess.queue(host.FrameHeightMessage{Type: TypeFrameHeight, Height: height})
}

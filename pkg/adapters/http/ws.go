package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/view"
)

const wsWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Frame types sent by gesture clients.
const (
	FrameDown   = "down"
	FrameMove   = "move"
	FrameUp     = "up"
	FrameCancel = "cancel"
	FrameKey    = "key"
)

// ClientFrame is one pointer or key event from a gesture client.
// Slot is omitted (or negative) when the pointer is over no slot.
type ClientFrame struct {
	Type  string           `json:"type" validate:"required,oneof=down move up cancel key"`
	Piece string           `json:"piece,omitempty" validate:"required_if=Type down"`
	Slot  *int             `json:"slot,omitempty"`
	Key   *strata.KeyEvent `json:"key,omitempty" validate:"required_if=Type key"`
}

// ServerFrame is sent to gesture clients: "view" carries a view model, "dwell" announces
// an armed auto-drop timer, "error" reports a rejected frame.
type ServerFrame struct {
	Type    string          `json:"type"`
	View    json.RawMessage `json:"view,omitempty"`
	Slot    *int            `json:"slot,omitempty"`
	AfterMS int64           `json:"after_ms,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (f ClientFrame) slot() int {
	if f.Slot == nil || *f.Slot < 0 {
		return view.NoSlot
	}
	return *f.Slot
}

// ServeWS handles GET /sessions/{id}/ws. One goroutine owns the connection writes, the
// session's view stream and the dwell timer; a second one only reads frames.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := r.Context()

	views, unsubscribe, initial, err := s.currentView(ctx, sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer unsubscribe()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session_id", sessionID, "err", err)
		return
	}
	defer conn.Close()

	g := &gestureConn{server: s, conn: conn, sessionID: sessionID}
	if err := g.write(ServerFrame{Type: "view", View: initial}); err != nil {
		return
	}
	g.run(ctx, views)
}

type gestureConn struct {
	server    *Server
	conn      *websocket.Conn
	sessionID string
	// dragging is set while this connection owns the puzzle's pointer gesture.
	dragging bool
}

func (g *gestureConn) write(f ServerFrame) error {
	_ = g.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return g.conn.WriteJSON(f)
}

func (g *gestureConn) run(ctx context.Context, views <-chan string) {
	logger := g.server.logger.With("session_id", g.sessionID)
	done := make(chan struct{})
	defer close(done)

	frames := make(chan ClientFrame)
	readErr := make(chan error, 1)
	go func() {
		for {
			var f ClientFrame
			if err := g.conn.ReadJSON(&f); err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- f:
			case <-done:
				return
			}
		}
	}()

	fired := make(chan uint64)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if g.dragging {
			_ = g.server.Sessions.Do(context.WithoutCancel(ctx), g.sessionID, func(ctx context.Context, p *strata.Puzzle) error {
				p.PointerCancel(ctx)
				return nil
			})
		}
	}()

	// Unarmed tickets leave the running timer alone: either the pointer stayed in the
	// slot, or the timer's token is already stale and will be ignored.
	arm := func(t strata.DwellTicket) {
		if !t.Armed() {
			return
		}
		if timer != nil {
			timer.Stop()
		}
		token := t.Token
		timer = time.AfterFunc(t.After, func() {
			select {
			case fired <- token:
			case <-done:
			}
		})
		slot := t.Slot
		if err := g.write(ServerFrame{Type: "dwell", Slot: &slot, AfterMS: t.After.Milliseconds()}); err != nil {
			logger.Debug("dwell notice failed", "err", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-readErr:
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket read ended", "err", err)
			}
			return
		case msg, ok := <-views:
			if !ok {
				_ = g.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				g.dragging = false
				return
			}
			if err := g.write(ServerFrame{Type: "view", View: json.RawMessage(msg)}); err != nil {
				return
			}
		case token := <-fired:
			err := g.server.Sessions.Do(ctx, g.sessionID, func(ctx context.Context, p *strata.Puzzle) error {
				_, _, err := p.DwellElapsed(ctx, token)
				return err
			})
			if err != nil && !g.reject(err) {
				return
			}
		case f := <-frames:
			ticket, err := g.handle(ctx, f)
			if err != nil {
				if !g.reject(err) {
					return
				}
				continue
			}
			arm(ticket)
		}
	}
}

// handle applies one client frame to the puzzle.
func (g *gestureConn) handle(ctx context.Context, f ClientFrame) (strata.DwellTicket, error) {
	if err := g.server.validate.Struct(f); err != nil {
		return strata.DwellTicket{}, errors.Join(errBadRequest, errors.New(describeValidation(err)))
	}

	var ticket strata.DwellTicket
	err := g.server.Sessions.Do(ctx, g.sessionID, func(ctx context.Context, p *strata.Puzzle) error {
		switch f.Type {
		case FrameDown:
			if err := p.PointerDown(ctx, domain.PieceID(f.Piece)); err != nil {
				return err
			}
			g.dragging = true
		case FrameMove:
			if g.dragging {
				ticket = p.PointerMove(f.slot())
			}
		case FrameUp:
			if !g.dragging {
				return domain.ErrNoGesture
			}
			g.dragging = false
			_, _, err := p.PointerUp(ctx, f.slot())
			return err
		case FrameCancel:
			if g.dragging {
				g.dragging = false
				p.PointerCancel(ctx)
			}
		case FrameKey:
			p.Shortcut(ctx, *f.Key)
		}
		return nil
	})
	return ticket, err
}

// reject reports a frame error to the client. It returns false if the connection failed.
func (g *gestureConn) reject(err error) bool {
	return g.write(ServerFrame{Type: "error", Error: err.Error()}) == nil
}

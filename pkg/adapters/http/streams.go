package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/view"
)

// StreamManager fans view updates out to the SSE and WebSocket clients of each session.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a channel for sessionID. The returned function unsubscribes; the
// channel is closed either by it or by Close, whichever comes first.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 16)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		subs, ok := sm.subscribers[sessionID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(sm.subscribers, sessionID)
		}
	}
}

// Broadcast sends msg to every subscriber of sessionID without blocking.
// Every frame is a full snapshot, so a slow client loses its oldest queued
// frame rather than the newest one.
func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
			continue
		default:
		}
		select {
		case <-ch:
			sm.logger.Debug("stream buffer full, discarded stale view", "session_id", sessionID)
		default:
		}
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("stream buffer full, dropping view", "session_id", sessionID)
		}
	}
}

// Publish encodes a view model and broadcasts it.
func (sm *StreamManager) Publish(sessionID string, m view.Model) {
	data, err := json.Marshal(m)
	if err != nil {
		sm.logger.Error("view encode failed", "session_id", sessionID, "err", err)
		return
	}
	sm.Broadcast(sessionID, string(data))
}

// Close ends every stream of sessionID.
func (sm *StreamManager) Close(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers[sessionID] {
		close(ch)
	}
	delete(sm.subscribers, sessionID)
}

// Count returns the number of subscribers of sessionID.
func (sm *StreamManager) Count(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// currentView subscribes to sessionID and returns the view at subscription time, so no
// update between the two is lost.
func (s *Server) currentView(ctx context.Context, sessionID string) (<-chan string, func(), []byte, error) {
	var (
		ch     <-chan string
		cancel func()
		data   []byte
	)
	err := s.Sessions.Do(ctx, sessionID, func(_ context.Context, p *strata.Puzzle) error {
		var err error
		data, err = json.Marshal(p.View())
		if err != nil {
			return err
		}
		ch, cancel = s.Streams.Subscribe(sessionID)
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return ch, cancel, data, nil
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE). Each event carries a full view model.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sessionID := chi.URLParam(r, "id")
	ch, cancel, initial, err := s.currentView(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to session views", "session_id", sessionID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	fmt.Fprintf(w, "data: %s\n\n", initial)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: session ended\n\n")
				flusher.Flush()
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/domain"
)

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "strata-http",
		"version": strings.TrimSpace(strata.Version),
	})
}

// ListPuzzles handles GET /puzzles.
func (s *Server) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	names, err := s.loader.ListPuzzles()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"puzzles": names})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, p, err := s.Sessions.CreateWith(r.Context(), s.factory(body.Puzzle))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp SessionResponse
	err = s.Sessions.WithLock(r.Context(), id, func(context.Context) error {
		resp = SessionResponse{ID: id, View: p.View()}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var resp SessionResponse
	err := s.Sessions.Do(r.Context(), id, func(_ context.Context, p *strata.Puzzle) error {
		resp = SessionResponse{ID: id, View: p.View()}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /sessions/{id}. Open streams of the session are closed.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetHistory handles GET /sessions/{id}/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	var resp HistoryResponse
	err := s.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, p *strata.Puzzle) error {
		v := p.View()
		resp = HistoryResponse{Entries: p.History(), CanUndo: v.CanUndo, CanRedo: v.CanRedo}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// command runs fn on the session puzzle and replies with the outcome and the new view.
func (s *Server) command(w http.ResponseWriter, r *http.Request, fn func(context.Context, *strata.Puzzle) (CommandResponse, error)) {
	var resp CommandResponse
	err := s.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, p *strata.Puzzle) error {
		var err error
		resp, err = fn(ctx, p)
		if err != nil {
			return err
		}
		resp.View = p.View()
		if resp.Message == "" {
			resp.Message = p.Status()
		}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func outcomeResponse(out domain.Outcome) CommandResponse {
	return CommandResponse{Kind: string(out.Kind), Applied: out.Changed(), Message: out.Message}
}

// Drop handles POST /sessions/{id}/drop.
func (s *Server) Drop(w http.ResponseWriter, r *http.Request) {
	var body dropRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.command(w, r, func(ctx context.Context, p *strata.Puzzle) (CommandResponse, error) {
		out, err := p.Drop(ctx, domain.PieceID(body.Piece), *body.Slot)
		if err != nil {
			return CommandResponse{}, err
		}
		return outcomeResponse(out), nil
	})
}

// SelectPiece handles POST /sessions/{id}/select/piece.
func (s *Server) SelectPiece(w http.ResponseWriter, r *http.Request) {
	var body selectPieceRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.command(w, r, func(_ context.Context, p *strata.Puzzle) (CommandResponse, error) {
		if err := p.SelectPiece(domain.PieceID(body.Piece)); err != nil {
			return CommandResponse{}, err
		}
		return CommandResponse{Applied: true}, nil
	})
}

// SelectSlot handles POST /sessions/{id}/select/slot.
func (s *Server) SelectSlot(w http.ResponseWriter, r *http.Request) {
	var body selectSlotRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.command(w, r, func(ctx context.Context, p *strata.Puzzle) (CommandResponse, error) {
		out, placed, err := p.SelectSlot(ctx, *body.Slot)
		if err != nil {
			return CommandResponse{}, err
		}
		if !placed {
			return CommandResponse{}, nil
		}
		return outcomeResponse(out), nil
	})
}

// Undo handles POST /sessions/{id}/undo.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, func(ctx context.Context, p *strata.Puzzle) (CommandResponse, error) {
		_, ok := p.Undo(ctx)
		return CommandResponse{Applied: ok}, nil
	})
}

// Redo handles POST /sessions/{id}/redo.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, func(ctx context.Context, p *strata.Puzzle) (CommandResponse, error) {
		_, ok := p.Redo(ctx)
		return CommandResponse{Applied: ok}, nil
	})
}

// Reset handles POST /sessions/{id}/reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, func(ctx context.Context, p *strata.Puzzle) (CommandResponse, error) {
		return outcomeResponse(p.Reset(ctx)), nil
	})
}

// Check handles POST /sessions/{id}/check.
func (s *Server) Check(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, func(ctx context.Context, p *strata.Puzzle) (CommandResponse, error) {
		res := p.Check(ctx)
		return CommandResponse{Applied: true, Verdict: string(res.Verdict), Message: res.Message}, nil
	})
}

// Resize handles POST /sessions/{id}/resize. Sizing is bounded by the puzzle's timeout.
func (s *Server) Resize(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, func(ctx context.Context, p *strata.Puzzle) (CommandResponse, error) {
		p.Relayout(ctx)
		return CommandResponse{Applied: true}, nil
	})
}

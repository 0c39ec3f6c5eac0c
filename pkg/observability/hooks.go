package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/strata/pkg/domain"
)

// LoggingHooks logs every lifecycle event at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(_ context.Context, e *domain.CommitEvent) {
			logger.Info("placement_commit",
				"puzzle", e.PuzzleID,
				"kind", e.Kind,
				"source", e.Source,
				"description", e.Description,
			)
		},
		OnHistory: func(_ context.Context, e *domain.HistoryEvent) {
			logger.Info("history_"+string(e.Type), "puzzle", e.PuzzleID, "cursor", e.Cursor)
		},
		OnCheck: func(_ context.Context, e *domain.CheckEvent) {
			logger.Info("placement_check", "puzzle", e.PuzzleID, "verdict", e.Verdict)
		},
		OnCancel: func(_ context.Context, e *domain.EventBase) {
			logger.Debug("gesture_cancel", "puzzle", e.PuzzleID)
		},
	}
}

// Combine merges hook sets; each event is delivered to every set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnCommit != nil {
			prev, next := out.OnCommit, h.OnCommit
			out.OnCommit = func(ctx context.Context, e *domain.CommitEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnHistory != nil {
			prev, next := out.OnHistory, h.OnHistory
			out.OnHistory = func(ctx context.Context, e *domain.HistoryEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnCheck != nil {
			prev, next := out.OnCheck, h.OnCheck
			out.OnCheck = func(ctx context.Context, e *domain.CheckEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnCancel != nil {
			prev, next := out.OnCancel, h.OnCancel
			out.OnCancel = func(ctx context.Context, e *domain.EventBase) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
	}
	return out
}

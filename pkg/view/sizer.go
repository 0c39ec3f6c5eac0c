package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/strata/internal/logging"
)

// Measurer reports the rendered height of a piece asset.
// Implementations should honour ctx cancellation.
type Measurer interface {
	Measure(ctx context.Context, asset string) (int, error)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(ctx context.Context, asset string) (int, error)

// Measure calls f.
func (f MeasurerFunc) Measure(ctx context.Context, asset string) (int, error) {
	return f(ctx, asset)
}

const (
	DefaultSizingTimeout = 300 * time.Millisecond
	DefaultSlotPadding   = 10
	maxConcurrentLoads   = 8
)

// Sizer derives the slot height from the tallest piece asset.
// Measurements that succeed are cached, including ones that finish after the timeout,
// so repeated syncs converge on the full result.
type Sizer struct {
	measurer Measurer
	timeout  time.Duration
	padding  int
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]int
}

// SizerOption configures a Sizer.
type SizerOption func(*Sizer)

// WithTimeout bounds how long SlotHeight waits for pending measurements.
func WithTimeout(d time.Duration) SizerOption {
	return func(s *Sizer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithPadding sets the space added to the tallest piece.
func WithPadding(px int) SizerOption {
	return func(s *Sizer) {
		if px >= 0 {
			s.padding = px
		}
	}
}

// WithLogger sets the logger used for failed measurements.
func WithLogger(l *slog.Logger) SizerOption {
	return func(s *Sizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSizer creates a Sizer over m.
func NewSizer(m Measurer, opts ...SizerOption) *Sizer {
	s := &Sizer{
		measurer: m,
		timeout:  DefaultSizingTimeout,
		padding:  DefaultSlotPadding,
		logger:   logging.NewNop(),
		cache:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SlotHeight returns the tallest measured asset height plus padding, and whether every
// asset was measured. It returns after all measurements finish or the timeout elapses,
// whichever comes first. With nothing measured the height is 0.
func (s *Sizer) SlotHeight(ctx context.Context, assets []string) (int, bool) {
	pending := s.uncached(assets)
	if len(pending) > 0 {
		s.measureAll(ctx, pending)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tallest, complete := 0, true
	for _, a := range assets {
		h, ok := s.cache[a]
		if !ok {
			complete = false
			continue
		}
		if h > tallest {
			tallest = h
		}
	}
	if tallest == 0 {
		return 0, complete
	}
	return tallest + s.padding, complete
}

// Forget drops cached measurements so the next call re-measures.
func (s *Sizer) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]int)
}

func (s *Sizer) uncached(assets []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(assets))
	var out []string
	for _, a := range assets {
		if _, ok := s.cache[a]; ok || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func (s *Sizer) measureAll(ctx context.Context, assets []string) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)

	var g errgroup.Group
	g.SetLimit(maxConcurrentLoads)

	done := make(chan struct{})
	go func() {
		defer cancel()
		defer close(done)
		for _, asset := range assets {
			g.Go(func() error {
				h, err := s.measurer.Measure(ctx, asset)
				if err != nil {
					s.logger.Debug("asset measurement failed", "asset", asset, "err", err)
					return nil
				}
				s.mu.Lock()
				s.cache[asset] = h
				s.mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

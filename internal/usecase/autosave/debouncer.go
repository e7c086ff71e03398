// Package autosave batches plan edits and writes them after a quiet period.
package autosave

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/platform/metrics"
)

// DefaultDelay is the quiet period after the last edit before pending changes are saved
const DefaultDelay = time.Second

// ErrClosed is returned when edits are submitted to a closed debouncer
var ErrClosed = errors.New("autosave: debouncer closed")

// Saver persists a partial save for a plan key
type Saver interface {
	Save(ctx context.Context, key domain.PlanKey, req domain.SaveRequest) error
}

// Debouncer accumulates edits and saves them once no edit arrived for Delay.
// Later edits overwrite earlier ones slot by slot, so a burst of edits costs one write.
type Debouncer struct {
	saver   Saver
	key     domain.PlanKey
	delay   time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	pending domain.SaveRequest
	timer   *time.Timer
	closed  bool

	// saveMu serialises writes so an older edit never lands after a newer one
	saveMu sync.Mutex
}

// NewDebouncer creates a debouncer for one plan key.
// A non-positive delay selects DefaultDelay.
func NewDebouncer(saver Saver, key domain.PlanKey, delay time.Duration, logger *slog.Logger, m *metrics.Metrics) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Debouncer{
		saver:   saver,
		key:     key,
		delay:   delay,
		logger:  logger,
		metrics: m,
	}
}

// Submit merges req into the pending edit and restarts the quiet period
func (d *Debouncer) Submit(req domain.SaveRequest) error {
	if req.IsEmpty() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	d.pending = d.pending.Merge(req)
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.delay > 0 {
		d.timer = time.AfterFunc(d.delay, d.fire)
	}
	return nil
}

// Pending reports whether an edit is waiting to be saved
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.pending.IsEmpty()
}

// Flush saves the pending edit immediately.
// On failure the edit is put back underneath any newer edits so the next flush retries it.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.mu.Lock()
	req := d.pending
	d.pending = domain.SaveRequest{}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if req.IsEmpty() {
		return nil
	}

	err := d.saver.Save(ctx, d.key, req)
	d.metrics.ObserveFlush(err)
	if err != nil {
		d.mu.Lock()
		d.pending = req.Merge(d.pending)
		d.mu.Unlock()

		d.logger.ErrorContext(ctx, "autosave failed, keeping pending changes",
			"plan_key", d.key.String(),
			"error", err,
		)
		return err
	}

	d.logger.DebugContext(ctx, "autosave complete", "plan_key", d.key.String())
	return nil
}

// Close stops accepting edits and flushes whatever is pending
func (d *Debouncer) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	return d.Flush(ctx)
}

// Discard stops accepting edits and drops whatever is pending without saving it.
// It reports whether an edit was dropped.
func (d *Debouncer) Discard() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	dropped := !d.pending.IsEmpty()
	d.pending = domain.SaveRequest{}
	return dropped
}

func (d *Debouncer) fire() {
	// Errors are logged by Flush and the edit stays pending
	_ = d.Flush(context.Background())
}

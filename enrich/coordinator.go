package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/detectorsearch/catalog"
	"github.com/jonwraymond/detectorsearch/status"
)

// DefaultTimeout bounds a batch of lookups when the caller's context
// carries no deadline of its own.
const DefaultTimeout = 30 * time.Second

// Options configures a Coordinator.
type Options struct {
	// Client resolves detector states. Required.
	Client status.Client

	// Timeout is the per-request deadline applied when the caller's context
	// has none. Default: DefaultTimeout.
	Timeout time.Duration

	// Logger receives lookup failure logs. If nil, logging is discarded.
	Logger *slog.Logger
}

// Coordinator fans detector state lookups out over a shared status.Client
// and joins them back into filtered pages. It holds no per-request state.
type Coordinator struct {
	client  status.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Coordinator with the given options.
func New(opts Options) (*Coordinator, error) {
	if opts.Client == nil {
		return nil, errors.New("status client is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Coordinator{client: opts.Client, timeout: timeout, logger: logger}, nil
}

// Enrich resolves the runtime state of every record on the page and returns
// the subset satisfying the predicate, in the page's original order.
//
// When the predicate is empty the page is returned unchanged and no lookups
// are issued. Otherwise exactly one lookup per record is started; all of
// them must settle before Enrich returns. The first lookup failure aborts
// the batch with ErrLookupFailed wrapping the cause, cancelling outstanding
// lookups; records whose lookups had already succeeded are discarded. If the
// deadline elapses before every lookup settles, Enrich fails with
// ErrTimeout. There is no partial result on any failure path.
func (c *Coordinator) Enrich(ctx context.Context, records []catalog.Record, pred Predicate) ([]catalog.Record, error) {
	if pred.Empty() {
		return records, nil
	}
	if len(records) == 0 {
		return []catalog.Record{}, nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// One slot per record; each goroutine writes only its own slot, so the
	// only synchronization point is the group wait.
	results := make([]lookup, len(records))

	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range records {
		g.Go(func() error {
			state, err := c.client.FetchState(gctx, rec.ID)
			if err != nil {
				c.logger.Error("failed to fetch detector state",
					slog.String("detector_id", rec.ID),
					slog.Any("error", err))
				return err
			}
			results[i] = lookup{ID: rec.ID, State: state}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %d lookups pending", ErrTimeout, len(records))
		}
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	batch, err := join(records, results)
	if err != nil {
		return nil, err
	}

	return batch.Filter(pred), nil
}

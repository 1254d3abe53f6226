package reactive

import (
	"context"
	"time"

	"github.com/goliatone/go-reactive/pkg/activity"
	"github.com/google/uuid"
)

// notifier guarantees exactly one snapshot commit per outermost logical
// operation against a live collection, whether that operation is a single
// mutation or a batch of them.
type notifier[S any] struct {
	flow    *Flow[S]
	capture func() S
	length  func() int
	kind    string
	logger  ChangeLogger
	emitter *activity.Emitter
	depth   int
}

func newNotifier[S any](kind string, flow *Flow[S], capture func() S, length func() int, cfg config) *notifier[S] {
	return &notifier[S]{
		flow:    flow,
		capture: capture,
		length:  length,
		kind:    kind,
		logger:  cfg.changeLoggerOrNoop(),
		emitter: activity.NewEmitter(cfg.activityHooks, activity.Config{Enabled: cfg.activityHooks.Enabled()}),
	}
}

// run executes fn against the live collection. The commit happens in a defer
// so it fires once per outermost operation on success, error, and panic paths
// alike; nested invocations only move the depth counter.
func (n *notifier[S]) run(op string, batch bool, fn func() error) (err error) {
	n.depth++
	start := time.Now()
	defer func() {
		n.commit(op, batch, start, err)
	}()
	err = fn()
	return err
}

// runContext is the batch variant whose callback may wait on external work
// between mutations. Cancellation does not suppress the final commit: the
// deferred publish still reflects whatever partial state the callback left.
func (n *notifier[S]) runContext(ctx context.Context, op string, fn func(context.Context) error) (err error) {
	n.depth++
	start := time.Now()
	defer func() {
		n.commit(op, true, start, err)
	}()
	err = fn(ctx)
	return err
}

func (n *notifier[S]) commit(op string, batch bool, start time.Time, opErr error) {
	n.depth--
	if n.depth > 0 {
		return
	}

	n.flow.replace(n.capture())

	size := n.length()
	n.logger.LogChange(ChangeEvent{
		Collection: n.kind,
		Op:         op,
		Size:       size,
		Batch:      batch,
		Duration:   time.Since(start),
		Err:        opErr,
	})
	if n.emitter.Enabled() {
		// Hook failures never affect the mutation result.
		_ = n.emitter.Emit(context.Background(), activity.Event{
			ID:         uuid.New(),
			Collection: n.kind,
			Op:         op,
			Size:       size,
			Batch:      batch,
			OccurredAt: time.Now(),
		})
	}
}

package fanout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"seatreservation/internal/domain"
)

// DispatcherConfig tunes the ordered delivery queue.
type DispatcherConfig struct {
	// Shards is the number of independent delivery workers. Messages for one seat always use the same shard.
	Shards int
	// QueueSize bounds each shard's backlog. Prepare drops the message when its shard is full.
	QueueSize int
	// OutcomeTimeout is how long a worker waits for Commit or Discard before dropping the message.
	OutcomeTimeout time.Duration
	// PublishTimeout bounds a single Publish call.
	PublishTimeout time.Duration
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Shards <= 0 {
		c.Shards = 8
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.OutcomeTimeout <= 0 {
		c.OutcomeTimeout = 30 * time.Second
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = 5 * time.Second
	}
	return c
}

// Dispatcher implements domain.SeatNotifier on top of a SeatEventPublisher.
//
// Prepare reserves the message's slot in its seat's shard. Because Prepare runs while the
// seat lock is held, slots for one seat are taken in commit order, and each shard worker
// publishes strictly in slot order once the outcome of the slot is known.
type Dispatcher struct {
	publisher domain.SeatEventPublisher
	cfg       DispatcherConfig
	shards    []chan *pendingMessage
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func NewDispatcher(publisher domain.SeatEventPublisher, cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	cfg = cfg.withDefaults()
	shards := make([]chan *pendingMessage, cfg.Shards)
	for i := range shards {
		shards[i] = make(chan *pendingMessage, cfg.QueueSize)
	}
	return &Dispatcher{publisher: publisher, cfg: cfg, shards: shards, logger: logger}
}

// Start launches one worker per shard. Workers stop when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, shard := range d.shards {
		d.wg.Add(1)
		go d.run(ctx, shard)
	}
}

// Wait blocks until every worker started by Start has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Prepare never blocks. When the shard is full the message is dropped and the returned
// handle is inert.
func (d *Dispatcher) Prepare(msg domain.SeatStatusMessage) domain.PendingNotification {
	p := &pendingMessage{msg: msg, outcome: make(chan bool, 1)}
	shard := d.shards[xxhash.Sum64String(msg.SeatID)%uint64(len(d.shards))]
	select {
	case shard <- p:
	default:
		d.logger.Warn("seat message queue full, dropping message",
			"event_id", msg.EventID, "seat_id", msg.SeatID, "status", msg.Status)
	}
	return p
}

func (d *Dispatcher) run(ctx context.Context, shard <-chan *pendingMessage) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-shard:
			d.deliver(ctx, p)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, p *pendingMessage) {
	timer := time.NewTimer(d.cfg.OutcomeTimeout)
	defer timer.Stop()
	select {
	case ok := <-p.outcome:
		if !ok {
			return
		}
	case <-timer.C:
		d.logger.Warn("seat message outcome not reported in time, dropping message",
			"event_id", p.msg.EventID, "seat_id", p.msg.SeatID)
		return
	case <-ctx.Done():
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, d.cfg.PublishTimeout)
	defer cancel()
	if err := d.publisher.Publish(pubCtx, p.msg); err != nil {
		d.logger.Warn("failed to publish seat message",
			"event_id", p.msg.EventID, "seat_id", p.msg.SeatID, "status", p.msg.Status, "error", err)
	}
}

type pendingMessage struct {
	msg     domain.SeatStatusMessage
	outcome chan bool
	once    sync.Once
}

func (p *pendingMessage) Commit() {
	p.once.Do(func() { p.outcome <- true })
}

func (p *pendingMessage) Discard() {
	p.once.Do(func() { p.outcome <- false })
}

// Package sync runs all network operations on a single background
// goroutine so they never block the interactive surface.
package sync

import (
	"context"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/nostlichat/internal/logger"
	"github.com/nhle/nostlichat/internal/provider"
)

// opTimeout is the maximum time allowed for a single network operation.
const opTimeout = 30 * time.Second

type opKind int

const (
	opPull opKind = iota
	opSend
)

// op is one queued network operation. Each op carries the client it
// should use, so a token change between enqueue and execution cannot
// leak into an older operation.
type op struct {
	id        string
	kind      opKind
	client    provider.Client
	selfEmail string
	limit     int
	raw       []byte
}

// Sink receives pull results. The worker invokes it from its own
// goroutine; implementations must do their own locking. Results only
// ever append to state, never roll anything back, which preserves the
// ordering contract with optimistic local entries.
type Sink interface {
	ApplyPull(lines []string)
}

// Worker serializes pull and send operations through one goroutine.
// Enqueueing never blocks: when the queue is full the operation is
// dropped, matching the no-retry, best-effort contract.
type Worker struct {
	sink   Sink
	ops    chan op
	stopCh chan struct{}

	mu      gosync.Mutex
	running bool
}

// NewWorker creates a worker delivering pull results to sink.
func NewWorker(sink Sink) *Worker {
	return &Worker{
		sink:   sink,
		ops:    make(chan op, 16),
		stopCh: make(chan struct{}),
	}
}

// Start launches the worker goroutine. Calling Start twice is a no-op.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true
	go w.run()
}

// Stop halts the worker goroutine. Queued operations are discarded.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	close(w.stopCh)
	w.running = false
}

// EnqueuePull queues a history pull. Returns false when the queue is
// full and the pull was dropped.
func (w *Worker) EnqueuePull(client provider.Client, selfEmail string, limit int) bool {
	return w.enqueue(op{
		id:        uuid.New().String(),
		kind:      opPull,
		client:    client,
		selfEmail: selfEmail,
		limit:     limit,
	})
}

// EnqueueSend queues an outbound raw message. Returns false when the
// queue is full and the send was dropped.
func (w *Worker) EnqueueSend(client provider.Client, raw []byte) bool {
	return w.enqueue(op{
		id:     uuid.New().String(),
		kind:   opSend,
		client: client,
		raw:    raw,
	})
}

func (w *Worker) enqueue(o op) bool {
	select {
	case w.ops <- o:
		return true
	default:
		logger.Warn("sync queue full, dropping operation", "op", o.id)
		return false
	}
}

func (w *Worker) run() {
	for {
		select {
		case <-w.stopCh:
			return
		case o := <-w.ops:
			w.execute(o)
		}
	}
}

// execute runs one operation with a bounded context. Failures are
// logged and dropped: a failed pull leaves history stale, a failed
// send leaves the optimistic local entry without a remote counterpart.
func (w *Worker) execute(o op) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	switch o.kind {
	case opPull:
		lines := provider.Pull(ctx, o.client, o.selfEmail, o.limit)
		if len(lines) > 0 {
			w.sink.ApplyPull(lines)
		}
		logger.Debug("pull finished", "op", o.id, "lines", len(lines))

	case opSend:
		if err := o.client.SendRaw(ctx, o.raw); err != nil {
			logger.Warn("send failed", "op", o.id, "error", err)
			return
		}
		logger.Debug("send finished", "op", o.id)
	}
}

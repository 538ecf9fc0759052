package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/cache"
	"github.com/jason-s-yu/modernart/internal/database"
	"github.com/sirupsen/logrus"
)

// Source yields queued action records. *cache.Queue implements it.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (cache.ActionRecord, bool, error)
}

// Sink persists action records.
type Sink interface {
	InsertActions(ctx context.Context, batch []cache.ActionRecord) error
	MarkGameAbandoned(ctx context.Context, gameID uuid.UUID) error
}

type postgresSink struct{}

func (postgresSink) InsertActions(ctx context.Context, batch []cache.ActionRecord) error {
	return database.InsertActions(ctx, batch)
}

func (postgresSink) MarkGameAbandoned(ctx context.Context, gameID uuid.UUID) error {
	return database.MarkGameAbandoned(ctx, gameID)
}

// Historian moves action records from the queue to the database in batches
// and marks games abandoned once they go quiet for longer than inactivity.
type Historian struct {
	source Source
	sink   Sink
	log    *logrus.Entry

	batchSize  int
	flushDelay time.Duration
	inactivity time.Duration
	popTimeout time.Duration

	lastActivity sync.Map // map[uuid.UUID]time.Time

	batchMu sync.Mutex
	batch   []cache.ActionRecord
}

func NewHistorian(source Source, sink Sink, batchSize int, flushDelay, inactivity time.Duration, logger *logrus.Logger) *Historian {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Historian{
		source:     source,
		sink:       sink,
		log:        logger.WithField("service", "historian"),
		batchSize:  batchSize,
		flushDelay: flushDelay,
		inactivity: inactivity,
		popTimeout: 3 * time.Second,
		batch:      make([]cache.ActionRecord, 0, batchSize),
	}
}

// Run reads and flushes until ctx is done, then flushes what is left.
func (h *Historian) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.readLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		h.inactivityLoop(ctx, time.Minute)
	}()

	h.log.Info("historian started")
	wg.Wait()
	h.flush(context.Background())
	h.log.Info("historian stopped")
}

func (h *Historian) readLoop(ctx context.Context) {
	ticker := time.NewTicker(h.flushDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.flush(ctx)
		default:
			rec, ok, err := h.source.Pop(ctx, h.popTimeout)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				h.log.WithError(err).Error("pop failed")
				continue
			}
			if !ok {
				continue
			}
			h.lastActivity.Store(rec.GameID, time.Now())
			h.add(ctx, rec)
		}
	}
}

// add appends rec to the batch and flushes once the batch is full.
func (h *Historian) add(ctx context.Context, rec cache.ActionRecord) {
	h.batchMu.Lock()
	h.batch = append(h.batch, rec)
	full := len(h.batch) >= h.batchSize
	h.batchMu.Unlock()

	if rec.ActionType == database.ActionGameEnd {
		h.lastActivity.Delete(rec.GameID)
	}
	if full {
		h.flush(ctx)
	}
}

// flush writes the pending batch in one transaction. A failed batch is put
// back so the next flush retries it.
func (h *Historian) flush(ctx context.Context) {
	h.batchMu.Lock()
	defer h.batchMu.Unlock()

	if len(h.batch) == 0 {
		return
	}
	pending := make([]cache.ActionRecord, len(h.batch))
	copy(pending, h.batch)

	if err := h.sink.InsertActions(ctx, pending); err != nil {
		h.log.WithError(err).WithField("count", len(pending)).Error("flush failed")
		return
	}
	h.batch = h.batch[:0]
	h.log.WithField("count", len(pending)).Debug("flushed actions")
}

func (h *Historian) inactivityLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep(ctx, time.Now())
		}
	}
}

// sweep marks every game idle since before now-inactivity as abandoned.
func (h *Historian) sweep(ctx context.Context, now time.Time) {
	h.lastActivity.Range(func(key, val interface{}) bool {
		gameID, ok1 := key.(uuid.UUID)
		last, ok2 := val.(time.Time)
		if !ok1 || !ok2 || now.Sub(last) <= h.inactivity {
			return true
		}
		if err := h.sink.MarkGameAbandoned(ctx, gameID); err != nil {
			h.log.WithError(err).WithField("game", gameID).Error("failed to mark game abandoned")
			return true
		}
		h.log.WithField("game", gameID).Info("game abandoned after inactivity")
		h.lastActivity.Delete(gameID)
		return true
	})
}

package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eventflow-app/eventflow-api/pkg/blob"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

// SaverConfig tunes snapshot persistence behaviour.
type SaverConfig struct {
	Retries    int
	RetryDelay time.Duration
	Logger     *zap.Logger
	// Observe, when set, is called once per finished write with whether
	// it failed after all retries.
	Observe func(failed bool)
}

// Saver writes snapshots to the blob store in the background. The store's
// persistence hook enqueues synchronously; the actual write is
// fire-and-forget from the mutating caller's view. A single worker keeps
// writes ordered, and when the queue backs up older pending snapshots are
// dropped in favor of the newest one (each snapshot is the full state).
type Saver struct {
	store blob.Store

	retries int
	delay   time.Duration
	logger  *zap.Logger
	observe func(failed bool)

	pending chan []models.Event
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewSaver builds a saver bound to a blob store.
func NewSaver(store blob.Store, cfg SaverConfig) *Saver {
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Saver{
		store:   store,
		retries: cfg.Retries,
		delay:   cfg.RetryDelay,
		logger:  cfg.Logger,
		observe: cfg.Observe,
		pending: make(chan []models.Event, 16),
	}
}

// Start begins the write worker. Safe to call once.
func (s *Saver) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.worker()
	s.started = true
}

// Stop flushes nothing further and waits for the in-flight write.
func (s *Saver) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

// Enqueue schedules a snapshot write. Never blocks the caller: when the
// buffer is full the oldest queued snapshot is discarded, since the newest
// one supersedes it anyway.
func (s *Saver) Enqueue(events []models.Event) {
	for {
		select {
		case s.pending <- events:
			return
		default:
			select {
			case <-s.pending:
			default:
			}
		}
	}
}

// SaveNow writes a snapshot synchronously, used at startup seeding and by
// the scheduled resave job.
func (s *Saver) SaveNow(ctx context.Context, events []models.Event) error {
	data, err := EncodeEvents(events)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, data)
}

func (s *Saver) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case events := <-s.pending:
			s.write(events)
		}
	}
}

func (s *Saver) write(events []models.Event) {
	data, err := EncodeEvents(events)
	if err != nil {
		s.logger.Error("snapshot encode failed", zap.Error(err))
		return
	}

	for attempt := 1; attempt <= s.retries; attempt++ {
		err = s.store.Save(s.ctx, data)
		if err == nil {
			s.logger.Debug("snapshot saved", zap.Int("events", len(events)), zap.Int("attempt", attempt))
			if s.observe != nil {
				s.observe(false)
			}
			return
		}
		if s.ctx.Err() != nil {
			return
		}
		s.logger.Warn("snapshot save failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.retries),
		)
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(s.delay):
		}
	}
	s.logger.Error("snapshot save abandoned", zap.Error(err), zap.Int("events", len(events)))
	if s.observe != nil {
		s.observe(true)
	}
}

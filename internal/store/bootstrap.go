package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/eventflow-app/eventflow-api/pkg/blob"
)

// Restore loads the persisted snapshot into the store. Persistence
// failures are never fatal here: a missing, unreadable or malformed
// snapshot leaves the store empty (or partially loaded when only some
// records were bad) and logs what happened. Call before registering the
// persist hook so restoring does not immediately rewrite the snapshot.
func Restore(ctx context.Context, s *Store, source blob.Store, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	raw, err := source.Load(ctx)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			logger.Info("no calendar snapshot, starting empty")
			return
		}
		logger.Error("snapshot load failed, starting empty", zap.Error(err))
		return
	}

	events, dropped, err := DecodeEvents(raw)
	if err != nil {
		logger.Error("snapshot malformed, starting empty", zap.Error(err))
		return
	}
	if dropped > 0 {
		logger.Warn("dropped malformed snapshot records", zap.Int("dropped", dropped))
	}

	if err := s.Dispatch(LoadEvents{Events: events}); err != nil {
		logger.Error("snapshot restore dispatch failed", zap.Error(err))
		return
	}
	logger.Info("calendar snapshot restored", zap.Int("events", len(events)))
}

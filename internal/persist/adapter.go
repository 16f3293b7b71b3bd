package persist

import (
	"context"
	"log/slog"

	"tycoon/config"
	"tycoon/internal/domain/repository"
	"tycoon/internal/errors"
	"tycoon/internal/store"

	"go.uber.org/fx"
)

// Adapter binds the store to the durable snapshot slot: it subscribes to
// change notifications, debounces them, and writes the whitelisted subset
// under the configured storage key.
type Adapter struct {
	store     *store.Store
	repo      repository.SnapshotRepository
	key       string
	scheduler *Scheduler
	logger    *slog.Logger
}

// Params holds dependencies for the Adapter, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Store  *store.Store
	Repo   repository.SnapshotRepository
	Config *config.Config
	Logger *slog.Logger
}

// NewAdapter wires the adapter into the store and the fx lifecycle: every
// installed snapshot schedules a debounced write, and shutdown flushes the
// pending write before cancelling the scheduler.
func NewAdapter(params Params) *Adapter {
	adapter := &Adapter{
		store:  params.Store,
		repo:   params.Repo,
		key:    params.Config.Persistence.StorageKey,
		logger: params.Logger,
	}
	adapter.scheduler = NewScheduler(params.Config.Persistence.DebounceDelay, adapter.writeSnapshot)

	params.Store.Subscribe(adapter.scheduler.Notify)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			adapter.scheduler.Flush()
			adapter.scheduler.Close()

			return nil
		},
	})

	return adapter
}

// Restore loads the snapshot stored under the storage key and hydrates the
// store. A missing snapshot (including one orphaned by a storage key bump)
// or a malformed payload leaves the store on built-in defaults.
func (a *Adapter) Restore(ctx context.Context) error {
	payload, err := a.repo.Load(ctx, a.key)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			a.logger.Info("no persisted snapshot, starting fresh", slog.String("key", a.key))

			return nil
		}

		return errors.Wrap(err, "failed to load persisted snapshot")
	}

	snap, err := Decode(payload)
	if err != nil {
		a.logger.Warn("discarding malformed persisted snapshot",
			slog.String("key", a.key),
			slog.String("error", err.Error()))

		return nil
	}

	a.store.Hydrate(snap.Restore(a.logger))
	a.logger.Info("restored persisted snapshot", slog.String("key", a.key))

	return nil
}

// writeSnapshot captures the whitelisted subset of the current snapshot and
// saves it. Failures are logged, never propagated: a failed save must not
// take an action down with it.
func (a *Adapter) writeSnapshot() {
	var snap *Snapshot
	a.store.View(func(s *store.State) {
		snap = FromState(s)
	})

	payload, err := snap.Encode()
	if err != nil {
		a.logger.Error("failed to encode snapshot", slog.String("error", err.Error()))

		return
	}

	if err := a.repo.Save(context.Background(), a.key, payload); err != nil {
		a.logger.Error("failed to persist snapshot", slog.String("error", err.Error()))
	}
}

package rates

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/xborder/finance-engine/internal/domain/shared"
	"go.uber.org/zap"
)

// Source supplies rate tables for a reload, typically from the rate store
type Source interface {
	Load(ctx context.Context) ([]RateTable, error)
}

// Registry serves versioned, immutable rate snapshots. The current snapshot
// is swapped atomically on reload; calculations already holding a snapshot
// reference complete against a fully consistent table set.
type Registry struct {
	source        Source
	log           *zap.Logger
	reloadTimeout time.Duration

	current atomic.Pointer[Snapshot]

	mu       sync.Mutex // serializes reloads and guards the version history
	versions []VersionInfo
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithReloadTimeout bounds the source fetch during a reload. On timeout the
// previous snapshot remains active.
func WithReloadTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.reloadTimeout = d
	}
}

// NewRegistry creates a registry with no version loaded yet
func NewRegistry(source Source, log *zap.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		source:        source,
		log:           log.Named("rates"),
		reloadTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the active snapshot, or ErrNoRatesLoaded before the first
// successful reload.
func (r *Registry) Current() (*Snapshot, error) {
	snap := r.current.Load()
	if snap == nil {
		return nil, shared.ErrNoRatesLoaded
	}
	return snap, nil
}

// Loaded reports whether a rate version is currently active
func (r *Registry) Loaded() bool {
	return r.current.Load() != nil
}

// Reload fetches rate tables from the source and, only on full success,
// publishes them as a new version. Any failure leaves the previously active
// version serving; the registry never falls back to an empty table set.
func (r *Registry) Reload(ctx context.Context) (VersionInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.reloadTimeout)
	defer cancel()

	tables, err := r.source.Load(ctx)
	if err != nil {
		r.log.Error("rate reload failed, previous version remains active", zap.Error(err))
		return VersionInfo{}, shared.NewDomainError(shared.ErrReloadFailed.Code,
			fmt.Sprintf("rate reload failed: %v", err))
	}
	if len(tables) == 0 {
		r.log.Error("rate source returned no tables, previous version remains active")
		return VersionInfo{}, shared.NewDomainError(shared.ErrReloadFailed.Code,
			"rate reload failed: source returned no rate tables")
	}

	snap := NewSnapshot(uuid.NewString(), time.Now().UTC(), tables)
	r.current.Store(snap)

	info := VersionInfo{
		RateVersion:   snap.Version(),
		EffectiveFrom: snap.EffectiveFrom(),
		TableCount:    snap.TableCount(),
	}
	r.versions = append(r.versions, info)

	r.log.Info("rate version published",
		zap.String("rate_version", info.RateVersion),
		zap.Int("table_count", info.TableCount),
	)
	return info, nil
}

// Versions returns the published version history, oldest first. The entry
// matching the active snapshot is flagged.
func (r *Registry) Versions() []VersionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	activeVersion := ""
	if snap := r.current.Load(); snap != nil {
		activeVersion = snap.Version()
	}

	out := make([]VersionInfo, len(r.versions))
	for i, v := range r.versions {
		v.Active = v.RateVersion == activeVersion
		out[i] = v
	}
	return out
}

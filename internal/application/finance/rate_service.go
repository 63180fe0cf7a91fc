package finance

import (
	"context"

	"github.com/xborder/finance-engine/internal/domain/rates"
	"go.uber.org/zap"
)

// RateService exposes rate version management: listing published versions and
// triggering a reload from the rate store.
type RateService struct {
	registry *rates.Registry
	log      *zap.Logger
}

// NewRateService creates a new RateService
func NewRateService(registry *rates.Registry, log *zap.Logger) *RateService {
	return &RateService{
		registry: registry,
		log:      log.Named("rates"),
	}
}

// Versions lists the published rate versions, oldest first
func (s *RateService) Versions(ctx context.Context) []rates.VersionInfo {
	return s.registry.Versions()
}

// Reload fetches the rate store and publishes a new version. On failure the
// previously active version keeps serving.
func (s *RateService) Reload(ctx context.Context) (rates.VersionInfo, error) {
	return s.registry.Reload(ctx)
}

// Loaded reports whether a rate version is active, for readiness checks
func (s *RateService) Loaded() bool {
	return s.registry.Loaded()
}

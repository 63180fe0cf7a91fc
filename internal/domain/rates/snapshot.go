package rates

import (
	"sort"
	"strings"
	"time"

	"github.com/xborder/finance-engine/internal/domain/shared"
)

// VersionRef identifies the rate version a calculation was pinned to
type VersionRef struct {
	RateVersion   string    `json:"rate_version"`
	EffectiveFrom time.Time `json:"effective_from"`
}

// VersionInfo describes a published rate version for audit listings
type VersionInfo struct {
	RateVersion   string    `json:"rate_version"`
	EffectiveFrom time.Time `json:"effective_from"`
	TableCount    int       `json:"table_count"`
	Active        bool      `json:"active"`
}

// Snapshot is an immutable set of rate tables published as one version.
// A calculation holds a snapshot reference end-to-end, so a concurrent reload
// never changes the tables it sees.
type Snapshot struct {
	version       string
	effectiveFrom time.Time
	tables        map[string]*RateTable
	platforms     map[string][]string // platform -> sorted service keys
}

func tableKey(platform, service string) string {
	return strings.ToLower(platform) + "/" + strings.ToLower(service)
}

// NewSnapshot builds a snapshot from the given tables. Tiers are sorted by
// weight floor; the input slice is copied so later mutation of the source
// cannot leak into a published version.
func NewSnapshot(version string, effectiveFrom time.Time, tables []RateTable) *Snapshot {
	s := &Snapshot{
		version:       version,
		effectiveFrom: effectiveFrom,
		tables:        make(map[string]*RateTable, len(tables)),
		platforms:     make(map[string][]string),
	}
	for i := range tables {
		t := tables[i]
		t.Tiers = append([]Tier(nil), t.Tiers...)
		t.Surcharges = append([]SurchargeRule(nil), t.Surcharges...)
		t.sortTiers()
		key := tableKey(t.Platform, t.Service)
		s.tables[key] = &t
		p := strings.ToLower(t.Platform)
		s.platforms[p] = append(s.platforms[p], strings.ToLower(t.Service))
	}
	for p := range s.platforms {
		sort.Strings(s.platforms[p])
	}
	return s
}

// Version returns the opaque version id of this snapshot
func (s *Snapshot) Version() string {
	return s.version
}

// EffectiveFrom returns the publication time of this snapshot
func (s *Snapshot) EffectiveFrom() time.Time {
	return s.effectiveFrom
}

// Ref returns the version metadata pinned into calculation results
func (s *Snapshot) Ref() VersionRef {
	return VersionRef{RateVersion: s.version, EffectiveFrom: s.effectiveFrom}
}

// TableCount returns the number of rate tables in this snapshot
func (s *Snapshot) TableCount() int {
	return len(s.tables)
}

// Resolve returns the rate table for a platform/service pair. An empty
// service resolves to the platform's default table.
func (s *Snapshot) Resolve(platform, service string) (*RateTable, error) {
	if service == "" {
		def, ok := s.DefaultServiceFor(platform)
		if !ok {
			return nil, shared.ErrRateNotFound
		}
		service = def
	}
	table, ok := s.tables[tableKey(platform, service)]
	if !ok {
		return nil, shared.ErrRateNotFound
	}
	return table, nil
}

// ServicesFor returns the sorted service keys available for a platform
func (s *Snapshot) ServicesFor(platform string) []string {
	services := s.platforms[strings.ToLower(platform)]
	return append([]string(nil), services...)
}

// DefaultServiceFor returns the platform's default service: the table marked
// default, or the first service in sorted order when none is marked.
func (s *Snapshot) DefaultServiceFor(platform string) (string, bool) {
	services := s.platforms[strings.ToLower(platform)]
	if len(services) == 0 {
		return "", false
	}
	for _, svc := range services {
		if t := s.tables[tableKey(platform, svc)]; t != nil && t.Default {
			return svc, true
		}
	}
	return services[0], true
}

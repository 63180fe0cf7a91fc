package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xborder/finance-engine/internal/domain/rates"
	"github.com/xborder/finance-engine/internal/infrastructure/config"
)

func testDatabase(t *testing.T) *Database {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            filepath.Join(t.TempDir(), "rates.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 30,
	}
	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func TestSeedDefaultRates(t *testing.T) {
	db := testDatabase(t)

	seeded, err := SeedDefaultRates(db.DB)
	require.NoError(t, err)
	assert.Equal(t, 3, seeded)

	// Seeding is a no-op once the store has data
	seeded, err = SeedDefaultRates(db.DB)
	require.NoError(t, err)
	assert.Zero(t, seeded)
}

func TestGormRateSourceLoad(t *testing.T) {
	db := testDatabase(t)
	_, err := SeedDefaultRates(db.DB)
	require.NoError(t, err)

	source := NewGormRateSource(db.DB)
	tables, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 3)

	byKey := map[string]rates.RateTable{}
	for _, table := range tables {
		byKey[table.Platform+"/"+table.Service] = table
	}

	standard, ok := byKey["shopee/standard"]
	require.True(t, ok)
	assert.Equal(t, "SLS", standard.Carrier)
	assert.True(t, standard.Default)
	assert.Len(t, standard.Tiers, 3)
	assert.Len(t, standard.Surcharges, 5)
	assert.True(t, standard.VolumetricDivisor.Equal(dec("5000")))
	assert.Equal(t, 5, standard.DeliveryDaysMin)

	economy, ok := byKey["lazada/economy"]
	require.True(t, ok)
	assert.Len(t, economy.Tiers, 2)
	assert.True(t, economy.VolumetricDivisor.Equal(dec("6000")))
}

func TestGormRateSourceLoadEmptyStore(t *testing.T) {
	db := testDatabase(t)

	tables, err := NewGormRateSource(db.DB).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestLoadedTablesFeedRegistry(t *testing.T) {
	db := testDatabase(t)
	_, err := SeedDefaultRates(db.DB)
	require.NoError(t, err)

	tables, err := NewGormRateSource(db.DB).Load(context.Background())
	require.NoError(t, err)

	snap := rates.NewSnapshot("v-test", time.Now().UTC(), tables)
	table, err := snap.Resolve("shopee", "")
	require.NoError(t, err)
	assert.Equal(t, "standard", table.Service, "seeded default service resolves")
}

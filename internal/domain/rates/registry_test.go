package rates

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSource is a Source returning canned tables or an error
type stubSource struct {
	mu     sync.Mutex
	tables []RateTable
	err    error
	calls  int
}

func (s *stubSource) Load(ctx context.Context) ([]RateTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tables, nil
}

func (s *stubSource) set(tables []RateTable, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables, s.err = tables, err
}

func TestRegistryCurrentBeforeFirstLoad(t *testing.T) {
	r := NewRegistry(&stubSource{tables: sampleTables()}, zap.NewNop())

	assert.False(t, r.Loaded())
	_, err := r.Current()
	assert.Error(t, err)
}

func TestRegistryReloadPublishesVersion(t *testing.T) {
	r := NewRegistry(&stubSource{tables: sampleTables()}, zap.NewNop())

	info, err := r.Reload(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, info.RateVersion)
	assert.Equal(t, 3, info.TableCount)
	assert.True(t, r.Loaded())

	snap, err := r.Current()
	require.NoError(t, err)
	assert.Equal(t, info.RateVersion, snap.Version())
}

func TestRegistryReloadFailureKeepsPreviousVersion(t *testing.T) {
	src := &stubSource{tables: sampleTables()}
	r := NewRegistry(src, zap.NewNop())

	first, err := r.Reload(context.Background())
	require.NoError(t, err)

	src.set(nil, errors.New("store down"))
	_, err = r.Reload(context.Background())
	require.Error(t, err)

	snap, err := r.Current()
	require.NoError(t, err)
	assert.Equal(t, first.RateVersion, snap.Version(), "previous version must keep serving")
}

func TestRegistryReloadEmptySourceFails(t *testing.T) {
	src := &stubSource{tables: sampleTables()}
	r := NewRegistry(src, zap.NewNop())

	_, err := r.Reload(context.Background())
	require.NoError(t, err)

	src.set([]RateTable{}, nil)
	_, err = r.Reload(context.Background())
	assert.Error(t, err, "empty table set must not replace a good version")
	assert.True(t, r.Loaded())
}

func TestRegistryVersionsFlagActive(t *testing.T) {
	r := NewRegistry(&stubSource{tables: sampleTables()}, zap.NewNop())

	_, err := r.Reload(context.Background())
	require.NoError(t, err)
	second, err := r.Reload(context.Background())
	require.NoError(t, err)

	versions := r.Versions()
	require.Len(t, versions, 2)
	assert.False(t, versions[0].Active)
	assert.True(t, versions[1].Active)
	assert.Equal(t, second.RateVersion, versions[1].RateVersion)
}

func TestRegistrySnapshotStableAcrossReload(t *testing.T) {
	src := &stubSource{tables: sampleTables()}
	r := NewRegistry(src, zap.NewNop())

	_, err := r.Reload(context.Background())
	require.NoError(t, err)
	held, err := r.Current()
	require.NoError(t, err)

	// A reload swaps the active snapshot but a held reference is unchanged.
	_, err = r.Reload(context.Background())
	require.NoError(t, err)
	current, err := r.Current()
	require.NoError(t, err)

	assert.NotEqual(t, held.Version(), current.Version())
	table, err := held.Resolve("shopee", "standard")
	require.NoError(t, err)
	assert.Equal(t, "t1", table.ID)
}

func TestRegistryConcurrentReadsDuringReload(t *testing.T) {
	src := &stubSource{tables: sampleTables()}
	r := NewRegistry(src, zap.NewNop())
	_, err := r.Reload(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap, err := r.Current()
				require.NoError(t, err)
				_, err = snap.Resolve("shopee", "standard")
				require.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		_, err := r.Reload(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

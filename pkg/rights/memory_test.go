package rights_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readium/kotlin-toolkit-sub011/pkg/rights"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing counter is nil", func(t *testing.T) {
		t.Parallel()

		s := rights.NewMemoryStore()
		value, err := s.Get(ctx, "lic-1", rights.CounterCopy)
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		s := rights.NewMemoryStore()
		require.NoError(t, s.Set(ctx, "lic-1", rights.CounterCopy, 100))

		value, err := s.Get(ctx, "lic-1", rights.CounterCopy)
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, 100, *value)

		// Other counters and licenses are unaffected.
		value, err = s.Get(ctx, "lic-1", rights.CounterPrint)
		require.NoError(t, err)
		assert.Nil(t, value)
		value, err = s.Get(ctx, "lic-2", rights.CounterCopy)
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("returned pointer is a copy", func(t *testing.T) {
		t.Parallel()

		s := rights.NewMemoryStore()
		require.NoError(t, s.Set(ctx, "lic-1", rights.CounterPrint, 10))

		value, err := s.Get(ctx, "lic-1", rights.CounterPrint)
		require.NoError(t, err)
		*value = 0

		again, err := s.Get(ctx, "lic-1", rights.CounterPrint)
		require.NoError(t, err)
		assert.Equal(t, 10, *again)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		s := rights.NewMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Set(ctx, "lic-1", rights.CounterCopy, i)
				_, _ = s.Get(ctx, "lic-1", rights.CounterCopy)
			}()
		}
		wg.Wait()

		value, err := s.Get(ctx, "lic-1", rights.CounterCopy)
		require.NoError(t, err)
		assert.NotNil(t, value)
	})
}

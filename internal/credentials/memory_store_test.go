package credentials

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Load(ctx, "t1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "t1", testGrant()))
	got, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "access-token", got.AccessToken)

	// Mutating the returned grant must not affect the stored copy
	got.AccessToken = "mutated"
	again, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "access-token", again.AccessToken)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Load(ctx, "t1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreConcurrentTenants(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tenant := string(rune('a' + n%8))
			g := testGrant()
			if err := store.Save(ctx, tenant, g); err != nil {
				t.Error(err)
				return
			}
			if _, err := store.Load(ctx, tenant); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
}

func TestSanitizeTenant(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"t1", "t1"},
		{"", "default"},
		{"caller@example.com", "caller_example.com"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"work account", "work_account"},
	}
	for _, tt := range tests {
		if got := sanitizeTenant(tt.in); got != tt.want {
			t.Errorf("sanitizeTenant(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

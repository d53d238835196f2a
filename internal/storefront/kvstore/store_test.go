//go:build unit

package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/kvstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a fresh instance of every store implementation.
func backends(t *testing.T) map[string]kvstore.Store {
	t.Helper()
	ctx := context.Background()

	file, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	sqlite, err := kvstore.OpenSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := kvstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")

	stores := map[string]kvstore.Store{
		"memory": kvstore.NewMemoryStore(),
		"file":   file,
		"sqlite": sqlite,
		"redis":  rdb,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, kvstore.KeyCart)
			assert.True(t, errs.Is(err, kvstore.ErrNotFound), "missing key")

			require.NoError(t, store.Set(ctx, kvstore.KeyCart, []byte(`[{"id":"a"}]`)))
			got, err := store.Get(ctx, kvstore.KeyCart)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"a"}]`, string(got))

			require.NoError(t, store.Set(ctx, kvstore.KeyCart, []byte(`[]`)))
			got, err = store.Get(ctx, kvstore.KeyCart)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got), "overwrite replaces the whole value")

			require.NoError(t, store.Set(ctx, kvstore.KeyLanguage, []byte(`"ar"`)))
			require.NoError(t, store.Clear(ctx, kvstore.KeyCart))
			_, err = store.Get(ctx, kvstore.KeyCart)
			assert.True(t, errs.Is(err, kvstore.ErrNotFound), "cleared key")

			lang, err := store.Get(ctx, kvstore.KeyLanguage)
			require.NoError(t, err)
			assert.Equal(t, `"ar"`, string(lang), "other keys survive a clear")

			assert.NoError(t, store.Clear(ctx, "never-set"), "clearing a missing key")
		})
	}
}

func TestStore_RejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../etc/passwd", "a/b", ".hidden"} {
				err := store.Set(ctx, key, []byte("x"))
				assert.True(t, errs.Is(err, kvstore.ErrInvalidKey), "key %q", key)
			}
		})
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	value := []byte("abc")

	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'z'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, kvstore.KeyLanguage, []byte(`"ar"`)))

	second, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, kvstore.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, `"ar"`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFileStore_HonoursCancelledContext(t *testing.T) {
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "k", []byte("v")), context.Canceled)
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := kvstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "shop-a:")
	defer store.Close()

	require.NoError(t, store.Set(ctx, kvstore.KeyCart, []byte("[]")))

	assert.True(t, mr.Exists("shop-a:cart"))
	assert.False(t, mr.Exists("cart"))
	assert.Zero(t, mr.TTL("shop-a:cart"), "values do not expire")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.StorefrontConfig
		want    any
		wantErr bool
	}{
		{name: "memory", cfg: config.StorefrontConfig{Store: kvstore.BackendMemory}, want: &kvstore.MemoryStore{}},
		{name: "file is the default", cfg: config.StorefrontConfig{StorePath: t.TempDir()}, want: &kvstore.FileStore{}},
		{name: "sqlite", cfg: config.StorefrontConfig{Store: kvstore.BackendSQLite, StorePath: t.TempDir()}, want: &kvstore.SQLiteStore{}},
		{name: "redis", cfg: config.StorefrontConfig{Store: kvstore.BackendRedis, RedisAddr: mr.Addr()}, want: &kvstore.RedisStore{}},
		{name: "unreachable redis", cfg: config.StorefrontConfig{Store: kvstore.BackendRedis, RedisAddr: "127.0.0.1:1"}, wantErr: true},
		{name: "unknown backend", cfg: config.StorefrontConfig{Store: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := kvstore.Open(ctx, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}
}

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tutorai-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	*MemoryBackend
	failWrites bool
}

func (f *failingBackend) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	return f.MemoryBackend.Set(ctx, key, value)
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), "u1", logger.NewNop())

	require.True(t, a.Save(ctx, "k", sample{Name: "a", Count: 2}))

	got, ok := Load[sample](ctx, a, "k")
	require.True(t, ok)
	assert.Equal(t, sample{Name: "a", Count: 2}, got)
}

func TestAdapterLoadAbsentAndCorrupt(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend, "u1", logger.NewNop())

	_, ok := Load[sample](ctx, a, "missing")
	assert.False(t, ok)

	require.NoError(t, backend.Set(ctx, "tutor:u1:broken", []byte("{not json")))
	got, ok := Load[sample](ctx, a, "broken")
	assert.False(t, ok)
	assert.Equal(t, sample{}, got)
}

func TestAdapterQuotaKeepsPriorValue(t *testing.T) {
	ctx := context.Background()
	var warnings []error
	a := NewAdapter(NewMemoryBackend(), "u1", logger.NewNop(),
		WithQuota(64),
		WithWarningHook(func(key string, err error) { warnings = append(warnings, err) }),
	)

	require.True(t, a.Save(ctx, "k", sample{Name: "small"}))
	assert.False(t, a.Save(ctx, "k", sample{Name: strings.Repeat("x", 200)}))

	require.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0], ErrQuotaExceeded))

	got, ok := Load[sample](ctx, a, "k")
	require.True(t, ok)
	assert.Equal(t, "small", got.Name)
}

func TestAdapterWriteFailureIsReported(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{MemoryBackend: NewMemoryBackend()}
	warned := 0
	a := NewAdapter(backend, "u1", logger.NewNop(), WithWarningHook(func(string, error) { warned++ }))

	require.True(t, a.Save(ctx, "k", sample{Name: "before"}))
	backend.failWrites = true
	assert.False(t, a.Save(ctx, "k", sample{Name: "after"}))
	assert.Equal(t, 1, warned)

	got, _ := Load[sample](ctx, a, "k")
	assert.Equal(t, "before", got.Name)
}

func TestAdapterClearMissingKey(t *testing.T) {
	ctx := context.Background()
	warned := 0
	a := NewAdapter(NewMemoryBackend(), "u1", logger.NewNop(), WithWarningHook(func(string, error) { warned++ }))

	a.Clear(ctx, "never-written")
	require.True(t, a.Save(ctx, "k", 1))
	a.Clear(ctx, "k")

	_, ok := Load[int](ctx, a, "k")
	assert.False(t, ok)
	assert.Zero(t, warned)
}

func TestAdapterNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend, "alice", logger.NewNop())
	b := NewAdapter(backend, "bob", logger.NewNop())

	require.True(t, a.Save(ctx, KeyPdfContext, "alice's"))

	_, ok := Load[string](ctx, b, KeyPdfContext)
	assert.False(t, ok)
}

func TestSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Set(ctx, "k", []byte("one")))
	require.NoError(t, backend.Set(ctx, "k", []byte("two")))

	got, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	require.NoError(t, backend.Delete(ctx, "k"))
	require.NoError(t, backend.Delete(ctx, "k"))
	_, err = backend.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisBackend(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	ctx := context.Background()
	backend, err := NewRedisBackendFromURL(ctx, url)
	require.NoError(t, err)
	defer backend.Close()

	a := NewAdapter(backend, "test-"+t.Name(), logger.NewNop())
	defer a.Clear(ctx, "k")

	require.True(t, a.Save(ctx, "k", sample{Name: "redis", Count: 1}))
	got, ok := Load[sample](ctx, a, "k")
	require.True(t, ok)
	assert.Equal(t, "redis", got.Name)
}

func TestNewBackendUnknownDriver(t *testing.T) {
	_, err := NewBackend(context.Background(), "etcd", "")
	assert.Error(t, err)
}

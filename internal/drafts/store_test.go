package drafts

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/db"
	"github.com/angelmondragon/procureflow-backend/pkg/migrate"
	pkgredis "github.com/angelmondragon/procureflow-backend/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
}

type stubRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newStubRedis() *stubRedis {
	return &stubRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *stubRedis) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.data[key]
	if !ok {
		return "", pkgredis.ErrNil
	}
	return v, nil
}

func (s *stubRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	default:
		s.data[key] = fmt.Sprint(v)
	}
	s.ttls[key] = ttl
	return nil
}

func (s *stubRedis) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return s.err
}

func (s *stubRedis) Ping(context.Context) error { return s.err }

func (s *stubRedis) Key(parts ...string) string {
	return (&pkgredis.Client{}).Key(parts...)
}

func newSQLStore(t *testing.T, c *clock) *SQLStore {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrate.Run(context.Background(), sqlDB, migrate.Source{Dialect: db.DialectSQLite}, "up"))
	store, err := NewSQLStore(conn, c.Now)
	require.NoError(t, err)
	return store
}

// exerciseStore runs the contract every backend honours.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	key := Key("award-003")

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, key, []byte(`{"step":1}`), 0))
	got, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"step":1}`, string(got))

	require.NoError(t, store.Put(ctx, key, []byte(`{"step":2}`), time.Hour))
	got, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"step":2}`, string(got))

	require.NoError(t, store.Delete(ctx, key))
	_, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Ping(ctx))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "award-draft-award-001", Key("award-001"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(nil))
}

func TestMemoryStoreExpiry(t *testing.T) {
	c := newClock()
	store := NewMemoryStore(c.Now)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v"), time.Minute))
	c.Advance(59 * time.Second)
	_, ok, _ := store.Get(ctx, "k")
	assert.True(t, ok)

	c.Advance(time.Second)
	_, ok, _ = store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	value := []byte("abc")

	require.NoError(t, store.Put(ctx, "k", value, 0))
	value[0] = 'z'
	got, _, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
}

func TestRedisStore(t *testing.T) {
	stub := newStubRedis()
	store, err := NewRedisStore(stub)
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestRedisStoreNamespacesAndTTL(t *testing.T) {
	stub := newStubRedis()
	store, err := NewRedisStore(stub)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), Key("award-005"), []byte("{}"), 2*time.Hour))
	assert.Contains(t, stub.data, "procureflow:award-draft-award-005")
	assert.Equal(t, 2*time.Hour, stub.ttls["procureflow:award-draft-award-005"])
}

func TestRedisStoreSurfacesErrors(t *testing.T) {
	stub := newStubRedis()
	stub.err = fmt.Errorf("connection refused")
	store, err := NewRedisStore(stub)
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, store.Put(context.Background(), "k", []byte("v"), 0))
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	_, err := NewRedisStore(nil)
	require.Error(t, err)
}

func TestSQLStore(t *testing.T) {
	exerciseStore(t, newSQLStore(t, newClock()))
}

func TestSQLStoreExpiry(t *testing.T) {
	c := newClock()
	store := newSQLStore(t, c)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v"), time.Minute))
	c.Advance(2 * time.Minute)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	var count int64
	require.NoError(t, store.conn.Table("award_drafts").Count(&count).Error)
	assert.Zero(t, count)
}

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"taskboard/internal/config"
	"taskboard/internal/task"
	"taskboard/internal/theme"
)

func openTestSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "board.db"), DriverModernc)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func openTestRedis(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisKV(client, config.DefaultRedisPrefix)
	t.Cleanup(func() { _ = kv.Close() })
	return kv, mr
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Write tests", Priority: task.PriorityHigh, Status: task.StatusTodo},
		{
			ID: 2, Title: "Deploy to staging", Description: "after **review**",
			Priority: task.PriorityMedium, DueDate: task.Date{Year: 2026, Month: time.November, Day: 3},
			Status: task.StatusInProgress,
		},
		{ID: 3, Title: "Plan sprint", Priority: task.PriorityLow, Status: task.StatusDone},
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	redisKV, _ := openTestRedis(t)
	backends := map[string]KV{
		"sqlite": openTestSQLite(t),
		"redis":  redisKV,
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := NewAdapter(kv)
			want := sampleTasks()

			if err := a.SaveTasks(ctx, want); err != nil {
				t.Fatalf("SaveTasks: %v", err)
			}
			res := a.LoadTasks(ctx)
			if res.Err != nil || !res.Found {
				t.Fatalf("LoadTasks = %+v", res)
			}
			if !reflect.DeepEqual(res.OrEmpty(), want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", res.Tasks, want)
			}

			// Overwrite, not append.
			if err := a.SaveTasks(ctx, want[:1]); err != nil {
				t.Fatalf("SaveTasks: %v", err)
			}
			if got := a.LoadTasks(ctx).OrEmpty(); !reflect.DeepEqual(got, want[:1]) {
				t.Errorf("after overwrite got %+v", got)
			}
		})
	}
}

func TestAdapterLoadFailsOpen(t *testing.T) {
	ctx := context.Background()
	kv := openTestSQLite(t)
	a := NewAdapter(kv)

	res := a.LoadTasks(ctx)
	if res.Found || res.Err != nil {
		t.Fatalf("absent key: %+v", res)
	}
	if got := res.OrEmpty(); got == nil || len(got) != 0 {
		t.Errorf("absent key OrEmpty = %#v, want empty non-nil", got)
	}

	cases := []string{
		`not json`,
		`{"id": 1}`,
		`[{"id":1,"title":"x","priority":"low","dueDate":"","status":"archived"}]`,
		`[{"id":1,"title":"x","priority":"low","dueDate":"","status":"TODO"}]`,
	}
	for _, raw := range cases {
		if err := kv.Set(ctx, TasksKey, raw); err != nil {
			t.Fatal(err)
		}
		res := a.LoadTasks(ctx)
		if res.Err == nil {
			t.Errorf("LoadTasks(%q) err = nil, want decode error", raw)
		}
		if got := res.OrEmpty(); len(got) != 0 {
			t.Errorf("LoadTasks(%q).OrEmpty() = %+v, want empty", raw, got)
		}
	}
}

func TestAdapterTheme(t *testing.T) {
	ctx := context.Background()
	kv := openTestSQLite(t)
	a := NewAdapter(kv)

	if got := a.LoadTheme(ctx); got != theme.Light {
		t.Errorf("default theme = %q, want light", got)
	}
	if err := a.SaveTheme(ctx, theme.Dark); err != nil {
		t.Fatal(err)
	}
	if got := a.LoadTheme(ctx); got != theme.Dark {
		t.Errorf("theme = %q, want dark", got)
	}
	if err := kv.Set(ctx, ThemeKey, "neon"); err != nil {
		t.Fatal(err)
	}
	if got := a.LoadTheme(ctx); got != theme.Light {
		t.Errorf("unknown theme = %q, want light", got)
	}
}

func TestRedisKVUsesPrefix(t *testing.T) {
	kv, mr := openTestRedis(t)
	if err := kv.Set(context.Background(), ThemeKey, "dark"); err != nil {
		t.Fatal(err)
	}
	got, err := mr.Get(config.DefaultRedisPrefix + ThemeKey)
	if err != nil || got != "dark" {
		t.Errorf("raw redis value = %q, %v", got, err)
	}
	if ttl := mr.TTL(config.DefaultRedisPrefix + ThemeKey); ttl != 0 {
		t.Errorf("unexpected TTL %v", ttl)
	}
}

func TestRedisKVGetError(t *testing.T) {
	kv, mr := openTestRedis(t)
	mr.Close()
	if _, _, err := kv.Get(context.Background(), TasksKey); err == nil {
		t.Fatal("expected error from closed redis")
	}
	res := NewAdapter(kv).LoadTasks(context.Background())
	if res.Err == nil || len(res.OrEmpty()) != 0 {
		t.Errorf("LoadTasks on dead backend = %+v", res)
	}
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("/tmp/board.db", DriverModernc)
	if !strings.HasPrefix(dsn, "file:///tmp/board.db?") || !strings.Contains(dsn, "busy_timeout%285000%29") {
		t.Errorf("modernc dsn = %q", dsn)
	}
	dsn = sqliteDSN("/tmp/board.db", DriverCGO)
	if !strings.Contains(dsn, "_busy_timeout=5000") {
		t.Errorf("cgo dsn = %q", dsn)
	}
	if got := sqliteDSN("file::memory:", DriverModernc); got != "file::memory:" {
		t.Errorf("uri passthrough = %q", got)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Backend: "etcd"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err = %v, want ErrUnknownBackend", err)
	}
}

func TestOpenRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)

	kv, err := Open(context.Background(), config.Config{
		Backend: config.BackendRedis,
		Redis:   config.RedisConfig{Addr: mr.Addr(), Prefix: "t:"},
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*RedisKV); !ok {
		t.Fatalf("Open returned %T", kv)
	}
}

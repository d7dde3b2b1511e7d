package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/SNMurthy2003/Task-Assigner/internal/config"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := config.RedisConfig{
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return NewRedisCache(cfg, mr.Addr()), mr
}

func TestRedisSetGet(t *testing.T) {
	cache, _ := setupTestRedis(t)

	type payload struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}

	original := payload{Title: "Fix bug", Status: "Pending"}
	if err := cache.Set("tasks:one", original, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got payload
	if err := cache.Get("tasks:one", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got != original {
		t.Errorf("Expected %+v, got %+v", original, got)
	}
}

func TestRedisGetMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	var dest string
	if err := cache.Get("missing", &dest); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisDelete(t *testing.T) {
	cache, _ := setupTestRedis(t)

	if err := cache.Set("tasks:all", []string{"a"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := cache.Delete("tasks:all"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var dest []string
	if err := cache.Get("tasks:all", &dest); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestRedisDeletePattern(t *testing.T) {
	cache, _ := setupTestRedis(t)

	cache.Set("tasks:all", "a", time.Minute)
	cache.Set("tasks:user:u1", "b", time.Minute)
	cache.Set("users:list", "c", time.Minute)

	if err := cache.DeletePattern("tasks:*"); err != nil {
		t.Fatalf("DeletePattern failed: %v", err)
	}

	var dest string
	if err := cache.Get("tasks:all", &dest); err != ErrCacheMiss {
		t.Error("Expected tasks:all to be deleted")
	}
	if err := cache.Get("tasks:user:u1", &dest); err != ErrCacheMiss {
		t.Error("Expected tasks:user:u1 to be deleted")
	}
	if err := cache.Get("users:list", &dest); err != nil {
		t.Errorf("Expected users:list to survive, got %v", err)
	}
}

func TestRedisExists(t *testing.T) {
	cache, _ := setupTestRedis(t)

	found, err := cache.Exists("nothing")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if found {
		t.Error("Expected missing key to not exist")
	}

	cache.Set("something", 1, time.Minute)

	found, err = cache.Exists("something")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !found {
		t.Error("Expected key to exist")
	}
}

func TestRedisExpiry(t *testing.T) {
	cache, mr := setupTestRedis(t)

	cache.Set("ephemeral", "x", time.Minute)
	mr.FastForward(2 * time.Minute)

	var dest string
	if err := cache.Get("ephemeral", &dest); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss after TTL, got %v", err)
	}
}

func TestRedisHealth(t *testing.T) {
	cache, mr := setupTestRedis(t)

	if err := cache.Health(); err != nil {
		t.Errorf("Expected healthy cache, got %v", err)
	}

	mr.Close()

	if err := cache.Health(); err == nil {
		t.Error("Expected health check to fail with redis down")
	}
}

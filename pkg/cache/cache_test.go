package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "dataset:abc", []byte("rows"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "dataset:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit after Set")
	}
	if string(data) != "rows" {
		t.Errorf("Get data = %q, want %q", data, "rows")
	}
}

func TestFileCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	_, hit, err := c.Get(ctx, "never-set")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("unset key should miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// A TTL in the past is already expired.
	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "gone"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("k"), []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupt write: %v", err)
	}

	_, hit, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("corrupt entry should be a miss")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DatasetKey depends on the URL
	dk1 := k.DatasetKey("https://example.org/a.csv")
	dk2 := k.DatasetKey("https://example.org/b.csv")
	if dk1 == dk2 {
		t.Error("Different URLs should produce different keys")
	}
	if dk1[:8] != "dataset:" {
		t.Errorf("DatasetKey missing prefix: %s", dk1)
	}

	// ArtifactKey should include options in hash
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", ConfigHash: "c1"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", ConfigHash: "c1"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", ConfigHash: "c2"})
	if ak1 == ak3 {
		t.Error("Different config hashes should produce different keys")
	}
}

package database

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *SeenDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()
		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(db.Path()); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false rejects missing database", func(t *testing.T) {
		t.Parallel()
		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for missing database")
		}
	})
}

// TestSeenAndRecord tests the core dedup contract.
func TestSeenAndRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fresh query has empty seen set", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		seen, err := db.Seen(ctx, "inurl:checkout")
		if err != nil {
			t.Fatalf("Seen failed: %v", err)
		}
		if len(seen) != 0 {
			t.Errorf("expected empty seen set, got %v", seen)
		}
	})

	t.Run("recorded URLs come back in the seen set", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		urls := []string{"https://a.test", "https://b.test"}
		if err := db.Record(ctx, "inurl:checkout", urls); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		seen, err := db.Seen(ctx, "inurl:checkout")
		if err != nil {
			t.Fatalf("Seen failed: %v", err)
		}
		if len(seen) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(seen))
		}
		for _, u := range urls {
			if _, ok := seen[u]; !ok {
				t.Errorf("URL %q missing from seen set", u)
			}
		}
	})

	t.Run("recording twice is idempotent", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		urls := []string{"https://a.test", "https://b.test"}

		if err := db.Record(ctx, "q", urls); err != nil {
			t.Fatalf("first Record failed: %v", err)
		}
		if err := db.Record(ctx, "q", urls); err != nil {
			t.Fatalf("second Record failed: %v", err)
		}

		n, err := db.Count(ctx, "q")
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 entries after duplicate record, got %d", n)
		}
	})

	t.Run("queries are matched verbatim", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		if err := db.Record(ctx, "inurl:checkout", []string{"https://a.test"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		for _, variant := range []string{"INURL:CHECKOUT", " inurl:checkout", "inurl:checkout "} {
			seen, err := db.Seen(ctx, variant)
			if err != nil {
				t.Fatalf("Seen(%q) failed: %v", variant, err)
			}
			if len(seen) != 0 {
				t.Errorf("query variant %q should have its own seen set, got %v", variant, seen)
			}
		}
	})

	t.Run("empty URL slice is a no-op", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		if err := db.Record(ctx, "q", nil); err != nil {
			t.Errorf("Record with no URLs should succeed, got %v", err)
		}
	})

	t.Run("entries survive reopen", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("open failed: %v", err)
		}
		if err := db.Record(ctx, "q", []string{"https://durable.test"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}

		reopened, err := Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()

		seen, err := reopened.Seen(ctx, "q")
		if err != nil {
			t.Fatalf("Seen failed: %v", err)
		}
		if _, ok := seen["https://durable.test"]; !ok {
			t.Error("entry did not survive reopen")
		}
	})

	t.Run("concurrent records lose no entries", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)

		var wg sync.WaitGroup
		urls := []string{
			"https://a.test", "https://b.test", "https://c.test",
			"https://d.test", "https://e.test",
		}
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := db.Record(ctx, "concurrent", urls); err != nil {
					t.Errorf("concurrent Record failed: %v", err)
				}
			}()
		}
		wg.Wait()

		n, err := db.Count(ctx, "concurrent")
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != len(urls) {
			t.Errorf("expected %d entries, got %d", len(urls), n)
		}
	})
}

// TestQueries tests the operator inspection helper.
func TestQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)

	for _, q := range []string{"zeta", "alpha"} {
		if err := db.Record(ctx, q, []string{"https://x.test"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	queries, err := db.Queries(ctx)
	if err != nil {
		t.Fatalf("Queries failed: %v", err)
	}
	if len(queries) != 2 || queries[0] != "alpha" || queries[1] != "zeta" {
		t.Errorf("unexpected query list: %v", queries)
	}
}

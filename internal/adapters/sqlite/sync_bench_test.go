package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pyxidust/internal/domain"
)

func syntheticCrawl(root string, n int) []domain.FileInfo {
	mtime := time.Now()
	files := make([]domain.FileInfo, n)
	for i := range files {
		name := fmt.Sprintf("2025%04d-0001_Project.aprx", i)
		files[i] = domain.FileInfo{Name: name, Path: filepath.Join(root, fmt.Sprintf("2025%04d_Project", i), name), ModTime: mtime}
	}
	return files
}

// BenchmarkSyncCold benchmarks a first sync into an empty database
func BenchmarkSyncCold(b *testing.B) {
	root := "/projects"
	files := syntheticCrawl(root, 2000)
	tmpDir := b.TempDir()
	ctx := context.Background()

	for b.Loop() {
		dbPath := filepath.Join(tmpDir, "bench.db")
		s := NewStore(dbPath)
		if err := s.Open(ctx); err != nil {
			b.Fatalf("failed to open store: %v", err)
		}
		if _, err := s.Sync(ctx, root, files); err != nil {
			b.Fatalf("sync failed: %v", err)
		}
		if err := s.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}

		// Clean up for next iteration
		for _, suffix := range []string{"", "-wal", "-shm"} {
			os.Remove(dbPath + suffix)
		}
	}
}

// BenchmarkSyncWarm benchmarks re-syncing an unchanged crawl
func BenchmarkSyncWarm(b *testing.B) {
	root := "/projects"
	files := syntheticCrawl(root, 2000)
	ctx := context.Background()

	s := NewStore(filepath.Join(b.TempDir(), "bench.db"))
	if err := s.Open(ctx); err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if _, err := s.Sync(ctx, root, files); err != nil {
		b.Fatalf("initial sync failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := s.Sync(ctx, root, files); err != nil {
			b.Fatalf("sync failed: %v", err)
		}
	}
}

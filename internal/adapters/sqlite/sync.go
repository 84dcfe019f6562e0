package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pyxidust/internal/domain"
)

const filepathSeparator = os.PathSeparator

// Sync reconciles the stored files under root with the files of a crawl.
// New paths get a fresh GUID, known paths keep theirs, and stored paths under
// root that the crawl did not see are deleted.
func (s *Store) Sync(ctx context.Context, root string, files []domain.FileInfo) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{FilesScanned: len(files)}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	root = filepath.Clean(root)

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.existing(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored files: %w", err)
	}

	now := s.now().Unix()
	seen := make(map[string]bool, len(files))

	for _, f := range files {
		if seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		mtime := f.ModTime.Unix()

		stored, ok := existing[f.Path]
		switch {
		case !ok:
			err = tx.insertFile(&domain.StoredFile{
				GUID:      uuid.NewString(),
				Path:      f.Path,
				Name:      f.Name,
				Mtime:     mtime,
				FirstSeen: now,
				LastSeen:  now,
			})
			stats.FilesAdded++
		case stored.Mtime != mtime || stored.Name != f.Name:
			err = tx.updateFile(f.Path, f.Name, mtime, now)
			stats.FilesUpdated++
		default:
			err = tx.touchFile(f.Path, now)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", f.Path, err)
		}
	}

	for path := range existing {
		if seen[path] {
			continue
		}
		if err := tx.deleteFile(path); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", path, err)
		}
		stats.FilesDeleted++
	}

	if err := tx.setLastSync(now); err != nil {
		return nil, fmt.Errorf("failed to record sync time: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

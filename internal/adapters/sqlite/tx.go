package sqlite

import (
	"context"
	"database/sql"
	"unicode/utf8"

	"pyxidust/internal/domain"
)

// fileTx groups the writes of one sync
type fileTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*fileTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &fileTx{ctx: ctx, tx: tx}, nil
}

// existing returns stored files at or below root keyed by path.
// substr counts characters, not bytes.
func (t *fileTx) existing(root string) (map[string]domain.StoredFile, error) {
	prefix := root + string(filepathSeparator)
	rows, err := t.tx.QueryContext(t.ctx, `
		SELECT guid, path, name, mtime, first_seen, last_seen
		FROM files
		WHERE path = ? OR substr(path, 1, ?) = ?
	`, root, utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make(map[string]domain.StoredFile)
	for rows.Next() {
		var f domain.StoredFile
		if err := rows.Scan(&f.GUID, &f.Path, &f.Name, &f.Mtime, &f.FirstSeen, &f.LastSeen); err != nil {
			return nil, err
		}
		files[f.Path] = f
	}
	return files, rows.Err()
}

// insertFile adds a newly seen file
func (t *fileTx) insertFile(f *domain.StoredFile) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO files (path, guid, name, mtime, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)
	`, f.Path, f.GUID, f.Name, f.Mtime, f.FirstSeen, f.LastSeen)
	return err
}

// updateFile records a changed modification time
func (t *fileTx) updateFile(path, name string, mtime, seen int64) error {
	_, err := t.tx.ExecContext(t.ctx, `
		UPDATE files SET name = ?, mtime = ?, last_seen = ?
		WHERE path = ?
	`, name, mtime, seen, path)
	return err
}

// touchFile records that an unchanged file is still present
func (t *fileTx) touchFile(path string, seen int64) error {
	_, err := t.tx.ExecContext(t.ctx, `UPDATE files SET last_seen = ? WHERE path = ?`, seen, path)
	return err
}

// deleteFile removes a file that disappeared
func (t *fileTx) deleteFile(path string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM files WHERE path = ?`, path)
	return err
}

func (t *fileTx) setLastSync(unix int64) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`, unix)
	return err
}

func (t *fileTx) Commit() error {
	return t.tx.Commit()
}

func (t *fileTx) Rollback() error {
	return t.tx.Rollback()
}

// Package cataloglog appends project provenance rows to a comma-separated log.
package cataloglog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/jszwec/csvutil"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// Log implements ports.CatalogLog over an append-only file.
// No header is written; a header line created by hand is skipped on read.
type Log struct {
	path string
}

var _ ports.CatalogLog = (*Log)(nil)

// NewLog creates a catalog log backed by path
func NewLog(path string) *Log {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return &Log{path: path}
}

// Path returns the catalog file path
func (l *Log) Path() string {
	return l.path
}

// Append writes one line for entry while holding the catalog lock
func (l *Log) Append(ctx context.Context, entry domain.CatalogEntry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	line, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	lock := flock.New(l.path + ".lock")
	locked, err := lock.TryLockContext(ctx, 25*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to lock catalog: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to lock catalog %s", l.path)
	}
	defer lock.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	// Hand-edited catalogs often lack a final newline
	needsNewline, err := missingTrailingNewline(f)
	if err != nil {
		return err
	}
	if needsNewline {
		line = append([]byte("\n"), line...)
	}

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("failed to append catalog entry: %w", err)
	}
	return f.Sync()
}

// List returns every entry in file order
func (l *Log) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(headerFilter{r}, domain.CatalogHeader...)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var entries []domain.CatalogEntry
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var e domain.CatalogEntry
		if err := dec.Decode(&e); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode catalog line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Find returns the entry for a base serial
func (l *Log) Find(ctx context.Context, serial string) (*domain.CatalogEntry, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Serial == serial {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("serial %s not in catalog", serial)
}

// headerFilter drops header lines written out of band
type headerFilter struct {
	r *csv.Reader
}

func (h headerFilter) Read() ([]string, error) {
	for {
		record, err := h.r.Read()
		if err != nil {
			return nil, err
		}
		if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), domain.CatalogHeader[0]) {
			continue
		}
		return record, nil
	}
}

func encodeEntry(entry domain.CatalogEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = false
	if err := enc.Encode(entry); err != nil {
		return nil, fmt.Errorf("failed to encode catalog entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog entry: %w", err)
	}
	return buf.Bytes(), nil
}

func missingTrailingNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat catalog: %w", err)
	}
	if info.Size() == 0 {
		return false, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("failed to read catalog: %w", err)
	}
	return last[0] != '\n', nil
}

// CurrentUser returns the OS login name recorded as creator
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		// Windows reports DOMAIN\user
		if i := strings.LastIndex(u.Username, `\`); i >= 0 {
			return u.Username[i+1:]
		}
		return u.Username
	}
	for _, env := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "unknown"
}

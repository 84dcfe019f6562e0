// Package csvreport reads and writes the tables produced by a crawl.
//
// Catalog.csv is comma separated with a header. Attribute and joined tables
// are pipe separated because map and layer names often contain commas.
package csvreport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// Pipe separates attribute and joined columns
const Pipe = '|'

// Store implements ports.ReportStore
type Store struct{}

var _ ports.ReportStore = (*Store)(nil)

// NewStore creates a report store
func NewStore() *Store {
	return &Store{}
}

// WriteCatalog overwrites path with the metadata table
func (s *Store) WriteCatalog(path string, records []domain.MetadataRecord) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	enc := csvutil.NewEncoder(w)
	if err := enc.EncodeHeader(domain.MetadataRecord{}); err != nil {
		return fmt.Errorf("failed to encode catalog header: %w", err)
	}
	enc.AutoHeader = false
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode catalog record %d: %w", r.ID, err)
		}
	}

	return flush(w, &buf, path)
}

// ReadCatalog decodes a metadata table written by WriteCatalog
func (s *Store) ReadCatalog(path string) ([]domain.MetadataRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	var records []domain.MetadataRecord
	if err := dec.Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return records, nil
}

// WriteAttributes overwrites path with ID|<COLUMN> rows of one kind
func (s *Store) WriteAttributes(path string, kind domain.AttributeKind, rows []domain.AttributeRow) error {
	var buf bytes.Buffer
	w := pipeWriter(&buf)
	if err := w.Write([]string{"ID", kind.Column()}); err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}

	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = false
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode %s row %d: %w", kind, r.ID, err)
		}
	}

	return flush(w, &buf, path)
}

// ReadAttributes decodes an attribute table whatever its name column is called
func (s *Store) ReadAttributes(path string) ([]domain.AttributeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open attributes: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = Pipe

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes header: %w", err)
	}
	if len(header) != 2 || header[0] != "ID" {
		return nil, fmt.Errorf("unexpected attributes header in %s: %v", path, header)
	}

	dec, err := csvutil.NewDecoder(r, "ID", "NAME")
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes: %w", err)
	}

	var rows []domain.AttributeRow
	if err := dec.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}
	return rows, nil
}

// WriteJoined overwrites path with attribute columns followed by metadata
// columns, key first
func (s *Store) WriteJoined(path string, kind domain.AttributeKind, rows []domain.JoinedRow) error {
	var buf bytes.Buffer
	w := pipeWriter(&buf)
	header := []string{"ID", kind.Column(), "FILE_NAME", "FILE_PATH", "LAST_MODIFIED"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write joined header: %w", err)
	}

	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = false
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode joined row %d: %w", r.ID, err)
		}
	}

	return flush(w, &buf, path)
}

func pipeWriter(buf *bytes.Buffer) *csv.Writer {
	w := csv.NewWriter(buf)
	w.Comma = Pipe
	return w
}

// flush finishes w and replaces path with the buffered table
func flush(w *csv.Writer, buf *bytes.Buffer, path string) error {
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

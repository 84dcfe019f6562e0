package domain

import (
	"sort"
	"time"
)

// TimestampLayout is how crawl timestamps are written (UTC)
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a UTC time that renders as TimestampLayout.
// The zero value renders as an empty cell.
type Timestamp struct {
	time.Time
}

// NewTimestamp converts t to UTC with second precision
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

func (t Timestamp) MarshalText() ([]byte, error) {
	if t.IsZero() {
		return []byte{}, nil
	}
	return []byte(t.UTC().Format(TimestampLayout)), nil
}

func (t *Timestamp) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(TimestampLayout, string(b), time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// String returns the rendered timestamp
func (t Timestamp) String() string {
	b, _ := t.MarshalText()
	return string(b)
}

// FileInfo is what a crawl observes about one file
type FileInfo struct {
	Name    string
	Path    string // absolute
	ModTime time.Time
}

// MetadataRecord is one row of Catalog.csv
type MetadataRecord struct {
	ID           int       `csv:"ID"`
	FileName     string    `csv:"FILE_NAME"`
	FilePath     string    `csv:"FILE_PATH"`
	LastModified Timestamp `csv:"LAST_MODIFIED"`
}

// BuildCatalog sorts files by path and assigns 1-based IDs.
// Sorting makes IDs reproducible for an unchanged tree.
func BuildCatalog(files []FileInfo) []MetadataRecord {
	sorted := make([]FileInfo, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	records := make([]MetadataRecord, len(sorted))
	for i, f := range sorted {
		records[i] = MetadataRecord{
			ID:           i + 1,
			FileName:     f.Name,
			FilePath:     f.Path,
			LastModified: NewTimestamp(f.ModTime),
		}
	}
	return records
}

// StoredFile is a crawled file tracked across crawls with a stable GUID
type StoredFile struct {
	GUID      string
	Path      string
	Name      string
	Mtime     int64
	FirstSeen int64
	LastSeen  int64
}

// SyncStats holds statistics from a metadata store sync
type SyncStats struct {
	FilesAdded   int
	FilesUpdated int
	FilesDeleted int
	FilesScanned int
	Duration     time.Duration
}

package ports

import (
	"context"

	"pyxidust/internal/domain"
)

// ReportStore reads and writes the tabular files of a crawl
type ReportStore interface {
	WriteCatalog(path string, records []domain.MetadataRecord) error
	ReadCatalog(path string) ([]domain.MetadataRecord, error)
	WriteAttributes(path string, kind domain.AttributeKind, rows []domain.AttributeRow) error
	ReadAttributes(path string) ([]domain.AttributeRow, error)
	WriteJoined(path string, kind domain.AttributeKind, rows []domain.JoinedRow) error
}

// MetadataStore keeps crawled files with stable GUIDs across crawls
type MetadataStore interface {
	Sync(ctx context.Context, root string, files []domain.FileInfo) (*domain.SyncStats, error)
	Lookup(ctx context.Context, path string) (*domain.StoredFile, error)
	Search(ctx context.Context, query string) ([]domain.StoredFile, error)
}

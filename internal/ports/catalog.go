package ports

import (
	"context"

	"pyxidust/internal/domain"
)

// CatalogLog is the append-only provenance log of created projects
type CatalogLog interface {
	Append(ctx context.Context, entry domain.CatalogEntry) error
	List(ctx context.Context) ([]domain.CatalogEntry, error)
	Path() string
}

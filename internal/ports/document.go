package ports

import "pyxidust/internal/domain"

// DocumentEditor rewrites string values inside an artifact
type DocumentEditor interface {
	// Rewrite applies subs in place and returns how many values changed
	Rewrite(path string, subs []domain.Substitution) (int, error)
}

// ProjectInspector reads maps, layers and layouts out of an artifact
type ProjectInspector interface {
	Inspect(path string) (*domain.ProjectContents, error)
}

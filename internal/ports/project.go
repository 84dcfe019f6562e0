package ports

import "pyxidust/internal/domain"

// ProjectRepository defines the filesystem operations on project folders
type ProjectRepository interface {
	// Templates
	TemplatePath(template string) (string, error)
	LayoutPath(template string) (string, error)

	// Project folders
	CreateProject(layout domain.ProjectLayout, templatePath string) (folder, artifact string, err error)
	ListProjects() ([]domain.ProjectFolder, error)
	ArchiveProject(folder domain.ProjectFolder) (string, error)
	RemoveProject(folder string) error
	CleanProject(dir string, files, folders []string) (*domain.CleanStats, error)

	// Artifacts inside a project folder
	ListArtifacts(dir, ext string) ([]string, error)
	CopyArtifact(src, dst string) error
	RemoveArtifact(path string) error

	// Plain files
	Crawl(dir, ext string) ([]domain.FileInfo, error)
	ListFiles(dir, ext string) ([]string, error)
	RenameFile(dir, from, to string) error
}

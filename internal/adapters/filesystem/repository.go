package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// Layout locates the folders a repository works in
type Layout struct {
	Projects  string // one folder per project
	Archive   string // destination of archived projects
	Templates string // project templates, e.g. P_11x17.aprx
	Layouts   string // layout templates added to existing projects
	Extension string // artifact extension, e.g. .aprx
}

// Repository implements ports.ProjectRepository using the filesystem
type Repository struct {
	layout Layout
}

var _ ports.ProjectRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository(layout Layout) *Repository {
	layout.Projects = expandHome(layout.Projects)
	layout.Archive = expandHome(layout.Archive)
	layout.Templates = expandHome(layout.Templates)
	layout.Layouts = expandHome(layout.Layouts)
	if layout.Extension == "" {
		layout.Extension = domain.DefaultExtension
	}
	return &Repository{layout: layout}
}

// Layout returns the folders the repository uses
func (r *Repository) Layout() Layout {
	return r.layout
}

// TemplatePath returns the project template file for a template size
func (r *Repository) TemplatePath(template string) (string, error) {
	return r.templateIn(r.layout.Templates, template)
}

// LayoutPath returns the layout template file for a template size
func (r *Repository) LayoutPath(template string) (string, error) {
	return r.templateIn(r.layout.Layouts, template)
}

func (r *Repository) templateIn(dir, template string) (string, error) {
	path := filepath.Join(dir, template+r.layout.Extension)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat template: %w", err)
	}
	return path, nil
}

// CreateProject creates the project folder and copies the template into it
// as the first artifact. The folder is removed again if the copy fails.
func (r *Repository) CreateProject(layout domain.ProjectLayout, templatePath string) (string, string, error) {
	folder := filepath.Join(r.layout.Projects, layout.FolderName)
	if _, err := os.Stat(folder); err == nil {
		return "", "", fmt.Errorf("project folder already exists: %s", folder)
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create project folder: %w", err)
	}

	artifact := filepath.Join(folder, layout.ArtifactName)
	if err := copyFile(templatePath, artifact); err != nil {
		os.RemoveAll(folder)
		return "", "", fmt.Errorf("failed to copy template: %w", err)
	}

	return folder, artifact, nil
}

// ListProjects returns the folders under the projects root sorted by name
func (r *Repository) ListProjects() ([]domain.ProjectFolder, error) {
	entries, err := os.ReadDir(r.layout.Projects)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	var folders []domain.ProjectFolder
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		folders = append(folders, domain.ProjectFolder{
			Name: entry.Name(),
			Path: filepath.Join(r.layout.Projects, entry.Name()),
		})
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})

	return folders, nil
}

// ArchiveProject moves a project folder into the archive and returns its
// new path
func (r *Repository) ArchiveProject(folder domain.ProjectFolder) (string, error) {
	if err := os.MkdirAll(r.layout.Archive, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	dst := filepath.Join(r.layout.Archive, folder.Name)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("archive already holds %s", folder.Name)
	}

	if err := os.Rename(folder.Path, dst); err != nil {
		return "", fmt.Errorf("failed to move project: %w", err)
	}
	return dst, nil
}

// RemoveProject deletes a project folder. Only folders directly under the
// projects root can be removed.
func (r *Repository) RemoveProject(folder string) error {
	if err := r.checkInProjects(folder); err != nil {
		return err
	}
	return os.RemoveAll(folder)
}

// CleanProject removes files and folders whose names start or end with one
// of the given rules, anywhere below dir
func (r *Repository) CleanProject(dir string, files, folders []string) (*domain.CleanStats, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a folder: %s", dir)
	}

	stats := &domain.CleanStats{}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if !domain.MatchesCleanRule(d.Name(), folders) {
				return nil
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
			stats.FoldersRemoved++
			return filepath.SkipDir
		}

		if domain.MatchesCleanRule(d.Name(), files) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
			stats.FilesRemoved++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// ListArtifacts returns the names of files in dir ending in ext, sorted
func (r *Repository) ListArtifacts(dir, ext string) ([]string, error) {
	return r.ListFiles(dir, ext)
}

// CopyArtifact copies src to dst. dst must not exist.
func (r *Repository) CopyArtifact(src, dst string) error {
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy artifact: %w", err)
	}
	return nil
}

// RemoveArtifact deletes a single artifact file
func (r *Repository) RemoveArtifact(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}

// Crawl walks dir and returns every file ending in ext with its absolute path
// and modification time. The suffix match is case-sensitive and covers every
// folder under dir, hidden ones included.
func (r *Repository) Crawl(dir, ext string) ([]domain.FileInfo, error) {
	root, err := filepath.Abs(expandHome(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var files []domain.FileInfo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExt(d.Name(), ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		files = append(files, domain.FileInfo{
			Name:    d.Name(),
			Path:    path,
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to crawl %s: %w", root, err)
	}
	return files, nil
}

// ListFiles returns the names of regular files directly in dir ending in ext
func (r *Repository) ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(expandHome(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !hasExt(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// RenameFile renames a file inside dir without replacing an existing one
func (r *Repository) RenameFile(dir, from, to string) error {
	dir = expandHome(dir)
	dst := filepath.Join(dir, to)
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("cannot rename %s: %s already exists", from, to)
	}
	if err := os.Rename(filepath.Join(dir, from), dst); err != nil {
		return fmt.Errorf("failed to rename %s: %w", from, err)
	}
	return nil
}

func (r *Repository) checkInProjects(folder string) error {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", folder, err)
	}
	root, err := filepath.Abs(r.layout.Projects)
	if err != nil {
		return fmt.Errorf("failed to resolve projects root: %w", err)
	}
	if filepath.Dir(abs) != root {
		return fmt.Errorf("%s is not a project folder under %s", folder, root)
	}
	return nil
}

// copyFile copies src to a new file dst, removing dst on failure
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

func hasExt(name, ext string) bool {
	if ext == "" {
		return filepath.Ext(name) != ""
	}
	return strings.HasSuffix(name, ext)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

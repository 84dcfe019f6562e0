package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"pyxidust/internal/domain"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// fakeCounter hands out bases 20250001, 20250002, ...
type fakeCounter struct {
	year   int
	next   int
	format string
	calls  int
	err    error
}

func newFakeCounter(next int) *fakeCounter {
	return &fakeCounter{year: 2025, next: next, format: "%d%04d"}
}

func (c *fakeCounter) NextBase(ctx context.Context) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	base := fmt.Sprintf(c.format, c.year, c.next)
	c.next++
	return base, nil
}

type fakeSequence struct {
	next int
}

func (s *fakeSequence) Next(ctx context.Context) (int, error) {
	s.next++
	return s.next, nil
}

type fakeCatalog struct {
	entries []domain.CatalogEntry
	err     error
}

func (c *fakeCatalog) Append(ctx context.Context, entry domain.CatalogEntry) error {
	if c.err != nil {
		return c.err
	}
	c.entries = append(c.entries, entry)
	return nil
}

func (c *fakeCatalog) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	return slices.Clone(c.entries), c.err
}

func (c *fakeCatalog) Path() string {
	return "/data/misc/catalog.csv"
}

type rewriteCall struct {
	path string
	subs []domain.Substitution
}

type fakeEditor struct {
	calls []rewriteCall
	err   error
}

func (e *fakeEditor) Rewrite(path string, subs []domain.Substitution) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	e.calls = append(e.calls, rewriteCall{path: path, subs: subs})
	return len(subs), nil
}

type fakeInspector struct {
	contents map[string]*domain.ProjectContents
}

func (i *fakeInspector) Inspect(path string) (*domain.ProjectContents, error) {
	pc, ok := i.contents[path]
	if !ok {
		return nil, errors.New("not a project document")
	}
	return pc, nil
}

// fakeRepo keeps folders and files in memory. Paths are joined with
// filepath.Join so they compare with what commands build.
type fakeRepo struct {
	templates map[string]string
	layouts   map[string]string
	projects  []domain.ProjectFolder
	files     map[string][]string // dir -> names
	crawl     []domain.FileInfo
	created   []domain.ProjectLayout
	archived  []string
	copies    [][2]string
	removed   []string
	renames   [][2]string
	cleaned   string
	createErr error
	copyErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		templates: map[string]string{},
		layouts:   map[string]string{},
		files:     map[string][]string{},
	}
}

func (r *fakeRepo) TemplatePath(template string) (string, error) {
	if p, ok := r.templates[template]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, template)
}

func (r *fakeRepo) LayoutPath(template string) (string, error) {
	if p, ok := r.layouts[template]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, template)
}

func (r *fakeRepo) CreateProject(layout domain.ProjectLayout, templatePath string) (string, string, error) {
	if r.createErr != nil {
		return "", "", r.createErr
	}
	r.created = append(r.created, layout)
	folder := filepath.Join("/projects", layout.FolderName)
	return folder, filepath.Join(folder, layout.ArtifactName), nil
}

func (r *fakeRepo) ListProjects() ([]domain.ProjectFolder, error) {
	return slices.Clone(r.projects), nil
}

func (r *fakeRepo) ArchiveProject(folder domain.ProjectFolder) (string, error) {
	dst := filepath.Join("/archive", folder.Name)
	r.archived = append(r.archived, folder.Name)
	return dst, nil
}

func (r *fakeRepo) RemoveProject(folder string) error {
	return nil
}

func (r *fakeRepo) CleanProject(dir string, files, folders []string) (*domain.CleanStats, error) {
	r.cleaned = dir
	return &domain.CleanStats{FilesRemoved: 2, FoldersRemoved: 1}, nil
}

func (r *fakeRepo) ListArtifacts(dir, ext string) ([]string, error) {
	return r.ListFiles(dir, ext)
}

func (r *fakeRepo) CopyArtifact(src, dst string) error {
	if r.copyErr != nil {
		return r.copyErr
	}
	r.copies = append(r.copies, [2]string{src, dst})
	return nil
}

func (r *fakeRepo) RemoveArtifact(path string) error {
	r.removed = append(r.removed, path)
	return nil
}

func (r *fakeRepo) Crawl(dir, ext string) ([]domain.FileInfo, error) {
	return slices.Clone(r.crawl), nil
}

func (r *fakeRepo) ListFiles(dir, ext string) ([]string, error) {
	names, ok := r.files[dir]
	if !ok {
		return nil, fmt.Errorf("failed to read %s", dir)
	}
	var out []string
	for _, n := range names {
		if ext == "" || strings.HasSuffix(n, ext) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (r *fakeRepo) RenameFile(dir, from, to string) error {
	r.renames = append(r.renames, [2]string{from, to})
	return nil
}

// fakeReports keeps written tables in memory by path
type fakeReports struct {
	catalogs map[string][]domain.MetadataRecord
	attrs    map[string][]domain.AttributeRow
	joined   map[string][]domain.JoinedRow
}

func newFakeReports() *fakeReports {
	return &fakeReports{
		catalogs: map[string][]domain.MetadataRecord{},
		attrs:    map[string][]domain.AttributeRow{},
		joined:   map[string][]domain.JoinedRow{},
	}
}

func (s *fakeReports) WriteCatalog(path string, records []domain.MetadataRecord) error {
	s.catalogs[path] = records
	return nil
}

func (s *fakeReports) ReadCatalog(path string) ([]domain.MetadataRecord, error) {
	records, ok := s.catalogs[path]
	if !ok {
		return nil, fmt.Errorf("failed to open catalog: %s", path)
	}
	return records, nil
}

func (s *fakeReports) WriteAttributes(path string, kind domain.AttributeKind, rows []domain.AttributeRow) error {
	s.attrs[path] = rows
	return nil
}

func (s *fakeReports) ReadAttributes(path string) ([]domain.AttributeRow, error) {
	rows, ok := s.attrs[path]
	if !ok {
		return nil, fmt.Errorf("failed to open attributes: %s", path)
	}
	return rows, nil
}

func (s *fakeReports) WriteJoined(path string, kind domain.AttributeKind, rows []domain.JoinedRow) error {
	s.joined[path] = rows
	return nil
}

type fakeStore struct {
	synced []domain.FileInfo
	found  []domain.StoredFile
	query  string
}

func (s *fakeStore) Sync(ctx context.Context, root string, files []domain.FileInfo) (*domain.SyncStats, error) {
	s.synced = files
	return &domain.SyncStats{FilesAdded: len(files), FilesScanned: len(files)}, nil
}

func (s *fakeStore) Lookup(ctx context.Context, path string) (*domain.StoredFile, error) {
	return nil, nil
}

func (s *fakeStore) Search(ctx context.Context, query string) ([]domain.StoredFile, error) {
	s.query = query
	return s.found, nil
}

type spyRecorder struct {
	minted    int
	projects  int
	artifacts map[string]int
	crawled   int
	joined    map[string]int
	dropped   map[string]int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{
		artifacts: map[string]int{},
		joined:    map[string]int{},
		dropped:   map[string]int{},
	}
}

func (r *spyRecorder) RecordMinted(n int)                 { r.minted += n }
func (r *spyRecorder) RecordProject()                     { r.projects++ }
func (r *spyRecorder) RecordArtifacts(mode string, n int) { r.artifacts[mode] += n }
func (r *spyRecorder) RecordCrawl(n int)                  { r.crawled += n }
func (r *spyRecorder) RecordJoin(kind string, joined, dropped int) {
	r.joined[kind] += joined
	r.dropped[kind] += dropped
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	// Keep a developer's .env out of the test
	t.Chdir(t.TempDir())

	root := t.TempDir()
	t.Setenv(EnvRoot, root)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	return root
}

func TestLoad_Defaults(t *testing.T) {
	root := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "projects"), cfg.Paths.Projects)
	assert.Equal(t, filepath.Join(root, "misc", "serials.txt"), cfg.Paths.Counter)
	assert.Equal(t, filepath.Join(root, "misc", "catalog.csv"), cfg.Paths.Catalog)
	assert.Equal(t, filepath.Join(root, "templates", "layouts"), cfg.Paths.Layouts)
	assert.Equal(t, ".aprx", cfg.Extension)
	assert.Contains(t, cfg.TemplateSizes, "P_11x17")
	assert.Equal(t, []string{".aprx", ".temp", ".tmp"}, cfg.Clean.Files)
	assert.Empty(t, cfg.Paths.IndexDB)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileUnderRoot(t *testing.T) {
	root := isolate(t)

	content := `
paths:
  projects: /srv/gis/projects
  catalog: records/catalog.csv
template_sizes: [P_08x11]
log:
  level: debug
metrics_textfile: metrics/pyxidust.prom
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte(content), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/gis/projects", cfg.Paths.Projects)
	assert.Equal(t, filepath.Join(root, "records", "catalog.csv"), cfg.Paths.Catalog)
	assert.Equal(t, filepath.Join(root, "archive"), cfg.Paths.Archive)
	assert.Equal(t, []string{"P_08x11"}, cfg.TemplateSizes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(root, "metrics", "pyxidust.prom"), cfg.MetricsTextfile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	other := t.TempDir()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: /ignored\nlog:\n  level: error\n"), 0644))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvRoot, other)
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, other, cfg.Root)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, filepath.Join(other, "projects"), cfg.Paths.Projects)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	fromEnvFile := t.TempDir()

	// isolate already moved into an empty working directory
	require.NoError(t, os.WriteFile(".env", []byte("PYXIDUST_LOG_LEVEL=debug\n"), 0644))
	os.Unsetenv(EnvLogLevel)
	t.Cleanup(func() { os.Unsetenv(EnvLogLevel) })
	t.Setenv(EnvRoot, fromEnvFile)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, fromEnvFile, cfg.Root)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "paths: [unclosed"},
		{"extension without dot", "extension: aprx"},
		{"no template sizes", "template_sizes: []"},
		{"no workers", "index:\n  workers: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRootPath(t *testing.T) {
	t.Setenv(EnvRoot, "")
	assert.Equal(t, DefaultRoot, RootPath())

	t.Setenv(EnvRoot, "/srv/gis")
	assert.Equal(t, "/srv/gis", RootPath())
}

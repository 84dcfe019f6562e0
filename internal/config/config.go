// Package config loads pyxidust settings from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pyxidust/internal/domain"
)

const DefaultRoot = "~/pyxidust"

// Environment variables that override the file
const (
	EnvRoot     = "PYXIDUST_ROOT"
	EnvConfig   = "PYXIDUST_CONFIG"
	EnvLogLevel = "PYXIDUST_LOG_LEVEL"
)

// PathsConfig locates files and folders. Relative paths are resolved
// against the root.
type PathsConfig struct {
	Projects      string `yaml:"projects"`
	Archive       string `yaml:"archive"`
	Templates     string `yaml:"templates"`
	Layouts       string `yaml:"layouts"`
	Counter       string `yaml:"counter"`
	Catalog       string `yaml:"catalog"`
	RenameCounter string `yaml:"rename_counter"`
	IndexDB       string `yaml:"index_db"`
}

// CleanConfig lists what a project clean removes
type CleanConfig struct {
	Files   []string `yaml:"files"`
	Folders []string `yaml:"folders"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// IndexConfig tunes create-index
type IndexConfig struct {
	Workers int `yaml:"workers"`
}

type Config struct {
	Root            string      `yaml:"root"`
	Paths           PathsConfig `yaml:"paths"`
	Extension       string      `yaml:"extension"`
	TemplateSizes   []string    `yaml:"template_sizes"`
	Clean           CleanConfig `yaml:"clean"`
	Log             LogConfig   `yaml:"log"`
	Index           IndexConfig `yaml:"index"`
	Editor          string      `yaml:"editor"`
	MetricsTextfile string      `yaml:"metrics_textfile"`
}

// Default returns the settings used when no file is present
func Default() *Config {
	return &Config{
		Root: DefaultRoot,
		Paths: PathsConfig{
			Projects:      "projects",
			Archive:       "archive",
			Templates:     "templates",
			Layouts:       filepath.Join("templates", "layouts"),
			Counter:       filepath.Join("misc", "serials.txt"),
			Catalog:       filepath.Join("misc", "catalog.csv"),
			RenameCounter: filepath.Join("misc", "rename.txt"),
		},
		Extension:     domain.DefaultExtension,
		TemplateSizes: append([]string(nil), domain.DefaultTemplateSizes...),
		Clean: CleanConfig{
			Files:   append([]string(nil), domain.DefaultCleanFiles...),
			Folders: append([]string(nil), domain.DefaultCleanFolders...),
		},
		Log:   LogConfig{Level: "info"},
		Index: IndexConfig{Workers: 4},
	}
}

// RootPath returns the root from PYXIDUST_ROOT, falling back to DefaultRoot
func RootPath() string {
	if env := os.Getenv(EnvRoot); env != "" {
		return env
	}
	return DefaultRoot
}

// Load reads settings. path may be empty, in which case PYXIDUST_CONFIG or
// config.yaml under the root is used if present. A .env file in the working
// directory is loaded first and never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	cfg.Root = RootPath()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path = env
			explicit = true
		} else {
			path = filepath.Join(expandHome(cfg.Root), "config.yaml")
		}
	}

	data, err := os.ReadFile(expandHome(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Environment wins over the file
	if env := os.Getenv(EnvRoot); env != "" {
		cfg.Root = env
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		cfg.Log.Level = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolve()
	return cfg, nil
}

// Validate checks settings that would make every command fail
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("config: root must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("config: extension must start with a dot: %q", c.Extension)
	}
	if len(c.TemplateSizes) == 0 {
		return fmt.Errorf("config: template_sizes must not be empty")
	}
	if c.Index.Workers < 1 {
		return fmt.Errorf("config: index.workers must be at least 1")
	}
	return nil
}

// resolve makes every path absolute against the root
func (c *Config) resolve() {
	c.Root = expandHome(c.Root)
	p := &c.Paths
	for _, field := range []*string{
		&p.Projects, &p.Archive, &p.Templates, &p.Layouts,
		&p.Counter, &p.Catalog, &p.RenameCounter,
	} {
		*field = c.abs(*field)
	}
	if p.IndexDB != "" {
		p.IndexDB = c.abs(p.IndexDB)
	}
	if c.MetricsTextfile != "" {
		c.MetricsTextfile = c.abs(c.MetricsTextfile)
	}
}

func (c *Config) abs(path string) string {
	path = expandHome(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

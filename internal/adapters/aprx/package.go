// Package aprx reads and rewrites project artifacts.
//
// An artifact is either a zip package of JSON documents, as ArcGIS Pro writes
// .aprx files, or a single JSON document. Entries that are not JSON are
// carried through untouched.
package aprx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var zipMagic = []byte("PK\x03\x04")

// entry is one document inside an artifact
type entry struct {
	name     string
	data     []byte
	method   uint16
	modified time.Time
}

func (e entry) isJSON() bool {
	if strings.HasSuffix(strings.ToLower(e.name), ".json") {
		return true
	}
	trimmed := bytes.TrimSpace(e.data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// artifact is the decoded content of a file on disk
type artifact struct {
	path    string
	zipped  bool
	entries []entry
}

func readArtifact(path string) (*artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	if !bytes.HasPrefix(data, zipMagic) {
		return &artifact{
			path:    path,
			entries: []entry{{name: filepath.Base(path), data: data}},
		}, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact package %s: %w", path, err)
	}

	a := &artifact{path: path, zipped: true}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s in %s: %w", f.Name, path, err)
		}
		a.entries = append(a.entries, entry{
			name:     f.Name,
			data:     content,
			method:   f.Method,
			modified: f.Modified,
		})
	}
	return a, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// write replaces the artifact on disk through a temp file and rename
func (a *artifact) write() error {
	tmp, err := os.CreateTemp(filepath.Dir(a.path), ".aprx-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpPath := tmp.Name()

	if err := a.encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if info, err := os.Stat(a.path); err == nil {
		os.Chmod(tmpPath, info.Mode().Perm())
	}
	if err := os.Rename(tmpPath, a.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace artifact: %w", err)
	}
	return nil
}

func (a *artifact) encode(w io.Writer) error {
	if !a.zipped {
		_, err := w.Write(a.entries[0].data)
		if err != nil {
			return fmt.Errorf("failed to write artifact: %w", err)
		}
		return nil
	}

	zw := zip.NewWriter(w)
	for _, e := range a.entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   e.method,
			Modified: e.modified,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish artifact package: %w", err)
	}
	return nil
}

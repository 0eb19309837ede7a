// Package adapter contains infrastructure adapters for the avrsync CLI: the
// local repository filesystem and the Avrae HTTP API.
package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "avrsync.dev/pkg/avrsync/internal/model"
)

// CollectionMapping is one entry of the collections config file: a collection
// id to fetch plus a free-form label. Only the id drives behavior.
type CollectionMapping struct {
	ID    string
	Label string
}

// GvarMapping is one entry of the gvars config file: a gvar key and the
// repo-relative path holding its value. The mapping is a deliberate, partial
// subset of the remote gvars.
type GvarMapping struct {
	Key  string
	Path string
}

// RepoFS abstracts the filesystem operations the comparison engine and the
// workflow rely on, so their logic can be tested without touching the disk.
type RepoFS interface {
	// Exists reports whether a file or directory is present at path.
	Exists(path m.Path) bool

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// MkdirAll creates a directory along with any missing parents.
	MkdirAll(path m.Path, perm os.FileMode) error

	// FindFiles recursively collects every file under root whose name ends
	// in ext, in walk order. A missing root yields no files, not an error.
	FindFiles(root m.Path, ext string) ([]m.Path, error)

	// LoadCollectionsConfig reads the collections mapping file, preserving
	// document order.
	LoadCollectionsConfig(path m.Path) ([]CollectionMapping, error)

	// LoadGvarsConfig reads the gvars mapping file, preserving document
	// order.
	LoadGvarsConfig(path m.Path) ([]GvarMapping, error)
}

// LocalRepoFS is the concrete RepoFS backed by the local filesystem.
type LocalRepoFS struct{}

// NewLocalRepoFS constructs a LocalRepoFS ready to be wired into the
// workflow.
func NewLocalRepoFS() *LocalRepoFS {
	return &LocalRepoFS{}
}

// Exists reports whether a file or directory is present at path.
func (a *LocalRepoFS) Exists(path m.Path) bool {
	_, err := os.Stat(string(path))

	return err == nil
}

// ReadFile loads file contents from disk.
func (a *LocalRepoFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalRepoFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// MkdirAll creates a directory along with any missing parents.
func (a *LocalRepoFS) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// FindFiles collects files ending in ext under root, at any nesting depth.
func (a *LocalRepoFS) FindFiles(root m.Path, ext string) ([]m.Path, error) {
	if !a.Exists(root) {
		return nil, nil
	}

	var found []m.Path

	err := filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			return nil
		}

		found = append(found, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// LoadCollectionsConfig reads a YAML mapping of collection id to label.
func (a *LocalRepoFS) LoadCollectionsConfig(path m.Path) ([]CollectionMapping, error) {
	pairs, err := a.loadOrderedMapping(path)
	if err != nil {
		return nil, fmt.Errorf("load collections config %s: %w", path, err)
	}

	mappings := make([]CollectionMapping, 0, len(pairs))
	for _, pair := range pairs {
		mappings = append(mappings, CollectionMapping{ID: pair[0], Label: pair[1]})
	}

	return mappings, nil
}

// LoadGvarsConfig reads a YAML mapping of gvar key to repo-relative path.
func (a *LocalRepoFS) LoadGvarsConfig(path m.Path) ([]GvarMapping, error) {
	pairs, err := a.loadOrderedMapping(path)
	if err != nil {
		return nil, fmt.Errorf("load gvars config %s: %w", path, err)
	}

	mappings := make([]GvarMapping, 0, len(pairs))
	for _, pair := range pairs {
		mappings = append(mappings, GvarMapping{Key: pair[0], Path: pair[1]})
	}

	return mappings, nil
}

// loadOrderedMapping decodes a flat YAML mapping into key/value pairs in
// document order. A plain map would lose the order the comparison contract
// depends on.
func (a *LocalRepoFS) loadOrderedMapping(path m.Path) ([][2]string, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	if len(document.Content) == 0 {
		return nil, nil
	}

	mapping := document.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at the top level, got %v", mapping.Kind)
	}

	pairs := make([][2]string, 0, len(mapping.Content)/2)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value := mapping.Content[i+1]
		pairs = append(pairs, [2]string{key.Value, value.Value})
	}

	return pairs, nil
}

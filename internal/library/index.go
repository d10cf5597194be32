package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Index holds the metadata of every template in a directory.
// It is safe for concurrent use.
type Index struct {
	mu        sync.RWMutex
	templates map[string]*Metadata
	dir       string
}

// NewIndex loads all template metadata from dir, creating it if needed.
// Directories without a readable TEMPLATE.md are skipped.
func NewIndex(dir string) (*Index, error) {
	idx := &Index{
		templates: make(map[string]*Metadata),
		dir:       dir,
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return idx, nil // Return empty index if can't read
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name(), FileName)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		meta, err := LoadMetadata(path)
		if err != nil {
			continue
		}

		// Use directory name as fallback if no name in frontmatter
		if meta.Name == "" {
			meta.Name = entry.Name()
		}

		idx.templates[meta.Name] = meta
	}

	return idx, nil
}

// Get returns metadata by name, ignoring case.
func (idx *Index) Get(name string) *Metadata {
	if idx == nil {
		return nil
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if meta, ok := idx.templates[name]; ok {
		return meta
	}
	for n, meta := range idx.templates {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return meta
		}
	}
	return nil
}

// All returns all metadata sorted by name.
func (idx *Index) All() []*Metadata {
	if idx == nil {
		return nil
	}
	idx.mu.RLock()
	result := make([]*Metadata, 0, len(idx.templates))
	for _, meta := range idx.templates {
		result = append(result, meta)
	}
	idx.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// List returns all template names, sorted.
func (idx *Index) List() []string {
	if idx == nil {
		return nil
	}
	idx.mu.RLock()
	result := make([]string, 0, len(idx.templates))
	for name := range idx.templates {
		result = append(result, name)
	}
	idx.mu.RUnlock()

	sort.Strings(result)
	return result
}

// Add registers meta, replacing any entry with the same name.
func (idx *Index) Add(meta *Metadata) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.templates[meta.Name] = meta
}

// Dir returns the templates directory path
func (idx *Index) Dir() string {
	return idx.dir
}

// Count returns the number of loaded templates
func (idx *Index) Count() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.templates)
}

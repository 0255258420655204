// Package content is the fixed registry of portfolio sections.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/mmcdole/retrofolio/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed sections.yaml
var embeddedSections []byte

// registryFile is the on-disk shape of sections.yaml
type registryFile struct {
	Sections []domain.Section `yaml:"sections"`
}

// Registry maps section ids to their content. It is read-only after creation.
type Registry struct {
	sections []domain.Section
	byID     map[string]int
}

// Load reads the registry from path, or the embedded sections when path is empty
func Load(path string) (*Registry, error) {
	if path == "" {
		return Parse(embeddedSections)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded registry
func Default() (*Registry, error) {
	return Parse(embeddedSections)
}

// Parse decodes a sections YAML document
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sections: %w", err)
	}
	return New(file.Sections)
}

// New validates sections and builds a registry. Order is preserved.
func New(sections []domain.Section) (*Registry, error) {
	r := &Registry{
		sections: make([]domain.Section, 0, len(sections)),
		byID:     make(map[string]int, len(sections)),
	}

	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: section %d has no id", domain.ErrInvalidRegistry, i)
		}
		if s.Filename == "" {
			return nil, fmt.Errorf("%w: section %q has no filename", domain.ErrInvalidRegistry, s.ID)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate section id %q", domain.ErrInvalidRegistry, s.ID)
		}
		r.byID[s.ID] = len(r.sections)
		r.sections = append(r.sections, s)
	}

	return r, nil
}

// Get looks up a section by id
func (r *Registry) Get(id string) (domain.Section, bool) {
	i, ok := r.byID[id]
	if !ok {
		return domain.Section{}, false
	}
	return r.sections[i], true
}

// All returns the sections in nav order
func (r *Registry) All() []domain.Section {
	return append([]domain.Section(nil), r.sections...)
}

// IDs returns the section ids in nav order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.sections))
	for i, s := range r.sections {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of sections
func (r *Registry) Len() int {
	return len(r.sections)
}

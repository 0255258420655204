package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"home", "projects", "services", "about", "contact"}, r.IDs())
	assert.Equal(t, 5, r.Len())

	home, ok := r.Get("home")
	require.True(t, ok)
	assert.Equal(t, "index.html", home.Filename)
	assert.Contains(t, home.Source, "<section class=\"hero\">")
	assert.NotEmpty(t, home.Markup)

	for _, s := range r.All() {
		assert.NotEmpty(t, ParseBlocks(s.Markup), "section %s has no build targets", s.ID)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	_, ok := r.Get("blog")
	assert.False(t, ok)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		sections []domain.Section
		wantErr  bool
	}{
		{"empty registry", nil, false},
		{"valid", []domain.Section{{ID: "a", Filename: "a.txt"}, {ID: "b", Filename: "b.txt"}}, false},
		{"missing id", []domain.Section{{Filename: "a.txt"}}, true},
		{"missing filename", []domain.Section{{ID: "a"}}, true},
		{"duplicate id", []domain.Section{{ID: "a", Filename: "a.txt"}, {ID: "a", Filename: "b.txt"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sections)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRegistry)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	r, err := New([]domain.Section{{ID: "a", Filename: "a.txt"}})
	require.NoError(t, err)

	all := r.All()
	all[0].Filename = "changed"

	s, _ := r.Get("a")
	assert.Equal(t, "a.txt", s.Filename)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sections.yaml")
	data := `sections:
  - id: only
    filename: only.go
    source: "package main"
    markup: "# Only"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, r.IDs())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("sections: [this is: not valid"))
	assert.Error(t, err)
}

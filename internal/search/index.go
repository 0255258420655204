// Package search ranks sections for the command palette.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/retrofolio/internal/domain"
)

// Result is a ranked palette match
type Result struct {
	Section        domain.Section
	Key            string // The string matched against
	MatchedIndexes []int  // Rune positions in Key, for highlighting
	Score          int    // Higher is better
}

// Index implements sahilm/fuzzy.Source over section id, label and filename
type Index struct {
	sections []domain.Section
	keys     []string // Pre-computed lowercase keys
}

var _ fuzzy.Source = (*Index)(nil)

// NewIndex indexes the registry's sections in nav order
func NewIndex(registry domain.Registry) *Index {
	idx := &Index{}
	for _, id := range registry.IDs() {
		section, ok := registry.Get(id)
		if !ok {
			continue
		}
		idx.sections = append(idx.sections, section)
		idx.keys = append(idx.keys, Key(section))
	}
	return idx
}

// Key is the searchable text for a section
func Key(s domain.Section) string {
	return strings.ToLower(s.ID + " " + s.DisplayLabel() + " " + s.Filename)
}

// String returns the lowercase key at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.keys[i] }

// Len returns the number of sections (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.sections) }

// Find returns sections matching query, best first.
// An empty query lists every section in nav order.
func (idx *Index) Find(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]Result, len(idx.sections))
		for i, s := range idx.sections {
			results[i] = Result{Section: s, Key: idx.keys[i]}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Section:        idx.sections[m.Index],
			Key:            m.Str,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Suggest returns the id closest to query for a "did you mean" hint,
// or "" when nothing is close.
func (idx *Index) Suggest(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	ids := make([]string, len(idx.sections))
	for i, s := range idx.sections {
		ids[i] = s.ID
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, ids)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/retrofolio/internal/domain"
)

func TestSectionsTable(t *testing.T) {
	sections := []domain.Section{
		{ID: "home", Label: "HOME", Filename: "index.html"},
		{ID: "contact", Filename: "contact.json"},
	}
	visits := map[string]int{"home": 3}

	out := sectionsTable(sections, func(id string) int { return visits[id] })
	require.NotEmpty(t, out)
	assert.Contains(t, out, "VISITS")
	assert.Regexp(t, `1\W+home\W+HOME\W+index\.html\W+3`, out)
	assert.Regexp(t, `2\W+contact\W+CONTACT\W+contact\.json\W+0`, out)
	assert.Less(t, strings.Index(out, "home"), strings.Index(out, "contact"))
}

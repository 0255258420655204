package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.PrefStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := content.Default()
	require.NoError(t, err)
	prefs, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = prefs.Close() })

	srv, err := NewServer(registry, WithVisits(prefs))
	require.NoError(t, err)
	return srv, prefs
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersAllSections(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, id := range []string{"home", "projects", "services", "about", "contact"} {
		assert.Contains(t, body, `<section id="`+id+`">`)
	}
	assert.Contains(t, body, `href="/#projects"`)
	assert.NotContains(t, body, `href="nav:`)
}

func TestSectionPageRecordsVisit(t *testing.T) {
	srv, prefs := newTestServer(t)

	rec := get(t, srv, "/sections/about")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<section id="about">`)
	assert.NotContains(t, rec.Body.String(), `<section id="home">`)
	assert.Equal(t, 1, prefs.Visits("about"))
}

func TestAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		path string
		code int
	}{
		{"list", "/api/sections", http.StatusOK},
		{"one", "/api/sections/contact", http.StatusOK},
		{"unknown section", "/api/sections/blog", http.StatusNotFound},
		{"unknown page", "/sections/blog", http.StatusNotFound},
		{"no route", "/nope", http.StatusNotFound},
		{"health", "/healthz", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, tt.path)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestAPISectionBody(t *testing.T) {
	srv, prefs := newTestServer(t)
	require.NoError(t, prefs.RecordVisit("contact"))

	var list []SectionInfo
	require.NoError(t, json.Unmarshal(get(t, srv, "/api/sections").Body.Bytes(), &list))
	require.Len(t, list, 5)
	assert.Equal(t, "home", list[0].ID)
	assert.Equal(t, 1, list[4].Visits)

	var detail SectionDetail
	require.NoError(t, json.Unmarshal(get(t, srv, "/api/sections/contact").Body.Bytes(), &detail))
	assert.Equal(t, "contact.json", detail.Filename)
	assert.NotEmpty(t, detail.Source)
	assert.NotEmpty(t, detail.HTML)

	var apiErr map[string]string
	require.NoError(t, json.Unmarshal(get(t, srv, "/api/sections/blog").Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr["error"], "section not found")
}

func TestRewriteNavLinks(t *testing.T) {
	assert.Equal(t, `<a href="/#contact">x</a> <a href="https://x.dev">y</a>`,
		rewriteNavLinks(`<a href="nav:contact">x</a> <a href="https://x.dev">y</a>`))
}

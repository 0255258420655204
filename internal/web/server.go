// Package web serves the portfolio sections over HTTP as plain HTML and JSON.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/domain"
)

const shutdownTimeout = 5 * time.Second

// VisitRecorder counts section views; the preference store implements it
type VisitRecorder interface {
	RecordVisit(id string) error
	Visits(id string) int
}

// SectionInfo is the JSON shape of a section listing
type SectionInfo struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Filename string `json:"filename"`
	Visits   int    `json:"visits"`
}

// SectionDetail adds the rendered content
type SectionDetail struct {
	SectionInfo
	Source string `json:"source"`
	HTML   string `json:"html"`
}

// Server renders the registry once at startup and serves it
type Server struct {
	registry *content.Registry
	visits   VisitRecorder
	logger   *slog.Logger
	rendered map[string]template.HTML
	router   *gin.Engine
}

// Option configures a Server
type Option func(*Server)

// WithVisits counts views of /sections/:id
func WithVisits(v VisitRecorder) Option {
	return func(s *Server) { s.visits = v }
}

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer pre-renders every section and builds the router
func NewServer(registry *content.Registry, opts ...Option) (*Server, error) {
	s := &Server{
		registry: registry,
		logger:   slog.Default(),
		rendered: make(map[string]template.HTML, registry.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, section := range registry.All() {
		html, err := content.RenderHTML(section.Markup)
		if err != nil {
			return nil, fmt.Errorf("rendering section %s: %w", section.ID, err)
		}
		s.rendered[section.ID] = template.HTML(rewriteNavLinks(html))
	}

	s.router = s.routes()
	return s, nil
}

// rewriteNavLinks points in-content nav buttons at page anchors
func rewriteNavLinks(html string) string {
	return strings.ReplaceAll(html, `href="`+content.NavScheme, `href="/#`)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/", s.handleIndex)
	r.GET("/sections/:id", s.handleSectionPage)
	r.GET("/api/sections", s.handleList)
	r.GET("/api/sections/:id", s.handleSection)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sections": s.registry.Len()})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Handler returns the router
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "page", s.page(s.registry.All()...))
}

func (s *Server) handleSectionPage(c *gin.Context) {
	section, ok := s.lookup(c)
	if !ok {
		return
	}
	s.recordVisit(section.ID)
	c.HTML(http.StatusOK, "page", s.page(section))
}

func (s *Server) handleList(c *gin.Context) {
	all := s.registry.All()
	out := make([]SectionInfo, len(all))
	for i, section := range all {
		out[i] = s.info(section)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleSection(c *gin.Context) {
	section, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SectionDetail{
		SectionInfo: s.info(section),
		Source:      section.Source,
		HTML:        string(s.rendered[section.ID]),
	})
}

// lookup resolves :id or writes a 404
func (s *Server) lookup(c *gin.Context) (domain.Section, bool) {
	id := c.Param("id")
	section, ok := s.registry.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("%v: %q", domain.ErrSectionNotFound, id),
		})
		return domain.Section{}, false
	}
	return section, true
}

func (s *Server) recordVisit(id string) {
	if s.visits == nil {
		return
	}
	if err := s.visits.RecordVisit(id); err != nil {
		s.logger.Warn("failed to record visit", "section", id, "error", err)
	}
}

func (s *Server) info(section domain.Section) SectionInfo {
	info := SectionInfo{
		ID:       section.ID,
		Label:    section.DisplayLabel(),
		Filename: section.Filename,
	}
	if s.visits != nil {
		info.Visits = s.visits.Visits(section.ID)
	}
	return info
}

func (s *Server) page(sections ...domain.Section) pageData {
	data := pageData{Title: "RETRO://FOLIO"}
	for _, section := range s.registry.All() {
		data.Nav = append(data.Nav, navItem{ID: section.ID, Label: section.DisplayLabel()})
	}
	for _, section := range sections {
		data.Sections = append(data.Sections, pageSection{
			ID:       section.ID,
			Label:    section.DisplayLabel(),
			Filename: section.Filename,
			HTML:     s.rendered[section.ID],
		})
	}
	if len(sections) == 1 {
		data.Title = sections[0].DisplayLabel() + " | " + data.Title
	}
	return data
}

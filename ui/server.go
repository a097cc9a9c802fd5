package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sheetscope/app"
	"sheetscope/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server is the browser front-end: an upload form, a process action and the
// result panes (Markdown summary plus chart widgets) bound to its output.
type Server struct {
	router    *gin.Engine
	cfg       *config.Config
	service   *app.ExtractionService
	templates *template.Template
}

// NewServer builds the UI server around an extraction service.
func NewServer(cfg *config.Config, service *app.ExtractionService) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.Default(),
		cfg:       cfg,
		service:   service,
		templates: templates,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Fatalf("static assets missing from embed: %v", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))

	s.router.GET("/", s.handleIndex)

	api := s.router.Group("/api")
	{
		api.POST("/extractions", s.handleUpload)
		api.GET("/extractions", s.handleListExtractions)
		api.GET("/extractions/:id", s.handleGetExtraction)
		api.GET("/extractions/:id/charts", s.handleExtractionCharts)
		api.GET("/sample", s.handleSampleDownload)
	}
}

// Router exposes the underlying engine, mainly for httptest.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[ui] serving on http://localhost%s", addr)
	return s.router.Run(addr)
}

package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/Masterminds/sprig"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/meur/minidex/internal/dex"
	"github.com/meur/minidex/internal/logging"
	"github.com/meur/minidex/internal/storage"
)

// Options configures the HTTP server
type Options struct {
	AllowedOrigins []string
	ImagesDir      string         // Served under /images/ when set
	Store          *storage.Store // Optional, enables /api/catalogs
	Logger         zerolog.Logger
}

// Server holds the HTTP server dependencies
type Server struct {
	pipeline *dex.Pipeline
	opts     Options
	page     *template.Template
	router   chi.Router
}

// New creates a new HTTP server for the pipeline
func New(pipeline *dex.Pipeline, opts Options) (*Server, error) {
	page, err := template.New("index.html").
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	s := &Server{
		pipeline: pipeline,
		opts:     opts,
		page:     page,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(logging.RequestLogger(s.opts.Logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	// Page and display fragment
	s.router.Get("/", s.handleIndex)
	s.router.Get("/cards", s.handleCards)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/records", s.handleGetRecords)
		r.Get("/categories", s.handleGetCategories)
		r.Get("/catalogs", s.handleGetCatalogs)
	})

	if s.opts.ImagesDir != "" {
		FileServer(s.router, "/images", http.Dir(s.opts.ImagesDir))
	}

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

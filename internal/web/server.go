package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ddenisova/targbulk/internal/config"
	"github.com/ddenisova/targbulk/internal/repository"
	"github.com/ddenisova/targbulk/internal/service"
)

// Server is the JSON API the browser front-end talks to.
type Server struct {
	cfg      *config.Config
	logger   *logrus.Logger
	store    *service.SessionStore
	validate *validator.Validate
	router   *mux.Router

	// newClient builds a remote client for one operator key; replaced in
	// tests with fakes.
	newClient func(apiKey string) repository.Client
}

func NewServer(cfg *config.Config, logger *logrus.Logger, store *service.SessionStore) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		validate: validator.New(),
		router:   mux.NewRouter(),
	}
	s.newClient = func(apiKey string) repository.Client {
		return repository.NewClient(cfg.APIBaseURL(), apiKey, &http.Client{Timeout: 60 * time.Second})
	}
	s.registerRouter()
	return s
}

func (s *Server) registerRouter() {
	r := s.router
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/api/session", s.openSession).Methods(http.MethodPost)
	r.HandleFunc("/api/session/{token}", s.closeSession).Methods(http.MethodDelete)
	r.HandleFunc("/api/reference/types", s.listTypes).Methods(http.MethodGet)
	r.HandleFunc("/api/reference/locations", s.listLocations).Methods(http.MethodGet)
	r.HandleFunc("/api/events/import", s.importEvents).Methods(http.MethodPost)
	r.HandleFunc("/api/events/purge", s.purgeEvents).Methods(http.MethodPost)
}

// ServeHTTP recovers panics into a 500 so a bad request never takes the
// whole tool down mid-run.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			s.logger.WithField("panic", err).Error("recovered handler panic")
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
		}
	}()
	start := time.Now()
	s.router.ServeHTTP(w, r)
	s.logger.WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"duration": time.Since(start).String(),
	}).Debug("request served")
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// remoteError reports a failed remote call, exposing the remote status
// and body when there is one.
func (s *Server) remoteError(w http.ResponseWriter, err error, action string) {
	if se, ok := repository.AsStatusError(err); ok {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":        fmt.Sprintf("%s: remote call failed", action),
			"remoteStatus": se.Code,
			"remoteBody":   se.Body,
		})
		return
	}
	writeError(w, http.StatusBadGateway, fmt.Sprintf("%s: %v", action, err))
}

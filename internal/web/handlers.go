package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/ddenisova/targbulk/internal/constant"
	"github.com/ddenisova/targbulk/internal/models"
	"github.com/ddenisova/targbulk/internal/service"
)

const maxUploadBytes = 16 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request) {
	var req models.OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown timezone %q", req.Timezone))
		return
	}

	// Probe the key against the cheapest reference endpoint before
	// accepting the session.
	if _, err := s.newClient(req.APIKey).ListCalendarTypes(r.Context()); err != nil {
		s.remoteError(w, err, "verify api key")
		return
	}

	sess := s.store.Open(req.APIKey, loc)
	s.logger.WithField("timezone", req.Timezone).Info("session opened")
	writeJSON(w, http.StatusCreated, models.OpenSessionResponse{
		Token:    sess.Token,
		Timezone: req.Timezone,
	})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	s.store.Close(mux.Vars(r)["token"])
	w.WriteHeader(http.StatusNoContent)
}

// session authenticates the request against the in-memory session table.
// A false return means the response has already been written.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	token := r.Header.Get(constant.SESSION_TOKEN_HEADER)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing session token")
		return nil, false
	}
	sess, ok := s.store.Get(token)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unknown or expired session")
		return nil, false
	}
	return sess, true
}

func (s *Server) listTypes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	types, err := s.newClient(sess.APIKey).ListCalendarTypes(r.Context())
	if err != nil {
		s.remoteError(w, err, "load calendar types")
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	locations, err := s.newClient(sess.APIKey).ListLocations(r.Context())
	if err != nil {
		s.remoteError(w, err, "load locations")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (s *Server) importEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	loc := sess.Timezone
	if tz := r.FormValue("timezone"); tz != "" {
		override, err := time.LoadLocation(tz)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown timezone %q", tz))
			return
		}
		loc = override
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	// The table validates before any reference data is fetched; a broken
	// upload never costs a remote call.
	table, err := service.DecodeTable(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	importer := service.NewImporter(s.newClient(sess.APIKey), s.logger)
	summary, err := importer.Run(r.Context(), table, loc)
	if err != nil {
		s.remoteError(w, err, "import events")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) purgeEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req models.PurgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	since, upTo, err := service.PurgeWindow(req.From, req.To, sess.Timezone)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	purger := service.NewPurger(s.newClient(sess.APIKey), s.logger)
	summary, err := purger.Run(r.Context(), req.Location, since, upTo)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.remoteError(w, err, "purge events")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

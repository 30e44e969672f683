package store

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// MaxBodyBytes caps request and response bodies.
const MaxBodyBytes = 32 << 20

// Server exposes a Store over HTTP:
//
//	POST /api/save  {"data": "<json strokes>"} -> {"success": true, "revision": "..."}
//	GET  /api/load  -> {"success": true, "data": "<json strokes>"}
type Server struct {
	Store Store
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/save", s.save)
	mux.HandleFunc("/api/load", s.load)
	return mux
}

func (s *Server) save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, response{Error: "Method not allowed"})
		return
	}
	var req saveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, response{Error: "Drawing too large."})
			return
		}
		writeJSON(w, http.StatusBadRequest, response{Error: "Invalid request body."})
		return
	}
	if req.Data == nil {
		writeJSON(w, http.StatusBadRequest, response{Error: "No drawing data provided."})
		return
	}
	rev := uuid.NewString()
	var err error
	if rs, ok := s.Store.(RevisionSaver); ok {
		err = rs.SaveRevision(r.Context(), *req.Data, rev)
	} else {
		err = s.Store.Save(r.Context(), *req.Data)
	}
	if err != nil {
		log.Printf("save %s: %v", rev, err)
		writeJSON(w, http.StatusInternalServerError, response{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Revision: rev})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, response{Error: "Method not allowed"})
		return
	}
	data, err := s.Store.Load(r.Context())
	if err != nil {
		log.Printf("load: %v", err)
		writeJSON(w, http.StatusInternalServerError, response{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: &data})
}

func writeJSON(w http.ResponseWriter, status int, v response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

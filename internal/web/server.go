package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"brewdeck/internal/brew"
)

// Server exposes the engine over a local JSON API.
type Server struct {
	client *brew.Client
}

// StartServer starts the web server on the given port (or default 8080).
func StartServer(client *brew.Client, port string) {
	if port == "" {
		port = "8080"
	}
	s := &Server{client: client}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/outdated", s.handleOutdated)
	mux.HandleFunc("/api/deps", s.handleDeps)
	mux.HandleFunc("/api/doctor", s.handleDoctor)
	mux.HandleFunc("/api/search", s.handleSearch)

	fmt.Printf("Starting brewdeck API server at http://localhost:%s\n", port)

	if err := http.ListenAndServe("localhost:"+port, mux); err != nil {
		log.Fatal(err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.client.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleOutdated(w http.ResponseWriter, r *http.Request) {
	outdated, err := s.client.Outdated(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, outdated)
}

func (s *Server) handleDeps(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name parameter", 400)
		return
	}
	tree, err := s.client.DepTree(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, tree)
}

func (s *Server) handleDoctor(w http.ResponseWriter, r *http.Request) {
	entries, err := s.client.Doctor(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing q parameter", 400)
		return
	}
	results, err := s.client.Search(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, results)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

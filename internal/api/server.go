// Package api provides the HTTP service wrapper around the mission
// simulator. Missions run as background goroutines; the API is glue around
// setup/run/export and imposes no contract on the core beyond consuming
// its result structure.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/config"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/mission"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/persistence"
)

// Run states reported by the registry.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// run is one tracked simulation in the registry.
type run struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Result *mission.Result `json:"result,omitempty"`
}

// Server serves mission simulations over HTTP.
type Server struct {
	Port  int
	Store *persistence.Store // optional: completed runs are persisted when set

	mu   sync.Mutex
	runs map[string]*run
}

// Handler builds the API route table. Exposed separately from Start so
// tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	if s.runs == nil {
		s.runs = make(map[string]*run)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.HandleFunc("/api/v1/missions", s.handleMissions)
	mux.HandleFunc("/api/v1/missions/", s.handleMissionByID)
	mux.HandleFunc("/api/v1/catalog/species", s.handleCatalogSpecies)
	mux.HandleFunc("/api/v1/catalog/roles", s.handleCatalogRoles)
	mux.HandleFunc("/api/v1/catalog/scenarios", s.handleCatalogScenarios)
	return corsMiddleware(mux)
}

// Start begins serving the HTTP API. Blocks until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "store", s.Store != nil)
	return http.ListenAndServe(addr, s.Handler())
}

// corsMiddleware allows cross-origin reads from local dashboards.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok"})
}

// handleMissions dispatches list (GET) and launch (POST).
func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleList(w, r)
	case http.MethodPost:
		s.handleLaunch(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	type item struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	s.mu.Lock()
	items := make([]item, 0, len(s.runs))
	for _, rn := range s.runs {
		items = append(items, item{ID: rn.ID, Status: rn.Status})
	}
	s.mu.Unlock()
	writeJSON(w, map[string]any{"missions": items})
}

// handleLaunch accepts a configuration, validates it, and runs the mission
// in the background. The response carries the new mission id immediately.
// An empty body launches the default squad.
func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	cfg := config.Default()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &cfg); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id := uuid.NewString()
	rn := &run{ID: id, Status: StatusPending}
	s.mu.Lock()
	s.runs[id] = rn
	s.mu.Unlock()

	go s.execute(rn, cfg)

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]any{"id": id, "status": StatusPending})
}

func (s *Server) execute(rn *run, cfg config.Config) {
	s.setStatus(rn, StatusRunning, "")

	sim := mission.NewSimulator(cfg)
	if err := sim.Setup(); err != nil {
		slog.Error("mission setup failed", "id", rn.ID, "error", err)
		s.setStatus(rn, StatusFailed, err.Error())
		return
	}
	res, err := sim.Run()
	if err != nil {
		slog.Error("mission run failed", "id", rn.ID, "error", err)
		s.setStatus(rn, StatusFailed, err.Error())
		return
	}

	s.mu.Lock()
	rn.Status = StatusComplete
	rn.Result = res
	s.mu.Unlock()

	if s.Store != nil {
		if err := s.Store.SaveResult(rn.ID, res); err != nil {
			slog.Error("mission persist failed", "id", rn.ID, "error", err)
		}
	}
	slog.Info("mission finished", "id", rn.ID, "total_reward", res.TotalReward)
}

func (s *Server) setStatus(rn *run, status, errMsg string) {
	s.mu.Lock()
	rn.Status = status
	rn.Error = errMsg
	s.mu.Unlock()
}

// handleMissionByID serves GET and DELETE for /api/v1/missions/{id}.
func (s *Server) handleMissionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/missions/")
	if id == "" {
		http.Error(w, "missing mission id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		// Snapshot under the lock so the encoder never observes a run
		// mid-mutation by the background mission goroutine.
		s.mu.Lock()
		rn, ok := s.runs[id]
		var snapshot run
		if ok {
			snapshot = *rn
		}
		s.mu.Unlock()
		if ok {
			writeJSON(w, &snapshot)
			return
		}
		// Missions from earlier processes live only in the store.
		if s.Store != nil {
			if res, err := s.Store.GetResult(id); err == nil {
				writeJSON(w, &run{ID: id, Status: StatusComplete, Result: res})
				return
			}
		}
		http.Error(w, "mission not found", http.StatusNotFound)

	case http.MethodDelete:
		s.mu.Lock()
		_, ok := s.runs[id]
		delete(s.runs, id)
		s.mu.Unlock()
		if s.Store != nil {
			if err := s.Store.DeleteMission(id); err == nil {
				ok = true
			}
		}
		if !ok {
			http.Error(w, "mission not found", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{"deleted": id})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCatalogSpecies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, cosmos.SpeciesModifiers)
}

func (s *Server) handleCatalogRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, cosmos.RoleDescriptions)
}

func (s *Server) handleCatalogScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"galaxies":  cosmos.Galaxies,
		"terrains":  cosmos.Terrains,
		"weather":   cosmos.WeatherConditions,
		"scenarios": cosmos.Narratives,
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

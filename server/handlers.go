package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/segview/numguess/model"
)

type gameServer struct {
	cfg      config
	registry *registry
	metrics  *metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader
	stop     chan struct{}
}

func newGameServer(cfg config, logger *slog.Logger, reg prometheus.Registerer) *gameServer {
	return &gameServer{
		cfg:      cfg,
		registry: newRegistry(),
		metrics:  newMetrics(reg),
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		stop: make(chan struct{}),
	}
}

func (gs *gameServer) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/session/new", gs.handleNewSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/session/{sessionID}", gs.handleGetSession).Methods("GET")
	r.HandleFunc("/api/session/{sessionID}", gs.handleDeleteSession).Methods("DELETE")
	r.HandleFunc("/api/session/{sessionID}/button", gs.handleButton).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/session/{sessionID}/reset", gs.handleReset).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/session/{sessionID}/ws", gs.handleWS).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (gs *gameServer) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	session := newSession(gs.cfg.simConfig())
	gs.registry.add(session)
	go session.run(gs.cfg.TickHz, gs.cfg.FrameRate, gs.metrics, gs.logger)

	gs.metrics.sessionsCreated.Inc()
	gs.metrics.sessionsActive.Inc()
	gs.logger.Info("session created", "session_id", session.ID)

	writeJSON(w, http.StatusOK, model.NewSessionResponse{
		Success: true,
		Message: "session created",
		Session: session.snapshot(),
	})
}

func (gs *gameServer) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := gs.registry.get(mux.Vars(r)["sessionID"])
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session.snapshot())
}

func (gs *gameServer) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionID"]
	if _, ok := gs.registry.get(id); !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	gs.registry.remove(id)
	gs.metrics.sessionsActive.Dec()
	gs.logger.Info("session deleted", "session_id", id)
	writeJSON(w, http.StatusOK, model.ButtonResponse{Success: true, Message: "session deleted"})
}

func (gs *gameServer) handleButton(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	session, ok := gs.registry.get(mux.Vars(r)["sessionID"])
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var ev model.ButtonEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !ev.Button.Valid() {
		writeJSON(w, http.StatusBadRequest, model.ButtonResponse{
			Success: false,
			Message: "unknown button: " + string(ev.Button),
		})
		return
	}

	session.apply(ev)
	gs.metrics.buttonEvents.WithLabelValues(string(ev.Button)).Inc()

	snap := session.snapshot()
	writeJSON(w, http.StatusOK, model.ButtonResponse{
		Success: true,
		Message: "button event accepted",
		Session: &snap,
	})
}

func (gs *gameServer) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	session, ok := gs.registry.get(mux.Vars(r)["sessionID"])
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	session.reset()
	snap := session.snapshot()
	writeJSON(w, http.StatusOK, model.ButtonResponse{
		Success: true,
		Message: "reset asserted",
		Session: &snap,
	})
}

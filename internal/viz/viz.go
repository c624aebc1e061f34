// Package viz serves debug visualisations of the steering pipeline over HTTP.
// The endpoints are debugging aids (no auth) for watching an agent's view of
// its neighbourhood and the forces it is producing.
package viz

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/banshee-data/swarm.pilot/internal/swarm"
	"github.com/banshee-data/swarm.pilot/internal/telemetry"
)

// forceHistoryLimit bounds the force magnitude series kept for plotting.
const forceHistoryLimit = 600

// Server collects published step results and serves them as JSON, an ECharts
// scatter dashboard, and PNG plots. It implements swarm.StateSink.
type Server struct {
	mu     sync.Mutex
	agent  string
	latest swarm.StepResult
	ready  bool

	// forceSteps/forceMags form the plotted series; wheel speeds are kept
	// alongside for the drive plot.
	forceSteps []float64
	forceMags  []float64
	leftSpeed  []float64
	rightSpeed []float64

	rollup *telemetry.Rollup
	tuning chan<- swarm.TuningEvent
}

// NewServer returns a Server for the named agent. Tuning requests received
// over HTTP are forwarded to the tuning channel; pass nil to disable the
// tuning endpoint.
func NewServer(agent string, tuning chan<- swarm.TuningEvent) *Server {
	return &Server{
		agent:  agent,
		rollup: telemetry.NewRollup(0),
		tuning: tuning,
	}
}

// Publish records the latest step result. The neighbour slice in res is
// borrowed from the agent, so it is copied before the call returns.
func (s *Server) Publish(res swarm.StepResult) {
	neighbors := make([]swarm.Neighbor, len(res.Neighbors))
	copy(neighbors, res.Neighbors)
	res.Neighbors = neighbors

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = res
	s.ready = true
	_ = s.rollup.RecordStatus(s.agent, res)

	if len(s.forceMags) >= forceHistoryLimit {
		copy(s.forceSteps, s.forceSteps[1:])
		s.forceSteps = s.forceSteps[:len(s.forceSteps)-1]
		copy(s.forceMags, s.forceMags[1:])
		s.forceMags = s.forceMags[:len(s.forceMags)-1]
		copy(s.leftSpeed, s.leftSpeed[1:])
		s.leftSpeed = s.leftSpeed[:len(s.leftSpeed)-1]
		copy(s.rightSpeed, s.rightSpeed[1:])
		s.rightSpeed = s.rightSpeed[:len(s.rightSpeed)-1]
	}
	s.forceSteps = append(s.forceSteps, float64(res.Step))
	s.forceMags = append(s.forceMags, res.Force.Mag())
	s.leftSpeed = append(s.leftSpeed, res.Drive.Left)
	s.rightSpeed = append(s.rightSpeed, res.Drive.Right)
}

// Handler returns the HTTP mux for the visualisation endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/tuning", s.handleTuning)
	mux.HandleFunc("/plot/forces.png", s.handleForcePlot)
	return mux
}

// stateResponse is the JSON shape served by /api/state.
type stateResponse struct {
	Agent     string             `json:"agent"`
	Step      int                `json:"step"`
	Neighbors []swarm.Neighbor   `json:"neighbors"`
	Forces    swarm.Forces       `json:"forces"`
	Force     [2]float64         `json:"force"`
	Drive     swarm.DriveCommand `json:"drive"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	res, ready := s.latest, s.ready
	s.mu.Unlock()

	if !ready {
		s.writeJSONError(w, http.StatusNotFound, "no step results published yet")
		return
	}

	resp := stateResponse{
		Agent:     s.agent,
		Step:      res.Step,
		Neighbors: res.Neighbors,
		Forces:    res.Forces,
		Force:     [2]float64{res.Force.X, res.Force.Y},
		Drive:     res.Drive,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.rollup.Stats()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

// tuningRequest is the JSON body accepted by POST /api/tuning.
type tuningRequest struct {
	Event string `json:"event"`
}

func (s *Server) handleTuning(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}
	if s.tuning == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "tuning channel not configured")
		return
	}

	var req tuningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	ev, ok := swarm.ParseTuningEvent(req.Event)
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, "unknown tuning event: "+req.Event)
		return
	}

	select {
	case s.tuning <- ev:
	default:
		s.writeJSONError(w, http.StatusServiceUnavailable, "tuning queue full; retry shortly")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted", "event": ev.String()})
}

// writeJSONError writes a JSON error response.
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

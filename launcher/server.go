// Package launcher exposes the provisioning pipeline over HTTP for at most
// one concurrent execution. It treats the launch command as an opaque black
// box: output is relayed, never parsed, and exit status is the only verdict.
package launcher

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/kitfox-games/gameday/environ"
	"github.com/rs/zerolog"
)

//go:embed static/index.html
var staticFiles embed.FS

const (
	stateIdle int32 = iota
	stateRunning
)

type Server struct {
	config Config
	logger zerolog.Logger

	// state restricts the pipeline to one execution across all connections.
	// It's only ever moved Idle->Running by compare-and-swap and must be
	// returned to Idle on every exit path.
	state  atomic.Int32
	starts atomic.Int64
}

func NewServer(config Config, logger zerolog.Logger) *Server {
	return &Server{config: config, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/env-status", s.handleEnvStatus)
	mux.HandleFunc("/api/launch", s.handleLaunch)
	mux.HandleFunc("/api/launch-stream", s.handleLaunchStream)
	return mux
}

// Starts reports how many launch subprocesses this server has started.
func (s *Server) Starts() int64 {
	return s.starts.Load()
}

type LaunchRequest struct {
	NamePrefix string `json:"name_prefix,omitempty"`
}

type LaunchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Output  string `json:"output,omitempty"`
}

func (s *Server) acquire() bool {
	return s.state.CompareAndSwap(stateIdle, stateRunning)
}

func (s *Server) release() {
	s.state.Store(stateIdle)
}

// command builds the opaque launch subprocess, with the confirmation prompt
// bypassed since there's no terminal on the other end.
func (s *Server) command(namePrefix string) *exec.Cmd {
	args := append([]string{}, s.config.Command[1:]...)
	if namePrefix != "" {
		args = append(args, namePrefix)
	}
	cmd := exec.Command(s.config.Command[0], args...)
	cmd.Dir = s.config.Dir
	cmd.Env = append(os.Environ(), environ.AutoApprove+"=true")
	return cmd
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	content, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "failed to load page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write(content)
}

func (s *Server) handleEnvStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sendJSON(w, http.StatusOK, environ.Statuses())
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.acquire() {
		sendJSON(w, http.StatusConflict, LaunchResponse{
			Message: "a game launch is already in progress",
		})
		return
	}
	defer s.release()

	if missing := environ.Missing(); len(missing) > 0 {
		sendJSON(w, http.StatusBadRequest, LaunchResponse{
			Message: fmt.Sprintf("missing required credentials: %s", strings.Join(missing, ", ")),
		})
		return
	}

	req := decodeRequest(r)
	runID := uuid.New()
	logger := s.logger.With().Stringer("run_id", runID).Logger()

	run, err := s.start(req.NamePrefix)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start launch command")
		sendJSON(w, http.StatusInternalServerError, LaunchResponse{
			Message: fmt.Sprintf("failed to start launch command: %v", err),
		})
		return
	}
	logger.Info().Str("name_prefix", req.NamePrefix).Msg("launch started")

	output, err := run.wait()
	if err != nil {
		logger.Error().Err(err).Msg("launch failed")
		sendJSON(w, http.StatusInternalServerError, LaunchResponse{
			Message: fmt.Sprintf("launch failed: %v", err),
			Output:  output,
		})
		return
	}
	logger.Info().Msg("launch completed")
	sendJSON(w, http.StatusOK, LaunchResponse{
		Success: true,
		Message: "game launch completed successfully",
		Output:  output,
	})
}

func (s *Server) handleLaunchStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.acquire() {
		http.Error(w, "a game launch is already in progress", http.StatusConflict)
		return
	}
	defer s.release()

	if missing := environ.Missing(); len(missing) > 0 {
		http.Error(
			w,
			fmt.Sprintf("missing required credentials: %s", strings.Join(missing, ", ")),
			http.StatusBadRequest,
		)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	req := decodeRequest(r)
	runID := uuid.New()
	logger := s.logger.With().Stringer("run_id", runID).Logger()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	run, err := s.startStreaming(req.NamePrefix)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start launch command")
		sendEvent(w, flusher, "error", fmt.Sprintf("failed to start launch command: %v", err))
		return
	}
	logger.Info().Str("name_prefix", req.NamePrefix).Msg("launch started")
	sendEvent(w, flusher, "start", fmt.Sprintf("launch %s started", runID))

	for line := range run.lines {
		sendEvent(w, flusher, "output", line)
	}

	if err := run.cmd.Wait(); err != nil {
		logger.Error().Err(err).Msg("launch failed")
		sendEvent(w, flusher, "error", fmt.Sprintf("launch failed: %v", err))
		return
	}
	logger.Info().Msg("launch completed")
	sendEvent(w, flusher, "complete", "launch completed successfully")
}

func decodeRequest(r *http.Request) LaunchRequest {
	var req LaunchRequest
	if r.Body != nil {
		defer r.Body.Close()
		json.NewDecoder(r.Body).Decode(&req) // an empty or invalid body means no prefix
	}
	return req
}

func sendEvent(w http.ResponseWriter, flusher http.Flusher, name, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	flusher.Flush()
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

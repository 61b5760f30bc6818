package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/tasks"
)

// maxPromptLength bounds the user prompt, matching the frontend contract.
const maxPromptLength = 1000

// GenerateRequest is the body of POST /generate_playlist. UserTrackList is a
// JSON-encoded string (the frontend serializes its track table separately).
type GenerateRequest struct {
	UserPrompt    string `json:"user_prompt"`
	UserTrackList string `json:"user_track_list"`
	AccessToken   string `json:"access_token,omitempty"`
}

// GenerateHandler serves POST /generate_playlist, delegating to the
// generation engine. Implements the [Handler] interface.
type GenerateHandler struct {
	engine tasks.GenerateEngine
	logger *log.Logger
}

// NewGenerateHandler creates a GenerateHandler around the engine.
func NewGenerateHandler(engine tasks.GenerateEngine, logger *log.Logger) *GenerateHandler {
	return &GenerateHandler{engine: engine, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *GenerateHandler) Routes() []string {
	return []string{"/generate_playlist"}
}

// ServeHTTP handles the generation request.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserPrompt == "" || len(req.UserPrompt) > maxPromptLength {
		writeDetail(w, http.StatusBadRequest, "user_prompt must be between 1 and 1000 characters")
		return
	}

	var trackList []models.Track
	if err := json.Unmarshal([]byte(req.UserTrackList), &trackList); err != nil {
		h.logger.Error("invalid JSON in user_track_list", "error", err)
		writeDetail(w, http.StatusBadRequest, "Invalid track list format")
		return
	}

	generated, err := h.engine.Run(r.Context(), nil, req.UserPrompt, trackList, req.AccessToken)
	if err != nil {
		h.logger.Error("error generating playlist", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to generate playlist")
		return
	}

	writeJSON(w, http.StatusOK, generated)
}

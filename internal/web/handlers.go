package web

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/playlist"
	"github.com/justestif/go-moodtune/internal/timeline"
)

const (
	// maxAnalyzeBody bounds analyze requests, which carry base64 audio.
	maxAnalyzeBody = 25 << 20
	maxJSONBody    = 1 << 20

	// maxPhases bounds the requested k for timeline clustering.
	maxPhases = 10

	msgAnalyzeFailed  = "Failed to analyze mood"
	msgPlaylistFailed = "Failed to generate playlist"
	msgTimelineFailed = "Failed to build timeline"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	estimator MoodEstimator
	playlists PlaylistGenerator
	resolver  SongResolver
	timeline  timeline.Config
	now       func() time.Time
}

// NewHandlers creates a new Handlers instance. resolver may be nil.
func NewHandlers(estimator MoodEstimator, playlists PlaylistGenerator, resolver SongResolver, tl timeline.Config) *Handlers {
	return &Handlers{
		estimator: estimator,
		playlists: playlists,
		resolver:  resolver,
		timeline:  tl,
		now:       time.Now,
	}
}

type analyzeRequest struct {
	Text           string `json:"text"`
	AudioReference string `json:"audioReference"`
	AudioBlob      string `json:"audioBlob"` // accepted alias
}

type analyzeResponse struct {
	Success       bool            `json:"success"`
	Analysis      mood.Assessment `json:"analysis"`
	Transcription string          `json:"transcription"`
	Source        mood.Source     `json:"source"`
}

// Analyze estimates a mood from text or audio (POST /api/analyze).
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, maxAnalyzeBody, &req); err != nil {
		log.Printf("ERROR analyze: decoding request: %v", err)
		writeError(w, http.StatusInternalServerError, msgAnalyzeFailed)
		return
	}

	in := mood.Input{Text: req.Text, AudioReference: req.AudioReference}
	if in.AudioReference == "" {
		in.AudioReference = req.AudioBlob
	}

	result, err := h.estimator.Estimate(r.Context(), in)
	if errors.Is(err, mood.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Either text or audioReference is required")
		return
	}
	if err != nil {
		log.Printf("ERROR analyze: %v", err)
		writeError(w, http.StatusInternalServerError, msgAnalyzeFailed)
		return
	}

	analysis := result.Assessment
	if h.resolver != nil && len(analysis.RestorativeSongs) > 0 {
		analysis.RestorativeSongs = h.resolver.Resolve(r.Context(), analysis.RestorativeSongs)
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:       true,
		Analysis:      analysis,
		Transcription: result.Transcription,
		Source:        result.Source,
	})
}

type playlistRequest struct {
	MoodLabel string   `json:"moodLabel"`
	Mood      string   `json:"mood"` // accepted alias
	Energy    *float64 `json:"energy"`
	Valence   *float64 `json:"valence"`
	Intensity *float64 `json:"intensity"`
	Surprise  bool     `json:"surprise"`
}

type playlistResponse struct {
	Success  bool              `json:"success"`
	Playlist playlist.Playlist `json:"playlist"`
}

// Playlist generates a playlist for a mood label (POST /api/playlist).
func (h *Handlers) Playlist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeJSON(w, r, maxJSONBody, &req); err != nil {
		log.Printf("ERROR playlist: decoding request: %v", err)
		writeError(w, http.StatusInternalServerError, msgPlaylistFailed)
		return
	}

	label := req.MoodLabel
	if label == "" {
		label = req.Mood
	}

	p, err := h.playlists.Generate(playlist.Request{
		MoodLabel: label,
		Energy:    roundPtr(req.Energy),
		Valence:   roundPtr(req.Valence),
		Intensity: roundPtr(req.Intensity),
		Surprise:  req.Surprise,
	})
	if errors.Is(err, playlist.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Mood is required")
		return
	}
	if err != nil {
		log.Printf("ERROR playlist: %v", err)
		writeError(w, http.StatusInternalServerError, msgPlaylistFailed)
		return
	}

	writeJSON(w, http.StatusOK, playlistResponse{Success: true, Playlist: p})
}

type songsResponse struct {
	Emotion     string      `json:"emotion"`
	Explanation string      `json:"explanation"`
	Songs       []mood.Song `json:"songs"`
}

// Songs returns restorative suggestions for a recognizer emotion (GET /api/songs/{emotion}).
// Unknown emotions get the general-purpose list.
func (h *Handlers) Songs(w http.ResponseWriter, r *http.Request) {
	emotion := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "emotion")))

	songs := mood.RestorativeSongs(emotion)
	if h.resolver != nil {
		songs = h.resolver.Resolve(r.Context(), songs)
	}

	writeJSON(w, http.StatusOK, songsResponse{
		Emotion:     emotion,
		Explanation: mood.Explanation(emotion),
		Songs:       songs,
	})
}

type timelineRequest struct {
	Entries      []timelineEntry `json:"entries"`
	Phases       int             `json:"phases"`
	MinPhaseSize int             `json:"minPhaseSize"`
}

type timelineEntry struct {
	Mood      string     `json:"mood"`
	Energy    int        `json:"energy"`
	Valence   int        `json:"valence"`
	Intensity int        `json:"intensity"`
	At        *time.Time `json:"at"`
}

type timelineResponse struct {
	Success  bool             `json:"success"`
	Summary  string           `json:"summary"`
	Phases   []timeline.Phase `json:"phases"`
	Outliers []timeline.Entry `json:"outliers"`
}

// Timeline groups a posted mood history into phases (POST /api/timeline).
// Entries without a timestamp are stamped with the request time.
func (h *Handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	var req timelineRequest
	if err := decodeJSON(w, r, maxJSONBody, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cfg := h.timeline
	if req.Phases > 0 {
		cfg.NumPhases = min(req.Phases, maxPhases)
	}
	if req.MinPhaseSize > 0 {
		cfg.MinPhaseSize = req.MinPhaseSize
	}

	now := h.now()
	entries := make([]timeline.Entry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = timeline.Entry{
			Mood:      e.Mood,
			Energy:    e.Energy,
			Valence:   e.Valence,
			Intensity: e.Intensity,
			At:        now,
		}
		if e.At != nil {
			entries[i].At = *e.At
		}
	}

	phases, outliers, err := timeline.Detect(entries, cfg)
	if errors.Is(err, timeline.ErrNoEntries) || errors.Is(err, timeline.ErrTooManyEntries) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("ERROR timeline: %v", err)
		writeError(w, http.StatusInternalServerError, msgTimelineFailed)
		return
	}

	if phases == nil {
		phases = []timeline.Phase{}
	}
	if outliers == nil {
		outliers = []timeline.Entry{}
	}

	writeJSON(w, http.StatusOK, timelineResponse{
		Success:  true,
		Summary:  timeline.FormatSummary(phases, outliers),
		Phases:   phases,
		Outliers: outliers,
	})
}

// Health reports liveness (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR encoding JSON response: %v", err)
	}
}

// writeError writes an {"error": message} response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func roundPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	v := int(math.Round(*f))
	return &v
}

// Package playlist picks a short playlist from the catalog for a mood.
package playlist

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/justestif/go-moodtune/internal/catalog"
	"github.com/justestif/go-moodtune/internal/mood"
)

// ErrInvalidInput is returned when the request has no mood label.
var ErrInvalidInput = errors.New("mood label is required")

const (
	// Length is the number of tracks in every playlist.
	Length = 5

	// DefaultDimension is used for energy, valence and intensity when omitted.
	DefaultDimension = 50

	minMoodMatch = 45
	maxMoodMatch = 98

	surpriseName        = "🎲 Surprise Remix Vibes"
	surpriseDescription = "A curated surprise mix to shake up your musical world!"
)

// Request describes the playlist to generate. Nil dimensions default to 50.
type Request struct {
	MoodLabel string
	Energy    *int
	Valence   *int
	Intensity *int
	Surprise  bool
}

// ScoredTrack is a catalog track annotated for a specific playlist.
type ScoredTrack struct {
	catalog.Track
	VibeNote  string `json:"vibe_note"`
	MoodMatch int    `json:"mood_match"`
}

// Playlist is a generated selection of catalog tracks.
type Playlist struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	MoodDetected string        `json:"mood_detected"`
	Tracks       []ScoredTrack `json:"tracks"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Selector generates playlists.
type Selector struct {
	newRand func() *rand.Rand
	now     func() time.Time
}

// Option configures a Selector.
type Option func(*Selector)

// WithRandSource sets the factory for the per-request random generator.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(s *Selector) {
		if newRand != nil {
			s.newRand = newRand
		}
	}
}

// WithClock overrides the time source used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSelector creates a Selector.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate draws Length distinct tracks from a uniform shuffle of the catalog,
// scores each one and orders them by mood match, best first.
func (s *Selector) Generate(req Request) (Playlist, error) {
	label := strings.TrimSpace(req.MoodLabel)
	if label == "" {
		return Playlist{}, ErrInvalidInput
	}

	energy := valueOr(req.Energy, DefaultDimension)
	valence := valueOr(req.Valence, DefaultDimension)

	rng := s.newRand()

	tracks := catalog.All()
	rng.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})

	n := min(Length, len(tracks))
	scored := make([]ScoredTrack, 0, n)
	for _, t := range tracks[:n] {
		scored = append(scored, ScoredTrack{
			Track:     t,
			VibeNote:  pickNote(mood.Label(label), rng),
			MoodMatch: moodMatch(energy, valence, rng),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MoodMatch > scored[j].MoodMatch
	})

	now := s.now()
	p := Playlist{
		ID:           fmt.Sprintf("playlist_%d", now.UnixMilli()),
		Name:         mood.Label(label).Title() + " Vibes",
		Description:  fmt.Sprintf("A personalized playlist crafted for your %s mood", label),
		MoodDetected: label,
		Tracks:       scored,
		CreatedAt:    now,
	}
	if req.Surprise {
		p.Name = surpriseName
		p.Description = surpriseDescription
	}
	return p, nil
}

// moodMatch compares the requested dimensions against a synthetic profile for
// the track and returns a score in [45, 98].
func moodMatch(energy, valence int, rng *rand.Rand) int {
	trackEnergy := rng.Float64() * 100
	trackValence := rng.Float64() * 100

	energyScore := math.Max(0, 100-math.Abs(float64(energy)-trackEnergy))
	valenceScore := math.Max(0, 100-math.Abs(float64(valence)-trackValence))

	base := math.Round((60 + energyScore + valenceScore) / 3)
	score := int(math.Round(base + rng.Float64()*20 - 10))

	return max(minMoodMatch, min(maxMoodMatch, score))
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

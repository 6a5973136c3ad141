// Package timeline groups a client's recorded mood history into phases.
package timeline

import (
	"errors"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-moodtune/internal/mood"
)

// MaxEntries bounds a single timeline request.
const MaxEntries = 1000

// Sentinel errors.
var (
	// ErrNoEntries is returned for an empty history.
	ErrNoEntries = errors.New("timeline has no entries")

	// ErrTooManyEntries is returned when the history exceeds MaxEntries.
	ErrTooManyEntries = errors.New("timeline has too many entries")
)

// Config holds phase detection parameters.
type Config struct {
	NumPhases    int // Number of k-means clusters (default: 3)
	MinPhaseSize int // Smaller clusters become outliers (default: 2)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumPhases:    3,
		MinPhaseSize: 2,
	}
}

// Entry is one assessment from the client's history.
type Entry struct {
	Mood      string    `json:"mood"`
	Energy    int       `json:"energy"`
	Valence   int       `json:"valence"`
	Intensity int       `json:"intensity"`
	At        time.Time `json:"at"`
}

// Centroid is the average position of a phase.
type Centroid struct {
	Energy    float64 `json:"energy"`
	Valence   float64 `json:"valence"`
	Intensity float64 `json:"intensity"`
}

// Phase is a cluster of entries with a similar mood.
type Phase struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`  // Quadrant name, e.g. "Bright & Energized"
	Label    mood.Label `json:"label"` // Classifier label for the centroid
	Centroid Centroid   `json:"centroid"`
	Count    int        `json:"count"`
	Start    time.Time  `json:"start"`
	End      time.Time  `json:"end"`
	Entries  []Entry    `json:"-"`
}

// entryObservation wraps an Entry to implement clusters.Observation.
type entryObservation struct {
	entry  *Entry
	coords clusters.Coordinates
}

func (o entryObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o entryObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Detect groups entries by (energy, valence) with k-means clustering.
// Entries with a dimension outside [0, 100] are never clustered and are
// returned as outliers, along with members of undersized clusters.
func Detect(entries []Entry, cfg Config) ([]Phase, []Entry, error) {
	if len(entries) == 0 {
		return nil, nil, ErrNoEntries
	}
	if len(entries) > MaxEntries {
		return nil, nil, ErrTooManyEntries
	}

	if cfg.NumPhases <= 0 {
		cfg.NumPhases = DefaultConfig().NumPhases
	}

	var valid []*Entry
	var outliers []Entry
	for i := range entries {
		e := &entries[i]
		if inRange(e) {
			valid = append(valid, e)
		} else {
			outliers = append(outliers, *e)
		}
	}

	// Too few points to split: nothing forms a phase.
	if len(valid) < cfg.NumPhases {
		for _, e := range valid {
			outliers = append(outliers, *e)
		}
		return nil, outliers, nil
	}

	var obs clusters.Observations
	for _, e := range valid {
		obs = append(obs, entryObservation{
			entry:  e,
			coords: clusters.Coordinates{float64(e.Energy), float64(e.Valence)},
		})
	}

	result, err := kmeans.New().Partition(obs, cfg.NumPhases)
	if err != nil {
		log.Printf("WARN timeline: k-means clustering failed: %v", err)
		for _, e := range valid {
			outliers = append(outliers, *e)
		}
		return nil, outliers, nil
	}

	var phases []Phase
	for _, cluster := range result {
		var members []Entry
		for _, o := range cluster.Observations {
			if eo, ok := o.(entryObservation); ok {
				members = append(members, *eo.entry)
			}
		}
		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinPhaseSize {
			outliers = append(outliers, members...)
			continue
		}

		slices.SortStableFunc(members, func(a, b Entry) int {
			return a.At.Compare(b.At)
		})

		centroid := centroidOf(members)

		phases = append(phases, Phase{
			ID:       uuid.NewString(),
			Name:     phaseName(centroid),
			Label:    mood.Classify(int(centroid.Valence+0.5), int(centroid.Energy+0.5)),
			Centroid: centroid,
			Count:    len(members),
			Start:    members[0].At,
			End:      members[len(members)-1].At,
			Entries:  members,
		})
	}

	// Most recent phase first.
	slices.SortFunc(phases, func(a, b Phase) int {
		return b.Start.Compare(a.Start)
	})

	return phases, outliers, nil
}

func inRange(e *Entry) bool {
	for _, v := range []int{e.Energy, e.Valence, e.Intensity} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}

// centroidOf averages the members directly; the k-means center is not
// recomputed after the final assignment pass.
func centroidOf(entries []Entry) Centroid {
	var energy, valence, intensity int
	for _, e := range entries {
		energy += e.Energy
		valence += e.Valence
		intensity += e.Intensity
	}
	n := float64(len(entries))
	return Centroid{
		Energy:    float64(energy) / n,
		Valence:   float64(valence) / n,
		Intensity: float64(intensity) / n,
	}
}

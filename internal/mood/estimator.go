package mood

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/justestif/go-moodtune/internal/audio"
	"github.com/justestif/go-moodtune/internal/recognizer"
)

// Sentinel errors.
var (
	// ErrInvalidInput is returned when neither text nor audio was supplied.
	ErrInvalidInput = errors.New("either text or audio is required")

	// ErrExternalService is returned when the emotion recognizer could not produce a prediction.
	ErrExternalService = errors.New("emotion recognizer unavailable")
)

const (
	// DefaultFallbackPhrase is analyzed when audio fails and no text came with it.
	DefaultFallbackPhrase = "I'm sharing my mood through voice"

	// DefaultRecognizerTimeout bounds a single recognizer call.
	DefaultRecognizerTimeout = recognizer.DefaultTimeout
)

// Recognizer abstracts the speech emotion recognizer for testing.
type Recognizer interface {
	Predict(ctx context.Context, upload recognizer.Upload) (*recognizer.Prediction, error)
}

// Input is a single estimation request. At least one field must be non-empty.
type Input struct {
	Text           string
	AudioReference string
}

// Estimator produces mood assessments from text or audio.
type Estimator struct {
	recognizer     Recognizer
	newRand        func() *rand.Rand
	fallbackPhrase string
	timeout        time.Duration
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithRecognizer sets the recognizer used for audio input.
// Without one, every audio request falls back to the text path.
func WithRecognizer(r Recognizer) Option {
	return func(e *Estimator) {
		e.recognizer = r
	}
}

// WithRandSource sets the factory for the per-request random generator.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(e *Estimator) {
		if newRand != nil {
			e.newRand = newRand
		}
	}
}

// WithFallbackPhrase overrides the phrase analyzed when audio fails without text.
func WithFallbackPhrase(phrase string) Option {
	return func(e *Estimator) {
		if phrase != "" {
			e.fallbackPhrase = phrase
		}
	}
}

// WithTimeout bounds each recognizer call.
func WithTimeout(d time.Duration) Option {
	return func(e *Estimator) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEstimator creates an Estimator.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		newRand:        newRand,
		fallbackPhrase: DefaultFallbackPhrase,
		timeout:        DefaultRecognizerTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate produces one assessment for the input.
// Audio takes precedence over text. If the recognizer fails, the text path
// runs on the input text or the fallback phrase, and no error is returned.
func (e *Estimator) Estimate(ctx context.Context, in Input) (Result, error) {
	if in.Text == "" && in.AudioReference == "" {
		return Result{}, ErrInvalidInput
	}

	rng := e.newRand()

	if in.AudioReference == "" {
		return Result{
			Assessment:    AnalyzeText(in.Text, rng),
			Transcription: in.Text,
			Source:        SourceText,
		}, nil
	}

	assessment, err := e.analyzeAudio(ctx, in.AudioReference)
	if err == nil {
		return Result{
			Assessment:    assessment,
			Transcription: "Audio analysis detected: " + assessment.SourceDetail,
			Source:        SourceAudio,
		}, nil
	}
	if !errors.Is(err, ErrExternalService) {
		return Result{}, err
	}

	text := in.Text
	if text == "" {
		text = e.fallbackPhrase
	}
	log.Printf("WARN mood: audio analysis failed, falling back to text analysis: %v", err)

	return Result{
		Assessment:    AnalyzeText(text, rng),
		Transcription: text,
		Source:        SourceAudio,
		FellBack:      true,
	}, nil
}

// analyzeAudio sends the referenced audio to the recognizer.
// Every failure is reported as ErrExternalService.
func (e *Estimator) analyzeAudio(ctx context.Context, ref string) (Assessment, error) {
	upload, err := recognizer.ParseDataURI(ref)
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: decoding audio reference: %v", ErrExternalService, err)
	}

	info, err := audio.Probe(upload.Data)
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: probing audio: %v", ErrExternalService, err)
	}
	if info.Format != audio.FormatUnknown {
		if !strings.HasPrefix(upload.MediaType, "audio/") {
			upload.MediaType = info.MediaType
		}
		upload.Filename = "audio" + info.Extension
		log.Printf("mood: forwarding %s audio (%s, %d Hz)", info.Format, info.Duration, info.SampleRate)
	}

	if e.recognizer == nil {
		return Assessment{}, fmt.Errorf("%w: no recognizer configured", ErrExternalService)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	pred, err := e.recognizer.Predict(ctx, upload)
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	a := FromPrediction(pred.PredictedEmotion, pred.TopEmotions)
	a.RestorativeSongs = songsFromPrediction(pred)
	a.Explanation = pred.Explanation
	if a.Explanation == "" {
		a.Explanation = Explanation(pred.PredictedEmotion)
	}
	return a, nil
}

// songsFromPrediction uses the recognizer's suggestions, or the fallback table when it sent none.
func songsFromPrediction(pred *recognizer.Prediction) []Song {
	if len(pred.NeutralizingSongs) == 0 {
		return RestorativeSongs(pred.PredictedEmotion)
	}
	songs := make([]Song, 0, len(pred.NeutralizingSongs))
	for _, s := range pred.NeutralizingSongs {
		songs = append(songs, Song{Name: s.SongName, Link: s.Link})
	}
	return songs
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

package mood

// Assessment is the outcome of one mood estimation.
type Assessment struct {
	Label      Label   `json:"mood"`
	Energy     int     `json:"energy"`
	Valence    int     `json:"valence"`
	Intensity  int     `json:"intensity"`
	Confidence float64 `json:"confidence"`

	// Set only when the recognizer produced the assessment.
	RawCategoryScores map[string]float64 `json:"rawEmotions,omitempty"`
	SourceDetail      string             `json:"detectedEmotion,omitempty"`
	RestorativeSongs  []Song             `json:"neutralizingSongs,omitempty"`
	Explanation       string             `json:"emotionExplanation,omitempty"`
}

// Source names the kind of input an estimation was requested with.
type Source string

const (
	SourceAudio Source = "audio"
	SourceText  Source = "text"
)

// Result bundles an assessment with what was actually analyzed.
type Result struct {
	Assessment    Assessment `json:"analysis"`
	Transcription string     `json:"transcription"`
	Source        Source     `json:"source"`
	// FellBack is true when audio was supplied but the text path produced the assessment.
	FellBack bool `json:"fellBack,omitempty"`
}

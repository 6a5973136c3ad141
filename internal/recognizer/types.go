package recognizer

// Upload is an audio payload ready to send to the recognizer.
type Upload struct {
	Data      []byte
	MediaType string // e.g. "audio/wav"
	Filename  string
}

// Song is a restorative suggestion sent back by the recognizer.
type Song struct {
	SongName string `json:"song_name"`
	Link     string `json:"link"`
}

// Prediction is the recognizer's response body.
type Prediction struct {
	Filename          string             `json:"filename,omitempty"`
	ContentType       string             `json:"content_type,omitempty"`
	PredictedEmotion  string             `json:"predicted_emotion"`
	TopEmotions       map[string]float64 `json:"top_emotions"`
	NeutralizingSongs []Song             `json:"neutralizing_songs,omitempty"`
	Explanation       string             `json:"emotion_explanation,omitempty"`
}

// apiError is the error body returned by the recognizer on 4xx/5xx.
type apiError struct {
	Detail string `json:"detail"`
}

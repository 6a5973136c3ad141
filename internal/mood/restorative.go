package mood

// Song is a restorative suggestion for an emotion.
type Song struct {
	Name string `json:"song_name"`
	Link string `json:"link"`

	// Filled in when the song was resolved against Spotify.
	SpotifyURL string `json:"spotify_url,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// MaxRestorativeSongs caps the suggestion list.
const MaxRestorativeSongs = 5

var restorativeSongs = map[Emotion][]Song{
	EmotionAngry: {
		{Name: "Weightless - Marconi Union", Link: "https://www.youtube.com/watch?v=UfcAVejslrU"},
		{Name: "Clair de Lune - Claude Debussy", Link: "https://www.youtube.com/watch?v=CvFH_6DNRCY"},
		{Name: "Aqueous Transmission - Incubus", Link: "https://www.youtube.com/watch?v=eQK7KSTQfaw"},
		{Name: "Mad World - Gary Jules", Link: "https://www.youtube.com/watch?v=4N3N1MlvVc4"},
		{Name: "The Sound of Silence - Simon & Garfunkel", Link: "https://www.youtube.com/watch?v=4fWyzwo1xg0"},
	},
	EmotionSad: {
		{Name: "Happy - Pharrell Williams", Link: "https://www.youtube.com/watch?v=ZbZSe6N_BXs"},
		{Name: "Good Vibrations - The Beach Boys", Link: "https://www.youtube.com/watch?v=Eab_beh07HU"},
		{Name: "Don't Stop Me Now - Queen", Link: "https://www.youtube.com/watch?v=HgzGwKwLmgM"},
		{Name: "Walking on Sunshine - Katrina and the Waves", Link: "https://www.youtube.com/watch?v=iPUmE-tne5U"},
		{Name: "I Can See Clearly Now - Johnny Nash", Link: "https://www.youtube.com/watch?v=MrHxhQPOO2c"},
	},
	EmotionFear: {
		{Name: "Stronger - Kelly Clarkson", Link: "https://www.youtube.com/watch?v=Xn676-fLq7I"},
		{Name: "Fight Song - Rachel Platten", Link: "https://www.youtube.com/watch?v=xo1VInw-SKc"},
		{Name: "Roar - Katy Perry", Link: "https://www.youtube.com/watch?v=CevxZvSJLk8"},
		{Name: "Brave - Sara Bareilles", Link: "https://www.youtube.com/watch?v=QUQsqBqxoR4"},
		{Name: "Confident - Demi Lovato", Link: "https://www.youtube.com/watch?v=cwjjSmwc5ME"},
	},
}

var defaultRestorativeSongs = []Song{
	{Name: "Relaxing Piano Music", Link: "https://www.youtube.com/watch?v=1ZYbU82GVz4"},
	{Name: "Peaceful Nature Sounds", Link: "https://www.youtube.com/watch?v=eKFTSSKCzWA"},
	{Name: "Meditation Music", Link: "https://www.youtube.com/watch?v=lFcSrYw-ARY"},
	{Name: "Calm Instrumental", Link: "https://www.youtube.com/watch?v=M4QCh-yIPzA"},
	{Name: "Soothing Sounds", Link: "https://www.youtube.com/watch?v=nDq6TstdEi8"},
}

var explanations = map[Emotion]string{
	EmotionAngry:    "Calm and peaceful music can help reduce anger and promote relaxation.",
	EmotionSad:      "Uplifting and motivational music can help improve mood and boost spirits.",
	EmotionFear:     "Confident and empowering music can help build courage and reduce anxiety.",
	EmotionHappy:    "Relaxing music can help maintain your good mood without overstimulation.",
	EmotionNeutral:  "Popular music can help enhance your current balanced emotional state.",
	EmotionDisgust:  "Positive and feel-good music can help shift focus to more pleasant thoughts.",
	EmotionSurprise: "Familiar music can help ground you and provide emotional stability.",
}

const defaultExplanation = "Music therapy can help balance your emotional state."

// RestorativeSongs returns a copy of the fallback suggestions for a recognizer category.
func RestorativeSongs(emotion string) []Song {
	songs, ok := restorativeSongs[Emotion(normalize(emotion))]
	if !ok {
		songs = defaultRestorativeSongs
	}
	n := min(len(songs), MaxRestorativeSongs)
	out := make([]Song, n)
	copy(out, songs[:n])
	return out
}

// Explanation returns why restorative music helps with an emotion.
func Explanation(emotion string) string {
	if e, ok := explanations[Emotion(normalize(emotion))]; ok {
		return e
	}
	return defaultExplanation
}

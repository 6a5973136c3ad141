package mood

import (
	"strings"
)

// Emotion is a category reported by the speech emotion recognizer.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionFear     Emotion = "fear"
	EmotionSurprise Emotion = "surprise"
	EmotionDisgust  Emotion = "disgust"
	EmotionNeutral  Emotion = "neutral"
)

// profile is the fixed position of an emotion on the mood scale.
type profile struct {
	label     Label
	energy    int
	valence   int
	intensity int
}

var emotionProfiles = map[Emotion]profile{
	EmotionHappy:    {label: LabelEuphoric, energy: 85, valence: 90, intensity: 70},
	EmotionSad:      {label: LabelMelancholic, energy: 25, valence: 20, intensity: 60},
	EmotionAngry:    {label: LabelAngry, energy: 80, valence: 15, intensity: 95},
	EmotionFear:     {label: LabelAnxious, energy: 70, valence: 25, intensity: 85},
	EmotionSurprise: {label: LabelExcited, energy: 75, valence: 70, intensity: 80},
	EmotionDisgust:  {label: LabelFrustrated, energy: 40, valence: 30, intensity: 70},
	EmotionNeutral:  {label: LabelContemplative, energy: 50, valence: 50, intensity: 40},
}

// ParseEmotion normalizes a recognizer category. Unknown categories map to neutral.
func ParseEmotion(s string) Emotion {
	e := Emotion(normalize(s))
	if _, ok := emotionProfiles[e]; ok {
		return e
	}
	return EmotionNeutral
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Emotions returns every known recognizer category.
func Emotions() []Emotion {
	return []Emotion{
		EmotionHappy,
		EmotionSad,
		EmotionAngry,
		EmotionFear,
		EmotionSurprise,
		EmotionDisgust,
		EmotionNeutral,
	}
}

// FromPrediction builds an assessment from a recognizer prediction.
// Confidence is 100x the largest probability in scores.
func FromPrediction(predicted string, scores map[string]float64) Assessment {
	p := emotionProfiles[ParseEmotion(predicted)]

	var top float64
	for _, v := range scores {
		top = max(top, v)
	}

	return Assessment{
		Label:             p.label,
		Energy:            p.energy,
		Valence:           p.valence,
		Intensity:         p.intensity,
		Confidence:        top * 100,
		RawCategoryScores: scores,
		SourceDetail:      predicted,
	}
}

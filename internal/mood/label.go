// Package mood turns free text or recorded audio into a mood assessment.
package mood

import (
	"unicode"
	"unicode/utf8"
)

// Label is a coarse mood category.
type Label string

// Labels produced by the text classifier.
const (
	LabelEuphoric      Label = "euphoric"
	LabelUpbeat        Label = "upbeat"
	LabelContent       Label = "content"
	LabelPeaceful      Label = "peaceful"
	LabelMelancholic   Label = "melancholic"
	LabelContemplative Label = "contemplative"
	LabelFrustrated    Label = "frustrated"
	LabelAngry         Label = "angry"
)

// Labels only reachable through the audio recognizer.
const (
	LabelAnxious Label = "anxious"
	LabelExcited Label = "excited"
)

// Labels returns the eight classifier labels in classification order.
func Labels() []Label {
	return []Label{
		LabelEuphoric,
		LabelContent,
		LabelAngry,
		LabelMelancholic,
		LabelUpbeat,
		LabelFrustrated,
		LabelPeaceful,
		LabelContemplative,
	}
}

// String returns the label text.
func (l Label) String() string {
	return string(l)
}

// Title returns the label with its first letter upper-cased ("melancholic" -> "Melancholic").
func (l Label) Title() string {
	s := string(l)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Classify maps valence and energy onto a label.
// Extreme corners are checked before the moderate quadrants; anything
// sitting on a 50 boundary ends up contemplative.
func Classify(valence, energy int) Label {
	switch {
	case valence > 70 && energy > 70:
		return LabelEuphoric
	case valence > 70 && energy < 30:
		return LabelContent
	case valence < 30 && energy > 70:
		return LabelAngry
	case valence < 30 && energy < 30:
		return LabelMelancholic
	case valence > 50 && energy > 50:
		return LabelUpbeat
	case valence < 50 && energy > 50:
		return LabelFrustrated
	case valence > 50 && energy < 50:
		return LabelPeaceful
	default:
		return LabelContemplative
	}
}

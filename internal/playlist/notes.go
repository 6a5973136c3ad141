package playlist

import (
	"math/rand/v2"

	"github.com/justestif/go-moodtune/internal/mood"
)

var vibeNotes = map[mood.Label][3]string{
	mood.LabelEuphoric: {
		"This track's explosive energy matches your sky-high vibes perfectly!",
		"Pure sonic adrenaline for your euphoric state - let's gooo!",
		"This beat hits different when you're feeling on top of the world!",
	},
	mood.LabelUpbeat: {
		"This groove's got the perfect bounce for your positive energy!",
		"Uplifting vibes that'll keep your good mood rolling!",
		"This track's sunny disposition matches yours perfectly!",
	},
	mood.LabelContent: {
		"Smooth and satisfying - just like your current peaceful state!",
		"This mellow vibe complements your contentment beautifully!",
		"Perfect soundtrack for your zen moment!",
	},
	mood.LabelPeaceful: {
		"Gentle waves of sound for your tranquil mindset!",
		"This calming melody wraps around your peaceful energy!",
		"Serene vibes that honor your inner calm!",
	},
	mood.LabelMelancholic: {
		"This track understands your feels and gives them space to breathe!",
		"Sometimes we need music that sits with us in the quiet moments!",
		"Beautiful melancholy that validates your emotional depth!",
	},
	mood.LabelContemplative: {
		"Perfect for those deep-thinking moments you're having!",
		"This introspective vibe matches your reflective mood!",
		"Music for when your mind is wandering through thoughts!",
	},
	mood.LabelFrustrated: {
		"This beat's got edge to match your restless energy!",
		"Channel that frustration into this driving rhythm!",
		"Sometimes you need music with a little bite - here it is!",
	},
	mood.LabelAngry: {
		"This track's got the fire to match your intensity!",
		"Raw energy for when you need to let it all out!",
		"This beat's got your back on that rage - let it rip!",
	},
}

// notesFor returns the templates for a label; labels without their own set
// (including the recognizer-only ones) share the contemplative set.
func notesFor(label mood.Label) [3]string {
	if notes, ok := vibeNotes[label]; ok {
		return notes
	}
	return vibeNotes[mood.LabelContemplative]
}

func pickNote(label mood.Label, rng *rand.Rand) string {
	notes := notesFor(label)
	return notes[rng.IntN(len(notes))]
}

package timeline

// phaseName names a phase from its centroid using a 2x2 energy/valence
// quadrant table with an intensity modifier.
//
// Quadrants:
//   - High Energy + High Valence = "Bright & Energized"
//   - High Energy + Low Valence  = "Restless & Heated"
//   - Low Energy  + High Valence = "Calm & Content"
//   - Low Energy  + Low Valence  = "Low & Reflective"
//
// Intensity modifier: above 70 appends "(Intense)".
func phaseName(c Centroid) string {
	highEnergy := c.Energy > 60
	highValence := c.Valence > 50

	var name string
	switch {
	case highEnergy && highValence:
		name = "Bright & Energized"
	case highEnergy && !highValence:
		name = "Restless & Heated"
	case !highEnergy && highValence:
		name = "Calm & Content"
	default:
		name = "Low & Reflective"
	}

	if c.Intensity > 70 {
		return name + " (Intense)"
	}
	return name
}

// describe returns a one-line description of the phase quadrant.
func describe(c Centroid) string {
	switch {
	case c.Energy > 60 && c.Valence > 50:
		return "High energy and positive - a stretch of good momentum"
	case c.Energy > 60:
		return "Driven but tense - lots of energy with darker tones"
	case c.Valence > 50:
		return "Relaxed and settled - an easygoing stretch"
	default:
		return "Quiet and inward - a more reflective stretch"
	}
}

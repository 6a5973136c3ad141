package mood

import (
	"math/rand/v2"
	"strings"
)

const neutralScore = 50

// keywordRule adjusts the running scores when any of its words appears in the text.
type keywordRule struct {
	words []string
	apply func(s *scores)
}

type scores struct {
	energy    int
	valence   int
	intensity int
}

// textRules are evaluated in order; each clamps as it goes.
var textRules = []keywordRule{
	{
		words: []string{"tired", "exhausted", "sleepy"},
		apply: func(s *scores) { s.energy = max(10, s.energy-30) },
	},
	{
		words: []string{"energetic", "pumped", "excited"},
		apply: func(s *scores) { s.energy = min(90, s.energy+30) },
	},
	{
		words: []string{"sad", "depressed", "down", "upset"},
		apply: func(s *scores) { s.valence = max(10, s.valence-40) },
	},
	{
		words: []string{"happy", "joy", "great", "amazing"},
		apply: func(s *scores) { s.valence = min(90, s.valence+40) },
	},
	{
		words: []string{"angry", "furious", "rage"},
		apply: func(s *scores) {
			s.intensity = min(95, s.intensity+40)
			s.valence = max(10, s.valence-30)
		},
	},
	{
		words: []string{"calm", "peaceful", "relaxed"},
		apply: func(s *scores) { s.intensity = max(15, s.intensity-30) },
	},
}

// AnalyzeText scores text with keyword heuristics and classifies the result.
// Matching is substring based, so "download" counts as "down".
// Confidence is drawn uniformly from [70, 100) and says nothing about the input.
func AnalyzeText(text string, rng *rand.Rand) Assessment {
	lower := strings.ToLower(text)

	s := scores{energy: neutralScore, valence: neutralScore, intensity: neutralScore}
	for _, rule := range textRules {
		if containsAny(lower, rule.words) {
			rule.apply(&s)
		}
	}

	return Assessment{
		Label:      Classify(s.valence, s.energy),
		Energy:     s.energy,
		Valence:    s.valence,
		Intensity:  s.intensity,
		Confidence: rng.Float64()*30 + 70,
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

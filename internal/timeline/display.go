package timeline

import (
	"fmt"
	"strings"
)

const dateFormat = "2006-01-02 15:04"

// FormatSummary returns a human-readable summary of detected phases.
// Outliers are summarized by count only.
func FormatSummary(phases []Phase, outliers []Entry) string {
	var sb strings.Builder

	total := len(outliers)
	for _, p := range phases {
		total += p.Count
	}

	if len(phases) == 0 {
		sb.WriteString(fmt.Sprintf("No mood phases found from %d entries", total))
		if len(outliers) > 0 {
			sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	phaseWord := "phase"
	if len(phases) > 1 {
		phaseWord = "phases"
	}

	sb.WriteString(fmt.Sprintf("Found %d mood %s from %d entries", len(phases), phaseWord, total))
	if len(outliers) > 0 {
		sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
	}
	sb.WriteString("\n")

	for i, p := range phases {
		sb.WriteString("\n")
		sb.WriteString(formatPhase(i+1, p))
	}

	return sb.String()
}

func formatPhase(num int, p Phase) string {
	var sb strings.Builder

	entryWord := "entry"
	if p.Count > 1 {
		entryWord = "entries"
	}

	sb.WriteString(fmt.Sprintf("Phase %d: %s [%s] (%d %s)\n", num, p.Name, p.Label, p.Count, entryWord))
	if !p.Start.IsZero() {
		sb.WriteString(fmt.Sprintf("  %s to %s\n", p.Start.Format(dateFormat), p.End.Format(dateFormat)))
	}
	sb.WriteString(fmt.Sprintf("  energy %.0f, valence %.0f, intensity %.0f\n",
		p.Centroid.Energy, p.Centroid.Valence, p.Centroid.Intensity))
	sb.WriteString(fmt.Sprintf("  %s\n", describe(p.Centroid)))

	return sb.String()
}

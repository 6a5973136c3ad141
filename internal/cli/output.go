package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/playlist"
)

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, r mood.Result) error {
	a := r.Assessment
	source := string(r.Source)
	if r.FellBack {
		source += " (text fallback)"
	}

	rows := [][]string{
		{"Mood", a.Label.String()},
		{"Energy", strconv.Itoa(a.Energy)},
		{"Valence", strconv.Itoa(a.Valence)},
		{"Intensity", strconv.Itoa(a.Intensity)},
		{"Confidence", fmt.Sprintf("%.0f%%", a.Confidence)},
		{"Source", source},
		{"Transcription", r.Transcription},
	}
	if a.SourceDetail != "" {
		rows = append(rows, []string{"Detected emotion", a.SourceDetail})
	}
	if err := renderTable(w, []string{"Field", "Value"}, rows); err != nil {
		return err
	}

	if len(a.RestorativeSongs) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	return printSongs(w, a.Explanation, a.RestorativeSongs)
}

func printPlaylist(w io.Writer, p playlist.Playlist) error {
	fmt.Fprintf(w, "%s\n%s\n\n", p.Name, p.Description)

	rows := make([][]string, 0, len(p.Tracks))
	for i, t := range p.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Title,
			t.Artist,
			t.Duration,
			fmt.Sprintf("%d%%", t.MoodMatch),
			t.VibeNote,
		})
	}
	return renderTable(w, []string{"#", "Title", "Artist", "Length", "Match", "Note"}, rows)
}

func printSongs(w io.Writer, explanation string, songs []mood.Song) error {
	if explanation != "" {
		fmt.Fprintln(w, explanation)
	}

	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		link := s.Link
		if s.SpotifyURL != "" {
			link = s.SpotifyURL
		}
		rows = append(rows, []string{s.Name, s.Duration, link})
	}
	return renderTable(w, []string{"Song", "Length", "Link"}, rows)
}

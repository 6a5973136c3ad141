package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/playlist"
)

func newPlaylistCmd(a *app) *cobra.Command {
	var (
		moodLabel                  string
		energy, valence, intensity int
		surprise, asJSON           bool
	)

	cmd := &cobra.Command{
		Use:     "playlist",
		Short:   "Builds a playlist for a mood",
		Args:    cobra.NoArgs,
		Example: `  moodtune playlist --mood melancholic --energy 20 --valence 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := playlist.Request{MoodLabel: moodLabel, Surprise: surprise}
			if cmd.Flags().Changed("energy") {
				req.Energy = &energy
			}
			if cmd.Flags().Changed("valence") {
				req.Valence = &valence
			}
			if cmd.Flags().Changed("intensity") {
				req.Intensity = &intensity
			}

			p, err := playlist.NewSelector().Generate(req)
			if errors.Is(err, playlist.ErrInvalidInput) {
				return errors.New("--mood must not be blank")
			}
			if err != nil {
				return fmt.Errorf("generating playlist: %w", err)
			}

			if asJSON {
				return writeJSON(a.out, p)
			}
			return printPlaylist(a.out, p)
		},
	}

	cmd.Flags().StringVarP(&moodLabel, "mood", "m", "", "mood label ("+strings.Join(labelNames(), ", ")+")")
	cmd.Flags().IntVar(&energy, "energy", playlist.DefaultDimension, "energy 0-100")
	cmd.Flags().IntVar(&valence, "valence", playlist.DefaultDimension, "valence 0-100")
	cmd.Flags().IntVar(&intensity, "intensity", playlist.DefaultDimension, "intensity 0-100")
	cmd.Flags().BoolVar(&surprise, "surprise", false, "use the surprise playlist name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the playlist as JSON")
	_ = cmd.MarkFlagRequired("mood")
	_ = cmd.RegisterFlagCompletionFunc("mood", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var matches []string
		for _, name := range labelNames() {
			if strings.HasPrefix(name, toComplete) {
				matches = append(matches, name)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// labelNames lists the classifier labels for help text and completion.
func labelNames() []string {
	labels := mood.Labels()
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.String()
	}
	return names
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/go-moodtune/internal/mood"
)

func newSongsCmd(a *app) *cobra.Command {
	emotions := emotionNames()

	return &cobra.Command{
		Use:   "songs <emotion>",
		Short: "Lists restorative songs for a recognizer emotion",
		Long: "Lists songs meant to balance an emotion (" + strings.Join(emotions, ", ") + ").\n" +
			"Unknown emotions get a general list.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: emotions,
		Example:   `  moodtune songs fear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			emotion := strings.ToLower(strings.TrimSpace(args[0]))
			songs := a.resolveSongs(cmd.Context(), mood.RestorativeSongs(emotion))
			return printSongs(a.out, mood.Explanation(emotion), songs)
		},
	}
}

func emotionNames() []string {
	emotions := mood.Emotions()
	names := make([]string, len(emotions))
	for i, e := range emotions {
		names[i] = string(e)
	}
	return names
}

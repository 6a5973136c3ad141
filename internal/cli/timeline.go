package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/justestif/go-moodtune/internal/timeline"
)

func newTimelineCmd(a *app) *cobra.Command {
	cfg := timeline.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "timeline <history.json>",
		Short: "Groups a mood history into phases",
		Long: `Groups a mood history into phases of similar energy and valence.

The file holds a JSON array of entries:

  [{"mood": "upbeat", "energy": 70, "valence": 65, "intensity": 50, "at": "2024-06-01T09:00:00Z"}]

Use "-" to read from standard input. Entries without "at" are stamped with the current time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readEntries(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			phases, outliers, err := timeline.Detect(entries, cfg)
			if err != nil {
				return fmt.Errorf("detecting phases: %w", err)
			}

			fmt.Fprint(a.out, timeline.FormatSummary(phases, outliers))
			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.NumPhases, "phases", "k", cfg.NumPhases, "number of phases to look for")
	cmd.Flags().IntVar(&cfg.MinPhaseSize, "min-size", cfg.MinPhaseSize, "smallest group reported as a phase")

	return cmd
}

func readEntries(path string, stdin io.Reader) ([]timeline.Entry, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []timeline.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}

	now := time.Now()
	for i := range entries {
		if entries[i].At.IsZero() {
			entries[i].At = now
		}
	}
	return entries, nil
}

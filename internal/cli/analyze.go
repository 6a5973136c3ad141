package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/go-moodtune/internal/audio"
	"github.com/justestif/go-moodtune/internal/mood"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var audioPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Estimates the mood of text or a voice recording",
		Example: `  moodtune analyze "I'm so energetic and happy!"
  moodtune analyze --audio clip.wav --recognizer-url http://localhost:8000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := mood.Input{Text: strings.Join(args, " ")}
			if audioPath != "" {
				ref, err := audioDataURI(audioPath)
				if err != nil {
					return err
				}
				in.AudioReference = ref
			}

			result, err := a.estimator().Estimate(cmd.Context(), in)
			if errors.Is(err, mood.ErrInvalidInput) {
				return errors.New("give some text or --audio")
			}
			if err != nil {
				return fmt.Errorf("analyzing mood: %w", err)
			}
			result.Assessment.RestorativeSongs = a.resolveSongs(cmd.Context(), result.Assessment.RestorativeSongs)

			if asJSON {
				return writeJSON(a.out, result)
			}
			return printResult(a.out, result)
		},
	}

	cmd.Flags().StringVar(&audioPath, "audio", "", "recording to analyze (wav, mp3, webm, ...)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

// audioDataURI reads a recording into a base64 data URI.
func audioDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading audio: %w", err)
	}

	mediaType := "application/octet-stream"
	if info, err := audio.Probe(data); err == nil && info.MediaType != "" {
		mediaType = info.MediaType
	} else if ext := filepath.Ext(path); ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			mediaType = mt
		} else {
			mediaType = "audio/" + strings.ToLower(strings.TrimPrefix(ext, "."))
		}
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

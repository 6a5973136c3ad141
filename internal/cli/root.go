// Package cli implements the moodtune command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/justestif/go-moodtune/internal/config"
	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/recognizer"
	"github.com/justestif/go-moodtune/internal/spotify"
)

// configKeys are the settings that may also be given as flags.
var configKeys = []string{
	config.KeyAddr,
	config.KeyRecognizerURL,
	config.KeyRecognizerTimeout,
	config.KeyAllowedOrigins,
	config.KeySpotifyMarket,
	config.KeyFallbackPhrase,
}

// app carries state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	out     io.Writer
}

func newApp() *app {
	return &app{v: viper.New(), out: os.Stdout}
}

// NewRootCmd builds the moodtune command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "moodtune",
		Short: "Estimates moods and suggests music to match them",
		Long: `moodtune estimates a mood from free text or a voice recording and
builds playlists and restorative song suggestions for it.

Run "moodtune serve" for the HTTP API, or use the other commands directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			if err := bindFlags(a.v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.moodtune.yaml)")
	flags.String("recognizer-url", "", "speech emotion recognizer base URL (audio falls back to text analysis when empty)")
	flags.Duration("recognizer-timeout", config.DefaultRecognizerTimeout, "timeout for a single recognizer call")
	flags.String("spotify-market", config.DefaultSpotifyMarket, "Spotify market used when resolving songs")
	flags.String("fallback-phrase", config.DefaultFallbackPhrase, "text analyzed when audio analysis fails without text")

	root.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newPlaylistCmd(a),
		newSongsCmd(a),
		newTimelineCmd(a),
	)

	return root
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindFlags binds flags that mirror config keys, so "--recognizer-url"
// overrides recognizer_url from the file or environment.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err != nil || !slices.Contains(configKeys, key) {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("binding flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

// recognizerClient returns a client for the configured recognizer,
// or recognizer.ErrMissingURL when none is set.
func (a *app) recognizerClient() (*recognizer.Client, error) {
	rc := &recognizer.Config{
		BaseURL: a.cfg.RecognizerURL,
		Timeout: a.cfg.RecognizerTimeout,
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return recognizer.NewClient(rc), nil
}

func (a *app) estimator() *mood.Estimator {
	opts := []mood.Option{
		mood.WithTimeout(a.cfg.RecognizerTimeout),
		mood.WithFallbackPhrase(a.cfg.FallbackPhrase),
	}
	if client, err := a.recognizerClient(); err == nil {
		opts = append(opts, mood.WithRecognizer(client))
	}
	return mood.NewEstimator(opts...)
}

// songResolver returns nil when no Spotify credentials are configured.
func (a *app) songResolver(ctx context.Context) (*spotify.Resolver, error) {
	if !a.cfg.SpotifyEnabled() {
		return nil, nil
	}

	client, err := spotify.New(ctx, &spotify.Config{
		ClientID:     a.cfg.SpotifyID,
		ClientSecret: a.cfg.SpotifySecret,
		Market:       a.cfg.SpotifyMarket,
	})
	if err != nil {
		return nil, fmt.Errorf("creating spotify client: %w", err)
	}
	return spotify.NewResolver(client), nil
}

// resolveSongs attaches Spotify links when credentials are configured.
// Failing to reach Spotify only costs the links.
func (a *app) resolveSongs(ctx context.Context, songs []mood.Song) []mood.Song {
	if len(songs) == 0 {
		return songs
	}
	resolver, err := a.songResolver(ctx)
	if err != nil {
		log.Printf("WARN %v", err)
		return songs
	}
	if resolver == nil {
		return songs
	}
	return resolver.Resolve(ctx, songs)
}

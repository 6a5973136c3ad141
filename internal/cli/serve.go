package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/justestif/go-moodtune/internal/config"
	"github.com/justestif/go-moodtune/internal/playlist"
	"github.com/justestif/go-moodtune/internal/timeline"
	"github.com/justestif/go-moodtune/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := a.newServer(cmd)
			if err != nil {
				return err
			}
			return server.Run()
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringSlice("allowed-origins", nil, "origins allowed to call the API from a browser (\"*\" for any)")

	return cmd
}

func (a *app) newServer(cmd *cobra.Command) (*web.Server, error) {
	ctx := cmd.Context()

	if client, err := a.recognizerClient(); err != nil {
		log.Printf("WARN %v; audio requests will use text analysis", err)
	} else if err := client.Ping(ctx); err != nil {
		log.Printf("WARN recognizer at %s is not answering: %v", a.cfg.RecognizerURL, err)
	}

	cfg := web.ServerConfig{
		Addr:           a.cfg.Addr,
		AllowedOrigins: a.cfg.AllowedOrigins,
		Estimator:      a.estimator(),
		Playlists:      playlist.NewSelector(),
		Timeline:       timeline.DefaultConfig(),
	}

	resolver, err := a.songResolver(ctx)
	if err != nil {
		return nil, err
	}
	if resolver != nil {
		cfg.Resolver = resolver
		log.Printf("Resolving restorative songs against Spotify (market %s)", a.cfg.SpotifyMarket)
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	return server, nil
}

// Package spotify resolves song suggestions against the Spotify Web API.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultMarket is used when no market is configured.
const DefaultMarket = "US"

var (
	// ErrMissingCredentials is returned when the client ID or secret is not set.
	ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

	// ErrNotFound is returned when a search has no track results.
	ErrNotFound = errors.New("no matching track")
)

// Config holds Spotify app credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	Market       string // ISO 3166-1 alpha-2 code, e.g. "US"
}

// Validate checks that the credentials are present.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Match is the best search result for a song.
type Match struct {
	ID         string
	Name       string
	Artist     string // Comma-separated artist names
	URL        string
	PreviewURL string
	Duration   time.Duration
}

// Client wraps the Spotify API client with app-level (client credentials) auth.
type Client struct {
	api    *spotify.Client
	market string
}

// New creates a Client authenticated with the client credentials flow.
// Tokens are fetched lazily and refreshed by the oauth2 transport.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	market := cfg.Market
	if market == "" {
		market = DefaultMarket
	}

	return &Client{
		api:    spotify.New(creds.Client(ctx)),
		market: market,
	}, nil
}

// SearchTrack returns the top track result for a free-text query.
func (c *Client) SearchTrack(ctx context.Context, query string) (*Match, error) {
	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack,
		spotify.Limit(1),
		spotify.Market(c.market),
	)
	if err != nil {
		return nil, fmt.Errorf("searching tracks: %w", err)
	}

	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return nil, ErrNotFound
	}

	m := convertTrack(result.Tracks.Tracks[0])
	return &m, nil
}

// convertTrack converts a Spotify FullTrack to a Match.
func convertTrack(t spotify.FullTrack) Match {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	return Match{
		ID:         t.ID.String(),
		Name:       t.Name,
		Artist:     strings.Join(artists, ", "),
		URL:        t.ExternalURLs["spotify"],
		PreviewURL: t.PreviewURL,
		Duration:   t.TimeDuration(),
	}
}

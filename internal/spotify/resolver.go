package spotify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/time/rate"

	"github.com/justestif/go-moodtune/internal/mood"
)

// Defaults for batch resolution.
const (
	DefaultConcurrency = 3
	DefaultAttempts    = 3
	DefaultRetryDelay  = 200 * time.Millisecond
	DefaultRate        = rate.Limit(5) // searches per second
)

// Searcher abstracts the Spotify client for testing.
type Searcher interface {
	SearchTrack(ctx context.Context, query string) (*Match, error)
}

// Resolver attaches Spotify links to restorative song suggestions.
type Resolver struct {
	searcher    Searcher
	limiter     *rate.Limiter
	cache       *matchCache
	concurrency int
	attempts    uint
	delay       time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithConcurrency sets the number of concurrent searches.
func WithConcurrency(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithRateLimit sets the search rate and burst.
func WithRateLimit(limit rate.Limit, burst int) ResolverOption {
	return func(r *Resolver) {
		r.limiter = rate.NewLimiter(limit, max(1, burst))
	}
}

// WithRetry sets the number of attempts per search and the base delay between them.
func WithRetry(attempts uint, delay time.Duration) ResolverOption {
	return func(r *Resolver) {
		if attempts > 0 {
			r.attempts = attempts
		}
		r.delay = delay
	}
}

// NewResolver creates a Resolver.
func NewResolver(searcher Searcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		searcher:    searcher,
		limiter:     rate.NewLimiter(DefaultRate, 1),
		cache:       newMatchCache(CacheTTL),
		concurrency: DefaultConcurrency,
		attempts:    DefaultAttempts,
		delay:       DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a copy of songs with Spotify fields filled in where a match
// was found. Failures leave a song unresolved and are only logged.
// Results are returned in the same order as the input.
func (r *Resolver) Resolve(ctx context.Context, songs []mood.Song) []mood.Song {
	out := make([]mood.Song, len(songs))
	copy(out, songs)
	if len(songs) == 0 {
		return out
	}

	workCh := make(chan int, len(songs))
	for i := range songs {
		workCh <- i
	}
	close(workCh)

	var wg sync.WaitGroup
	for i := 0; i < r.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				if ctx.Err() != nil {
					continue
				}

				m, err := r.lookup(ctx, out[idx].Name)
				if err != nil {
					if !errors.Is(err, ErrNotFound) {
						log.Printf("WARN spotify: resolving %q: %v", out[idx].Name, err)
					}
					continue
				}
				applyMatch(&out[idx], m)
			}
		}()
	}

	wg.Wait()
	return out
}

// lookup searches for one song, consulting the cache first.
func (r *Resolver) lookup(ctx context.Context, name string) (*Match, error) {
	query := searchQuery(name)
	if query == "" {
		return nil, ErrNotFound
	}

	if m, ok := r.cache.get(query); ok {
		if m == nil {
			return nil, ErrNotFound
		}
		return m, nil
	}

	var match *Match
	err := retry.Do(
		func() error {
			if err := r.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			var err error
			match, err = r.searcher.SearchTrack(ctx, query)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
	if errors.Is(err, ErrNotFound) {
		r.cache.put(query, nil)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	r.cache.put(query, match)
	return match, nil
}

// isRetryable reports whether a search error is worth another attempt:
// rate limiting, server errors and transport failures are, the rest are not.
func isRetryable(err error) bool {
	if !retry.IsRecoverable(err) {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == 429 || apiErr.Status >= 500
	}
	return true
}

// searchQuery turns a "Title - Artist" suggestion into a Spotify field query.
// Names without an artist part are searched as free text.
func searchQuery(name string) string {
	title, artist, ok := strings.Cut(name, " - ")
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if !ok || title == "" || artist == "" {
		return strings.TrimSpace(name)
	}
	return fmt.Sprintf("track:%s artist:%s", title, artist)
}

func applyMatch(s *mood.Song, m *Match) {
	s.SpotifyURL = m.URL
	s.PreviewURL = m.PreviewURL
	if m.Duration > 0 {
		s.Duration = formatDuration(m.Duration)
	}
}

// formatDuration renders a track length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

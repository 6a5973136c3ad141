// Package catalog holds the fixed track catalog playlists are drawn from.
package catalog

// Track is a catalog entry.
type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album,omitempty"`
	Duration    string `json:"duration,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// tracks is read-only after init; All hands out copies.
var tracks = [...]Track{
	{
		ID:          "1",
		Title:       "Blinding Lights",
		Artist:      "The Weeknd",
		Album:       "After Hours",
		Duration:    "3:20",
		PreviewURL:  "https://example.com/preview1.mp3",
		ExternalURL: "https://open.spotify.com/track/example1",
	},
	{
		ID:          "2",
		Title:       "Good 4 U",
		Artist:      "Olivia Rodrigo",
		Album:       "SOUR",
		Duration:    "2:58",
		PreviewURL:  "https://example.com/preview2.mp3",
		ExternalURL: "https://open.spotify.com/track/example2",
	},
	{
		ID:          "3",
		Title:       "Levitating",
		Artist:      "Dua Lipa",
		Album:       "Future Nostalgia",
		Duration:    "3:23",
		PreviewURL:  "https://example.com/preview3.mp3",
		ExternalURL: "https://open.spotify.com/track/example3",
	},
	{
		ID:          "4",
		Title:       "Watermelon Sugar",
		Artist:      "Harry Styles",
		Album:       "Fine Line",
		Duration:    "2:54",
		PreviewURL:  "https://example.com/preview4.mp3",
		ExternalURL: "https://open.spotify.com/track/example4",
	},
	{
		ID:          "5",
		Title:       "drivers license",
		Artist:      "Olivia Rodrigo",
		Album:       "SOUR",
		Duration:    "4:02",
		PreviewURL:  "https://example.com/preview5.mp3",
		ExternalURL: "https://open.spotify.com/track/example5",
	},
	{
		ID:          "6",
		Title:       "Stay",
		Artist:      "The Kid LAROI & Justin Bieber",
		Album:       "F*CK LOVE 3: OVER YOU",
		Duration:    "2:21",
		PreviewURL:  "https://example.com/preview6.mp3",
		ExternalURL: "https://open.spotify.com/track/example6",
	},
	{
		ID:          "7",
		Title:       "Heat Waves",
		Artist:      "Glass Animals",
		Album:       "Dreamland",
		Duration:    "3:58",
		PreviewURL:  "https://example.com/preview7.mp3",
		ExternalURL: "https://open.spotify.com/track/example7",
	},
	{
		ID:          "8",
		Title:       "As It Was",
		Artist:      "Harry Styles",
		Album:       "Harry's House",
		Duration:    "2:47",
		PreviewURL:  "https://example.com/preview8.mp3",
		ExternalURL: "https://open.spotify.com/track/example8",
	},
	{
		ID:          "9",
		Title:       "Anti-Hero",
		Artist:      "Taylor Swift",
		Album:       "Midnights",
		Duration:    "3:20",
		PreviewURL:  "https://example.com/preview9.mp3",
		ExternalURL: "https://open.spotify.com/track/example9",
	},
	{
		ID:          "10",
		Title:       "Flowers",
		Artist:      "Miley Cyrus",
		Album:       "Endless Summer Vacation",
		Duration:    "3:20",
		PreviewURL:  "https://example.com/preview10.mp3",
		ExternalURL: "https://open.spotify.com/track/example10",
	},
}

// Size is the number of catalog entries.
const Size = len(tracks)

// All returns a fresh copy of the catalog. Callers may reorder it freely.
func All() []Track {
	out := make([]Track, Size)
	copy(out, tracks[:])
	return out
}

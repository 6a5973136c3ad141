package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/recognizer"
)

// isolate points HOME at an empty directory and clears moodtune variables.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	for _, key := range []string{
		"MOODTUNE_ADDR", "MOODTUNE_RECOGNIZER_URL", "MOODTUNE_RECOGNIZER_TIMEOUT",
		"MOODTUNE_ALLOWED_ORIGINS", "MOODTUNE_SPOTIFY_ID", "MOODTUNE_SPOTIFY_SECRET",
		"MOODTUNE_SPOTIFY_MARKET", "MOODTUNE_FALLBACK_PHRASE", "SPOTIFY_ID", "SPOTIFY_SECRET",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// run executes the command tree with args and returns its output.
func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, newApp(), "analyze", "I'm", "feeling", "tired", "and", "sad")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"melancholic", "I'm feeling tired and sad", "text"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeCmd_NoInput(t *testing.T) {
	isolate(t)

	if _, err := run(t, newApp(), "analyze"); err == nil {
		t.Error("analyze without input: error = nil, want error")
	}
}

func TestAnalyzeCmd_Audio(t *testing.T) {
	isolate(t)

	var gotFile string
	rec := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, header, err := r.FormFile("audio_file"); err == nil {
			gotFile = header.Filename
		}
		json.NewEncoder(w).Encode(recognizer.Prediction{
			PredictedEmotion: "sad",
			TopEmotions:      map[string]float64{"sad": 0.75},
		})
	}))
	defer rec.Close()

	clip := filepath.Join(t.TempDir(), "clip.webm")
	if err := os.WriteFile(clip, []byte{0x1A, 0x45, 0xDF, 0xA3, 0x01}, 0600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, newApp(), "analyze", "--json", "--audio", clip, "--recognizer-url", rec.URL)
	if err != nil {
		t.Fatalf("analyze --audio: %v", err)
	}

	var result mood.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if result.Source != mood.SourceAudio || result.FellBack {
		t.Errorf("source = %q, fellBack = %v, want audio without fallback", result.Source, result.FellBack)
	}
	if result.Assessment.Label != mood.LabelMelancholic {
		t.Errorf("mood = %q, want melancholic", result.Assessment.Label)
	}
	if result.Transcription != "Audio analysis detected: sad" {
		t.Errorf("transcription = %q", result.Transcription)
	}
	if len(result.Assessment.RestorativeSongs) == 0 {
		t.Error("no restorative songs in result")
	}
	if gotFile == "" {
		t.Error("recognizer received no audio_file")
	}
}

func TestAudioDataURI(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		file       string
		data       []byte
		wantPrefix string
	}{
		{"mp3 by content", "voice.bin", []byte("ID3\x03\x00\x00\x00\x00\x00\x00"), "data:audio/mpeg;base64,"},
		{"unregistered extension", "voice.moodclip", []byte{0x4F, 0x67, 0x67, 0x53}, "data:audio/moodclip;base64,"},
		{"no extension", "voice", []byte{0x00, 0x01}, "data:application/octet-stream;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, tt.data, 0600); err != nil {
				t.Fatal(err)
			}

			got, err := audioDataURI(path)
			if err != nil {
				t.Fatalf("audioDataURI() error = %v", err)
			}
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("audioDataURI() = %q, want prefix %q", got, tt.wantPrefix)
			}

			upload, err := recognizer.ParseDataURI(got)
			if err != nil {
				t.Fatalf("ParseDataURI() error = %v", err)
			}
			if !bytes.Equal(upload.Data, tt.data) {
				t.Errorf("round trip lost data: got %v, want %v", upload.Data, tt.data)
			}
		})
	}

	if _, err := audioDataURI(filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("audioDataURI() on a missing file: error = nil")
	}
}

func TestPlaylistCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, newApp(), "playlist", "--mood", "upbeat", "--energy", "70")
	if err != nil {
		t.Fatalf("playlist: %v", err)
	}
	if !strings.Contains(out, "Upbeat Vibes") {
		t.Errorf("output missing playlist name:\n%s", out)
	}
	if !strings.Contains(out, "A personalized playlist crafted for your upbeat mood") {
		t.Errorf("output missing description:\n%s", out)
	}
}

func TestPlaylistCmd_JSON(t *testing.T) {
	isolate(t)

	out, err := run(t, newApp(), "playlist", "--mood", "angry", "--surprise", "--json")
	if err != nil {
		t.Fatalf("playlist --json: %v", err)
	}

	var p struct {
		Name   string `json:"name"`
		Tracks []struct {
			MoodMatch int `json:"mood_match"`
		} `json:"tracks"`
	}
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if p.Name != "🎲 Surprise Remix Vibes" {
		t.Errorf("name = %q", p.Name)
	}
	if len(p.Tracks) != 5 {
		t.Errorf("got %d tracks, want 5", len(p.Tracks))
	}
}

func TestPlaylistCmd_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing mood", []string{"playlist"}},
		{"blank mood", []string{"playlist", "--mood", "  "}},
		{"bad energy", []string{"playlist", "--mood", "upbeat", "--energy", "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, newApp(), tt.args...); err == nil {
				t.Errorf("%v: error = nil, want error", tt.args)
			}
		})
	}
}

func TestSongsCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, newApp(), "songs", "FEAR")
	if err != nil {
		t.Fatalf("songs: %v", err)
	}
	if !strings.Contains(out, "Stronger - Kelly Clarkson") {
		t.Errorf("output missing first fear song:\n%s", out)
	}
	if !strings.Contains(out, mood.Explanation("fear")) {
		t.Errorf("output missing explanation:\n%s", out)
	}
}

func TestTimelineCmd(t *testing.T) {
	isolate(t)

	history := `[
		{"mood": "euphoric", "energy": 80, "valence": 90, "intensity": 60, "at": "2024-06-01T09:00:00Z"},
		{"mood": "euphoric", "energy": 90, "valence": 80, "intensity": 80, "at": "2024-06-02T09:00:00Z"},
		{"mood": "upbeat", "energy": 70, "valence": 70, "intensity": 70}
	]`
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(history), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, newApp(), "timeline", path, "--phases", "1")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	for _, want := range []string{"Found 1 mood phase from 3 entries", "Bright & Energized"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTimelineCmd_Errors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{empty, garbage, filepath.Join(dir, "missing.json")} {
		if _, err := run(t, newApp(), "timeline", path); err == nil {
			t.Errorf("timeline %s: error = nil, want error", filepath.Base(path))
		}
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	isolate(t)
	t.Setenv("MOODTUNE_SPOTIFY_MARKET", "DE")
	t.Setenv("MOODTUNE_RECOGNIZER_TIMEOUT", "5s")

	a := newApp()
	if _, err := run(t, a, "songs", "sad", "--recognizer-timeout", "3s"); err != nil {
		t.Fatalf("songs: %v", err)
	}

	if a.cfg.RecognizerTimeout != 3*time.Second {
		t.Errorf("RecognizerTimeout = %v, want the flag value 3s", a.cfg.RecognizerTimeout)
	}
	if a.cfg.SpotifyMarket != "DE" {
		t.Errorf("SpotifyMarket = %q, want DE from the environment", a.cfg.SpotifyMarket)
	}
}

func TestServeCmd_BuildsServer(t *testing.T) {
	isolate(t)

	a := newApp()
	root := newRootCmd(a)
	root.SetArgs([]string{"serve", "--addr", ":0", "--allowed-origins", "https://a.example,https://b.example"})

	serve, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatal(err)
	}
	// Replace the blocking run with a construction check.
	serve.RunE = func(cmd *cobra.Command, args []string) error {
		_, err := a.newServer(cmd)
		return err
	}

	if err := root.Execute(); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if a.cfg.Addr != ":0" {
		t.Errorf("Addr = %q, want :0", a.cfg.Addr)
	}
	if len(a.cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want two origins", a.cfg.AllowedOrigins)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantNot []string
	}{
		{"playlist moods", []string{"__complete", "playlist", "--mood", ""}, labelNames(), nil},
		{"playlist mood prefix", []string{"__complete", "playlist", "--mood", "mel"}, []string{"melancholic"}, []string{"euphoric"}},
		{"song emotions", []string{"__complete", "songs", ""}, emotionNames(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, newApp(), tt.args...)
			if err != nil {
				t.Fatalf("%v: %v", tt.args, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want+"\n") {
					t.Errorf("completions missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.wantNot {
				if strings.Contains(out, unwanted+"\n") {
					t.Errorf("completions include %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestHelpListsChoices(t *testing.T) {
	isolate(t)

	out, err := run(t, newApp(), "playlist", "--help")
	if err != nil {
		t.Fatalf("playlist --help: %v", err)
	}
	for _, label := range mood.Labels() {
		if !strings.Contains(out, label.String()) {
			t.Errorf("playlist help missing label %q", label)
		}
	}

	out, err = run(t, newApp(), "songs", "--help")
	if err != nil {
		t.Fatalf("songs --help: %v", err)
	}
	for _, e := range mood.Emotions() {
		if !strings.Contains(out, string(e)) {
			t.Errorf("songs help missing emotion %q", e)
		}
	}
}

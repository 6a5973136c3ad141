// Package audio inspects uploaded audio payloads before they are forwarded.
package audio

import (
	"bytes"
	"errors"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// Sentinel errors.
var (
	// ErrEmpty is returned for a zero-length payload.
	ErrEmpty = errors.New("empty audio payload")

	// ErrInvalidWAV is returned when a RIFF/WAVE payload has no usable format chunk.
	ErrInvalidWAV = errors.New("invalid wav header")
)

// Format is a recognized container format.
type Format string

const (
	FormatWAV     Format = "wav"
	FormatMP3     Format = "mp3"
	FormatUnknown Format = "unknown"
)

// Info describes a probed payload. Zero fields mean "not known".
type Info struct {
	Format     Format
	MediaType  string
	Extension  string
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Probe sniffs the payload format and reads what metadata it can.
// Unrecognized payloads are not an error: browsers commonly record webm/ogg,
// which the recognizer accepts as-is.
func Probe(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmpty
	}

	switch {
	case isWAV(data):
		return probeWAV(data)
	case isMP3(data):
		return probeMP3(data), nil
	default:
		return Info{Format: FormatUnknown}, nil
	}
}

func isWAV(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WAVE"))
}

func isMP3(data []byte) bool {
	if bytes.HasPrefix(data, []byte("ID3")) {
		return true
	}
	// MPEG frame sync: 11 set bits.
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

func probeWAV(data []byte) (Info, error) {
	info := Info{Format: FormatWAV, MediaType: "audio/wav", Extension: ".wav"}

	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return info, ErrInvalidWAV
	}

	info.SampleRate = int(d.SampleRate)
	info.Channels = int(d.NumChans)
	info.BitDepth = int(d.BitDepth)

	// A truncated recording still has a usable header; keep what we have.
	if dur, err := d.Duration(); err == nil {
		info.Duration = dur
	}
	return info, nil
}

// pcmFrameSize is the byte size of one decoded go-mp3 sample frame (16-bit stereo).
const pcmFrameSize = 4

func probeMP3(data []byte) Info {
	info := Info{Format: FormatMP3, MediaType: "audio/mpeg", Extension: ".mp3"}

	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return info
	}

	info.SampleRate = d.SampleRate()
	info.Channels = 2
	if n := d.Length(); n > 0 && info.SampleRate > 0 {
		frames := n / pcmFrameSize
		info.Duration = time.Duration(frames) * time.Second / time.Duration(info.SampleRate)
	}
	return info
}

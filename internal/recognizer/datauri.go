package recognizer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidReference is returned when an audio reference cannot be decoded.
var ErrInvalidReference = errors.New("invalid audio reference")

const defaultFilename = "audio.wav"

// ParseDataURI decodes an audio reference into an Upload.
// It accepts RFC 2397 data URIs ("data:audio/webm;base64,....") and bare
// base64 strings. Media type parameters such as ";codecs=opus" are dropped.
func ParseDataURI(ref string) (Upload, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Upload{}, fmt.Errorf("%w: empty", ErrInvalidReference)
	}

	if !strings.HasPrefix(ref, "data:") {
		data, err := decodeBase64(ref)
		if err != nil {
			return Upload{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		return Upload{Data: data, Filename: defaultFilename}, nil
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return Upload{}, fmt.Errorf("%w: missing comma", ErrInvalidReference)
	}

	params := strings.Split(header, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := decodeBase64(payload)
		if err != nil {
			return Upload{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return Upload{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		data = []byte(unescaped)
	}

	return Upload{
		Data:      data,
		MediaType: mediaType,
		Filename:  filenameFor(mediaType),
	}, nil
}

// decodeBase64 accepts both padded and unpadded standard encodings.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

var extensions = map[string]string{
	"audio/wav":   ".wav",
	"audio/wave":  ".wav",
	"audio/x-wav": ".wav",
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/webm":  ".webm",
	"audio/ogg":   ".ogg",
	"audio/mp4":   ".m4a",
	"audio/flac":  ".flac",
}

func filenameFor(mediaType string) string {
	if ext, ok := extensions[mediaType]; ok {
		return "audio" + ext
	}
	return defaultFilename
}

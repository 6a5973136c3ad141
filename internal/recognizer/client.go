// Package recognizer is a client for the speech emotion recognition service.
package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const (
	predictPath      = "/predict/"
	formField        = "audio_file"
	userAgent        = "go-moodtune/1.0"
	defaultMediaType = "audio/wav"
	maxResponseBytes = 1 << 20
)

// Sentinel errors.
var (
	// ErrUnexpectedStatus is returned when the recognizer answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMalformedResponse is returned when the body is not a usable prediction.
	ErrMalformedResponse = errors.New("malformed response")
)

// Client talks to the recognizer over HTTP. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a recognizer client from the provided configuration.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict uploads audio and returns the recognizer's prediction.
func (c *Client) Predict(ctx context.Context, upload Upload) (*Prediction, error) {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return nil, fmt.Errorf("encoding upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Detail != "" {
			return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, apiErr.Detail)
		}
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var pred Prediction
	if err := json.Unmarshal(raw, &pred); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(pred.PredictedEmotion) == "" {
		return nil, fmt.Errorf("%w: missing predicted_emotion", ErrMalformedResponse)
	}
	if len(pred.TopEmotions) == 0 {
		return nil, fmt.Errorf("%w: missing top_emotions", ErrMalformedResponse)
	}

	return &pred, nil
}

// encodeUpload writes the multipart form the recognizer expects.
// The part carries an explicit audio content type; the recognizer rejects anything else.
func encodeUpload(upload Upload) (io.Reader, string, error) {
	mediaType := upload.MediaType
	if !strings.HasPrefix(mediaType, "audio/") {
		mediaType = defaultMediaType
	}
	filename := upload.Filename
	if filename == "" {
		filename = defaultFilename
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, formField, filename))
	header.Set("Content-Type", mediaType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}

// Ping checks that the recognizer root endpoint answers.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

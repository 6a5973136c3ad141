package recognizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPredict(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		response    any
		rawResponse string
		wantEmotion string
		wantErr     error
	}{
		{
			name:   "valid prediction",
			status: http.StatusOK,
			response: Prediction{
				Filename:         "audio.wav",
				ContentType:      "audio/wav",
				PredictedEmotion: "angry",
				TopEmotions:      map[string]float64{"angry": 0.9, "sad": 0.05},
			},
			wantEmotion: "angry",
		},
		{
			name:   "prediction with restorative songs",
			status: http.StatusOK,
			response: Prediction{
				PredictedEmotion: "sad",
				TopEmotions:      map[string]float64{"sad": 0.7, "neutral": 0.2},
				NeutralizingSongs: []Song{
					{SongName: "Happy - Pharrell Williams", Link: "https://www.youtube.com/watch?v=ZbZSe6N_BXs"},
				},
				Explanation: "Uplifting music helps.",
			},
			wantEmotion: "sad",
		},
		{
			name:     "server error with detail",
			status:   http.StatusBadRequest,
			response: apiError{Detail: "Invalid file type. Please upload an audio file."},
			wantErr:  ErrUnexpectedStatus,
		},
		{
			name:        "server error without body",
			status:      http.StatusBadGateway,
			rawResponse: "bad gateway",
			wantErr:     ErrUnexpectedStatus,
		},
		{
			name:        "not json",
			status:      http.StatusOK,
			rawResponse: "<html>oops</html>",
			wantErr:     ErrMalformedResponse,
		},
		{
			name:     "missing predicted emotion",
			status:   http.StatusOK,
			response: Prediction{TopEmotions: map[string]float64{"happy": 0.8}},
			wantErr:  ErrMalformedResponse,
		},
		{
			name:     "missing top emotions",
			status:   http.StatusOK,
			response: Prediction{PredictedEmotion: "happy"},
			wantErr:  ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != predictPath {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.rawResponse != "" {
					io.WriteString(w, tt.rawResponse)
					return
				}
				json.NewEncoder(w).Encode(tt.response)
			}))
			defer server.Close()

			client := &Client{
				baseURL:    server.URL,
				httpClient: server.Client(),
			}

			pred, err := client.Predict(context.Background(), Upload{Data: []byte("RIFF"), MediaType: "audio/wav"})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Predict() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && pred.PredictedEmotion != tt.wantEmotion {
				t.Errorf("Predict() emotion = %q, want %q", pred.PredictedEmotion, tt.wantEmotion)
			}
		})
	}
}

func TestPredict_MultipartForm(t *testing.T) {
	payload := []byte("fake-audio-bytes")

	tests := []struct {
		name          string
		upload        Upload
		wantMediaType string
		wantFilename  string
	}{
		{
			name:          "audio media type kept",
			upload:        Upload{Data: payload, MediaType: "audio/webm", Filename: "audio.webm"},
			wantMediaType: "audio/webm",
			wantFilename:  "audio.webm",
		},
		{
			name:          "non-audio media type replaced",
			upload:        Upload{Data: payload, MediaType: "application/octet-stream"},
			wantMediaType: "audio/wav",
			wantFilename:  "audio.wav",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}

				file, header, err := r.FormFile(formField)
				if err != nil {
					t.Errorf("FormFile(%q) error = %v", formField, err)
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				defer file.Close()

				got, _ := io.ReadAll(file)
				if string(got) != string(payload) {
					t.Errorf("payload = %q, want %q", got, payload)
				}
				if ct := header.Header.Get("Content-Type"); ct != tt.wantMediaType {
					t.Errorf("part Content-Type = %q, want %q", ct, tt.wantMediaType)
				}
				if header.Filename != tt.wantFilename {
					t.Errorf("filename = %q, want %q", header.Filename, tt.wantFilename)
				}

				json.NewEncoder(w).Encode(Prediction{
					PredictedEmotion: "neutral",
					TopEmotions:      map[string]float64{"neutral": 0.6},
				})
			}))
			defer server.Close()

			client := &Client{baseURL: server.URL, httpClient: server.Client()}
			if _, err := client.Predict(context.Background(), tt.upload); err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
		})
	}
}

func TestPredict_NoRetry(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := &Client{baseURL: server.URL, httpClient: server.Client()}

	_, err := client.Predict(context.Background(), Upload{Data: []byte("x")})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Predict() error = %v, want ErrUnexpectedStatus", err)
	}
	if count := requestCount.Load(); count != 1 {
		t.Errorf("Expected 1 request, got %d", count)
	}
}

func TestPredict_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := &Client{baseURL: server.URL, httpClient: server.Client()}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Predict(ctx, Upload{Data: []byte("x")})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Predict() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://localhost:8000/"})

	if client.baseURL != "http://localhost:8000" {
		t.Errorf("NewClient() baseURL = %s, want trailing slash trimmed", client.baseURL)
	}
	if client.httpClient == nil {
		t.Fatal("NewClient() httpClient is nil")
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("NewClient() timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (&Config{}).Validate(); !errors.Is(err, ErrMissingURL) {
		t.Errorf("Validate() error = %v, want ErrMissingURL", err)
	}
	if err := (&Config{BaseURL: "http://localhost:8000"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

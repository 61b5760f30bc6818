package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

func TestLLMGenerator(t *testing.T) {
	tracks := []models.Track{
		{Title: "Song A", Artist: "Artist A", URI: "spotify:track:a"},
		{Title: "Song B", Artist: "Artist B", URI: "spotify:track:b"},
	}

	t.Run("NewLLMGenerator", func(t *testing.T) {
		t.Run("Missing API Key", func(t *testing.T) {
			_, err := NewLLMGenerator(shared.GeneratorConfig{}, nil)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Defaults", func(t *testing.T) {
			gen, err := NewLLMGenerator(shared.GeneratorConfig{APIKey: "key"}, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gen.baseURL != "https://api.openai.com/v1" {
				t.Errorf("expected default base URL, got %s", gen.baseURL)
			}
			if gen.model == "" {
				t.Error("expected a default model")
			}
		})
	})

	t.Run("Generate", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			var gotAuth string
			var gotReq chatRequest

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				json.NewDecoder(r.Body).Decode(&gotReq)

				reply := `{"description":"Late night drive","tracks":[{"title":"Song A","artist":"Artist A","uri":"spotify:track:a"}]}`
				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]string{"role": "assistant", "content": reply}},
					},
				})
			}))
			defer srv.Close()

			gen, err := NewLLMGenerator(shared.GeneratorConfig{APIKey: "key", BaseURL: srv.URL, Model: "test-model"}, nil)
			if err != nil {
				t.Fatalf("failed to create generator: %v", err)
			}

			generated, err := gen.Generate(context.Background(), "late night drive", tracks)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if gotAuth != "Bearer key" {
				t.Errorf("expected bearer auth, got %s", gotAuth)
			}
			if gotReq.Model != "test-model" {
				t.Errorf("expected configured model, got %s", gotReq.Model)
			}
			if len(gotReq.Messages) != 2 {
				t.Fatalf("expected system + user messages, got %d", len(gotReq.Messages))
			}
			if !strings.Contains(gotReq.Messages[1].Content, "late night drive") {
				t.Error("expected user prompt in request")
			}
			if !strings.Contains(gotReq.Messages[1].Content, "spotify:track:b") {
				t.Error("expected track list in request")
			}

			if generated.Description != "Late night drive" {
				t.Errorf("unexpected description: %s", generated.Description)
			}
			if len(generated.Tracks) != 1 || generated.Tracks[0].URI != "spotify:track:a" {
				t.Errorf("unexpected track selection: %+v", generated.Tracks)
			}
		})

		t.Run("Fenced Reply", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reply := "```json\n{\"description\":\"d\",\"tracks\":[]}\n```"
				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]string{"role": "assistant", "content": reply}},
					},
				})
			}))
			defer srv.Close()

			gen, _ := NewLLMGenerator(shared.GeneratorConfig{APIKey: "key", BaseURL: srv.URL}, nil)

			generated, err := gen.Generate(context.Background(), "p", tracks)
			if err != nil {
				t.Fatalf("expected fenced JSON to parse, got %v", err)
			}
			if generated.Description != "d" {
				t.Errorf("unexpected description: %s", generated.Description)
			}
		})

		t.Run("Upstream Error", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer srv.Close()

			gen, _ := NewLLMGenerator(shared.GeneratorConfig{APIKey: "key", BaseURL: srv.URL}, nil)

			if _, err := gen.Generate(context.Background(), "p", tracks); !errors.Is(err, shared.ErrGenerationFailed) {
				t.Errorf("expected ErrGenerationFailed, got %v", err)
			}
		})

		t.Run("Non JSON Reply", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]string{"role": "assistant", "content": "here is your playlist!"}},
					},
				})
			}))
			defer srv.Close()

			gen, _ := NewLLMGenerator(shared.GeneratorConfig{APIKey: "key", BaseURL: srv.URL}, nil)

			if _, err := gen.Generate(context.Background(), "p", tracks); !errors.Is(err, shared.ErrGenerationFailed) {
				t.Errorf("expected ErrGenerationFailed, got %v", err)
			}
		})
	})

	t.Run("StripCodeFence", func(t *testing.T) {
		if got := stripCodeFence("{\"a\":1}"); got != "{\"a\":1}" {
			t.Errorf("unexpected result for bare JSON: %s", got)
		}
		if got := stripCodeFence("```json\n{}\n```"); got != "{}" {
			t.Errorf("unexpected result for fenced JSON: %s", got)
		}
		if got := stripCodeFence("```\n{}\n```"); got != "{}" {
			t.Errorf("unexpected result for anonymous fence: %s", got)
		}
	})
}

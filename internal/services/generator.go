// LLM implementation of [Generator] against an OpenAI-compatible chat API.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

const generatorTimeout = 60 * time.Second

// systemPrompt instructs the model to answer with bare JSON the handler can
// relay to the frontend.
const systemPrompt = `You are a playlist curator. Given a user's prompt and their track list, ` +
	`select the tracks that fit the prompt and write a short playlist description. ` +
	`Respond with JSON only, in the form {"description": "...", "tracks": [{"title": "...", "artist": "...", "uri": "..."}]}. ` +
	`Only include tracks from the provided list.`

// LLMGenerator implements [Generator] over an OpenAI-compatible
// chat-completions endpoint.
type LLMGenerator struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewLLMGenerator creates a generator from config. The base URL defaults to
// the OpenAI API.
func NewLLMGenerator(cfg shared.GeneratorConfig, client *http.Client) (*LLMGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing generator api_key", shared.ErrMissingCredentials)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	if client == nil {
		client = &http.Client{Timeout: generatorTimeout}
	}

	return &LLMGenerator{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: client,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt and candidate tracks to the model and decodes its
// JSON reply. The selection itself is entirely the model's.
func (g *LLMGenerator) Generate(ctx context.Context, prompt string, tracks []models.Track) (*models.GeneratedPlaylist, error) {
	trackJSON, err := json.Marshal(tracks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal track list: %w", err)
	}

	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Prompt: %s\n\nTracks: %s", prompt, trackJSON)},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrGenerationFailed, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("%w: failed to decode chat response: %v", shared.ErrGenerationFailed, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", shared.ErrGenerationFailed)
	}

	var generated models.GeneratedPlaylist
	content := stripCodeFence(chat.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &generated); err != nil {
		return nil, fmt.Errorf("%w: model reply is not valid JSON: %v", shared.ErrGenerationFailed, err)
	}

	return &generated, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some models
// add despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

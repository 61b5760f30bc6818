package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

type fakeGenerator struct {
	result *models.GeneratedPlaylist
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, tracks []models.Track) (*models.GeneratedPlaylist, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeProvider struct {
	authenticated bool
	created       *models.Playlist
	addedURIs     []string
	createErr     error
}

func (f *fakeProvider) Authenticate(ctx context.Context, credentials map[string]string) error {
	if credentials["access_token"] == "" {
		return shared.ErrMissingCredentials
	}
	f.authenticated = true
	return nil
}

func (f *fakeProvider) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &models.Playlist{ID: "pl_1", Name: name, Description: description, Public: public}
	return f.created, nil
}

func (f *fakeProvider) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	f.addedURIs = append(f.addedURIs, uris...)
	return nil
}

func (f *fakeProvider) Name() string { return "Fake" }

func TestEngine(t *testing.T) {
	tracks := []models.Track{
		{Title: "Song A", URI: "spotify:track:a"},
		{Title: "Song B", URI: "spotify:track:b"},
	}
	generated := &models.GeneratedPlaylist{
		Description: "A mix",
		Tracks:      []models.Track{{Title: "Song A", URI: "spotify:track:a"}},
	}

	t.Run("Generation Only", func(t *testing.T) {
		provider := &fakeProvider{}
		engine := NewEngine(&fakeGenerator{result: generated}, provider)

		result, err := engine.Run(context.Background(), nil, "a mix", tracks, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Description != "A mix" {
			t.Errorf("unexpected description: %s", result.Description)
		}
		if result.PlaylistID != "" {
			t.Error("expected no playlist without access token")
		}
		if provider.authenticated {
			t.Error("expected provider to stay untouched without access token")
		}
	})

	t.Run("Generate And Save", func(t *testing.T) {
		provider := &fakeProvider{}
		engine := NewEngine(&fakeGenerator{result: generated}, provider)

		progress := make(chan ProgressUpdate, 8)
		result, err := engine.Run(context.Background(), progress, "a mix", tracks, "token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.PlaylistID != "pl_1" {
			t.Errorf("expected playlist ID pl_1, got %s", result.PlaylistID)
		}
		if provider.created == nil || provider.created.Name != "a mix" {
			t.Errorf("expected playlist named after prompt, got %+v", provider.created)
		}
		if len(provider.addedURIs) != 1 || provider.addedURIs[0] != "spotify:track:a" {
			t.Errorf("expected selected URIs to be added, got %v", provider.addedURIs)
		}

		close(progress)
		phases := map[Phase]bool{}
		for update := range progress {
			phases[update.Phase] = true
		}
		for _, phase := range []Phase{Generate, CreatePlaylist, AddTracks} {
			if !phases[phase] {
				t.Errorf("expected a %s progress update", phase)
			}
		}
	})

	t.Run("Generator Failure", func(t *testing.T) {
		engine := NewEngine(&fakeGenerator{err: fmt.Errorf("model unavailable")}, &fakeProvider{})

		if _, err := engine.Run(context.Background(), nil, "p", tracks, ""); !errors.Is(err, shared.ErrGenerationFailed) {
			t.Errorf("expected ErrGenerationFailed, got %v", err)
		}
	})

	t.Run("Create Failure", func(t *testing.T) {
		provider := &fakeProvider{createErr: fmt.Errorf("boom")}
		engine := NewEngine(&fakeGenerator{result: generated}, provider)

		if _, err := engine.Run(context.Background(), nil, "p", tracks, "token"); err == nil {
			t.Error("expected create failure to propagate")
		}
	})

	t.Run("Nil Generator", func(t *testing.T) {
		engine := NewEngine(nil, &fakeProvider{})

		if _, err := engine.Run(context.Background(), nil, "p", tracks, ""); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Empty Selection Skips Save", func(t *testing.T) {
		provider := &fakeProvider{}
		engine := NewEngine(&fakeGenerator{result: &models.GeneratedPlaylist{Description: "d"}}, provider)

		result, err := engine.Run(context.Background(), nil, "p", tracks, "token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.PlaylistID != "" || provider.created != nil {
			t.Error("expected empty selection to skip playlist creation")
		}
	})
}

func TestPlaylistName(t *testing.T) {
	if got := playlistName("  chill study beats  "); got != "chill study beats" {
		t.Errorf("expected trimmed prompt, got %q", got)
	}

	long := "a prompt that is definitely much longer than sixty characters in total length"
	if got := playlistName(long); len([]rune(got)) > 61 {
		t.Errorf("expected truncated name, got %q", got)
	}

	if got := playlistName("   "); got != "Generated Playlist" {
		t.Errorf("expected fallback name, got %q", got)
	}
}

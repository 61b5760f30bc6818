// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
)

// MockService is a test double for [services.Service]
type MockService struct {
	AuthenticateErr error
	CreateErr       error
	AddErr          error

	Created  []models.Playlist
	AddCalls map[string][]string
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.AuthenticateErr
}

func (m *MockService) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	playlist := models.Playlist{
		ID:          "mock_playlist",
		Name:        name,
		Description: description,
		Public:      public,
	}
	m.Created = append(m.Created, playlist)
	return &playlist, nil
}

func (m *MockService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	if m.AddCalls == nil {
		m.AddCalls = map[string][]string{}
	}
	m.AddCalls[playlistID] = append(m.AddCalls[playlistID], uris...)
	return nil
}

func (m *MockService) Name() string { return "mock" }

// MockGenerator is a test double for [services.Generator]
type MockGenerator struct {
	Result *models.GeneratedPlaylist
	Err    error

	Prompts []string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, tracks []models.Track) (*models.GeneratedPlaylist, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &models.GeneratedPlaylist{Description: "mock playlist"}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

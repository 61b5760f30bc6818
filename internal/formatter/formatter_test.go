package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
	tu "github.com/desertthunder/mixtape/internal/testing"
)

func sampleGenerated() *models.GeneratedPlaylist {
	return &models.GeneratedPlaylist{
		Description: "songs for a rainy afternoon",
		Tracks: []models.Track{
			{ID: "t1", Title: "First Song", Artist: "Artist One", Album: "Album One", Duration: 215, URI: "spotify:track:t1"},
			{ID: "t2", Title: "Second Song", Artist: "Artist Two", Duration: 187, URI: "spotify:track:t2"},
		},
		PlaylistID: "pl_1",
	}
}

func TestExportToCSV(t *testing.T) {
	t.Run("With Tracks", func(t *testing.T) {
		data, err := ExportToCSV(sampleGenerated())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Artist,Album,Duration,URI" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if !strings.Contains(lines[1], "First Song") || !strings.Contains(lines[1], "215") {
			t.Errorf("unexpected first row: %s", lines[1])
		}
	})

	t.Run("With No Tracks", func(t *testing.T) {
		data, err := ExportToCSV(&models.GeneratedPlaylist{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Errorf("expected header only, got %d lines", len(lines))
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown("Rainy Afternoon", sampleGenerated())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	md := string(data)
	if !strings.HasPrefix(md, "# Rainy Afternoon\n") {
		t.Errorf("expected title heading, got %s", md)
	}
	if !strings.Contains(md, "**Description**: songs for a rainy afternoon") {
		t.Error("expected description line")
	}
	if !strings.Contains(md, "**Playlist ID**: pl_1") {
		t.Error("expected playlist ID line")
	}
	if !strings.Contains(md, "1. Artist One - First Song (Album One) [3:35]") {
		t.Errorf("unexpected track line formatting: %s", md)
	}
	if !strings.Contains(md, "2. Artist Two - Second Song [3:07]") {
		t.Errorf("expected album to be omitted when empty: %s", md)
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText("Rainy Afternoon", sampleGenerated())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "Playlist: Rainy Afternoon") {
		t.Error("expected playlist name")
	}
	if !strings.Contains(text, "Tracks: 2") {
		t.Error("expected track count")
	}
	if !strings.Contains(text, "1. Artist One - First Song") {
		t.Error("expected numbered track line")
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("Writes Each Format", func(t *testing.T) {
		tmpDir := t.TempDir()

		for _, format := range []string{"csv", "md", "txt"} {
			path := filepath.Join(tmpDir, "out_"+format)
			written, err := WriteExport("Test", sampleGenerated(), format, path)
			if err != nil {
				t.Fatalf("format %s: %v", format, err)
			}
			if written != path {
				t.Errorf("format %s: expected %s, got %s", format, path, written)
			}
			tu.AssertFileExists(t, written)
		}
	})

	t.Run("Default Filename", func(t *testing.T) {
		tmpDir := t.TempDir()
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, tmpDir)
		defer tu.MustChdir(t, wd)

		written, err := WriteExport("Test", sampleGenerated(), "", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if written != "playlist.txt" {
			t.Errorf("expected default filename, got %s", written)
		}
	})

	t.Run("Unsupported Format", func(t *testing.T) {
		if _, err := WriteExport("Test", sampleGenerated(), "xml", ""); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}

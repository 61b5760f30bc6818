// package formatter provides functions to export generated playlists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

// ExportToCSV converts a GeneratedPlaylist to CSV format with columns: ID, Title, Artist, Album, Duration, URI
func ExportToCSV(generated *models.GeneratedPlaylist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "URI"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range generated.Tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Duration),
			track.URI,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a GeneratedPlaylist to Markdown format
func ExportToMarkdown(name string, generated *models.GeneratedPlaylist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", name))

	if generated.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", generated.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(generated.Tracks)))
	if generated.PlaylistID != "" {
		buf.WriteString(fmt.Sprintf("**Playlist ID**: %s\n", generated.PlaylistID))
	}
	buf.WriteString("\n## Tracks\n\n")

	for i, track := range generated.Tracks {
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		durationPart := ""
		if track.Duration > 0 {
			durationPart = fmt.Sprintf(" [%s]", shared.FormatDuration(track.Duration))
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, track.Artist, track.Title, albumPart, durationPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a GeneratedPlaylist to plain text format
func ExportToText(name string, generated *models.GeneratedPlaylist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", name))
	if generated.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", generated.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(generated.Tracks)))

	for i, track := range generated.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// WriteExport writes a GeneratedPlaylist to a file in the requested format.
//
// Supported formats are "csv", "md", and "txt". An empty format defaults to
// the extension-free "txt" rendering.
func WriteExport(name string, generated *models.GeneratedPlaylist, format, filepath string) (string, error) {
	var data []byte
	var err error
	var ext string

	switch format {
	case "csv":
		data, err = ExportToCSV(generated)
		ext = ".csv"
	case "md", "markdown":
		data, err = ExportToMarkdown(name, generated)
		ext = ".md"
	case "", "txt", "text":
		data, err = ExportToText(name, generated)
		ext = ".txt"
	default:
		return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}

	if err != nil {
		return "", err
	}

	if filepath == "" {
		filepath = "playlist" + ext
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}

// package formatter renders playlists as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/model"
)

// Formats accepted by [Render].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// Render formats playlist in the named format.
func Render(playlist *model.FullPlaylist, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ToCSV(playlist)
	case FormatMarkdown, "markdown":
		return ToMarkdown(playlist), nil
	case FormatText, "text", "":
		return ToText(playlist), nil
	case FormatJSON:
		return json.MarshalIndent(playlist, "", "  ")
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteFile renders playlist to path, defaulting to {playlist ID}.{format}.
func WriteFile(playlist *model.FullPlaylist, format, path string) (string, error) {
	data, err := Render(playlist, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		if format == "" {
			format = FormatText
		}
		path = fmt.Sprintf("%s.%s", playlist.ID, format)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// ToCSV writes one row per available track with columns: ID, Title, Artists, Album, Duration, ISRC, Added At
func ToCSV(playlist *model.FullPlaylist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Album", "Duration", "ISRC", "Added At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range playlist.Tracks.Items {
		track := entry.Track
		if track == nil {
			continue
		}

		addedAt := ""
		if entry.AddedAt != nil {
			addedAt = entry.AddedAt.Format(time.RFC3339)
		}

		record := []string{
			track.ID,
			track.Name,
			artistNames(track),
			track.Album.Name,
			Duration(track.Duration()),
			track.ISRC(),
			addedAt,
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

// ToMarkdown renders a heading, the playlist details and a numbered track list.
func ToMarkdown(playlist *model.FullPlaylist) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", playlist.Name)
	if len(playlist.Images) > 0 {
		fmt.Fprintf(&buf, "![Cover](%s)\n\n", playlist.Images[0].URL)
	}
	if d := description(playlist); d != "" {
		fmt.Fprintf(&buf, "**Description**: %s\n\n", d)
	}

	fmt.Fprintf(&buf, "**Owner**: %s\n", playlist.Owner.Name())
	fmt.Fprintf(&buf, "**Tracks**: %d\n", playlist.Tracks.Total)
	fmt.Fprintf(&buf, "**Visibility**: %s\n\n", visibility(playlist.Public))

	buf.WriteString("## Tracks\n\n")
	i := 0
	for _, entry := range playlist.Tracks.Items {
		if entry.Track == nil {
			continue
		}
		i++
		track := entry.Track
		album := ""
		if track.Album.Name != "" {
			album = fmt.Sprintf(" (%s)", track.Album.Name)
		}
		fmt.Fprintf(&buf, "%d. %s - %s%s [%s]\n", i, artistNames(track), track.Name, album, Duration(track.Duration()))
	}

	return buf.Bytes()
}

// ToText renders the playlist name and an "artist - title" line per track.
func ToText(playlist *model.FullPlaylist) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", playlist.Name)
	if d := description(playlist); d != "" {
		fmt.Fprintf(&buf, "Description: %s\n", d)
	}
	fmt.Fprintf(&buf, "Tracks: %d\n\n", playlist.Tracks.Total)

	i := 0
	for _, entry := range playlist.Tracks.Items {
		if entry.Track == nil {
			continue
		}
		i++
		fmt.Fprintf(&buf, "%d. %s - %s\n", i, artistNames(entry.Track), entry.Track.Name)
	}

	return buf.Bytes()
}

// Duration formats d as m:ss, or h:mm:ss from an hour up.
func Duration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func artistNames(track *model.FullTrack) string {
	names := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func description(playlist *model.FullPlaylist) string {
	if playlist.Description == nil {
		return ""
	}
	return *playlist.Description
}

func visibility(public *bool) string {
	switch {
	case public == nil:
		return "Unknown"
	case *public:
		return "Public"
	default:
		return "Private"
	}
}

// Package artists loads the artists-to-match spreadsheet. The sheet
// is maintained by hand by the partnerships team: a header row naming
// at least an Artist column, usually Genre and Audience, and often
// extra columns (Background, Website) which are ignored here. The
// Audience column holds the pasted demographic text block parsed by
// the match package.
package artists

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/maxlive/prospector/match"
)

// Load reads artists from the first sheet of the spreadsheet at path.
func Load(path string) ([]match.Artist, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open artists file %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("artists file %q has no data rows", path)
	}

	// Header lookup is case-insensitive; column order varies between
	// versions of the sheet.
	columns := map[string]int{}
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	artistCol, ok := columns["artist"]
	if !ok {
		return nil, fmt.Errorf("artists file %q has no Artist column", path)
	}
	genreCol, hasGenre := columns["genre"]
	audienceCol, hasAudience := columns["audience"]

	var artists []match.Artist
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, artistCol))
		if name == "" {
			continue
		}
		artist := match.Artist{Name: name}
		if hasGenre {
			artist.Genre = strings.TrimSpace(cell(row, genreCol))
		}
		if hasAudience {
			artist.Audience = match.ParseArtistAudience(cell(row, audienceCol))
		}
		artists = append(artists, artist)
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("artists file %q has no artist rows", path)
	}
	return artists, nil
}

// cell returns the row value at idx, tolerating the ragged rows
// excelize produces when trailing cells are empty.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

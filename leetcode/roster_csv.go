package leetcode

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RosterEntry is one candidate member from a bulk upload.
type RosterEntry struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// ParseRosterCSV reads a name/username roster. Header names match
// case-insensitively; rows missing either value are skipped rather than
// failing the whole upload.
func ParseRosterCSV(reader io.Reader) ([]RosterEntry, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	// Ragged rows are tolerated; short rows fall out below as skipped.
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv must include a header row and at least one data row")
	}

	headers := make(map[string]int, len(records[0]))
	for idx, col := range records[0] {
		headers[strings.ToLower(strings.TrimSpace(col))] = idx
	}
	for _, col := range []string{"name", "username"} {
		if _, ok := headers[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	entries := make([]RosterEntry, 0, len(records)-1)
	for _, record := range records[1:] {
		name := strings.TrimSpace(readValue(record, headers["name"]))
		username := strings.TrimSpace(readValue(record, headers["username"]))
		if name == "" || username == "" {
			continue
		}
		entries = append(entries, RosterEntry{Name: name, Username: username})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid members found in file")
	}

	return entries, nil
}

func readValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

package leetcode

import (
	"strings"
	"testing"
)

func TestParseRosterCSVSuccess(t *testing.T) {
	csvData := "name,username\n" +
		"Alice Smith,alice_codes\n" +
		"Bob Jones,bobj\n"

	entries, err := ParseRosterCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("expected parse to succeed, got error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Alice Smith" || entries[0].Username != "alice_codes" {
		t.Fatalf("unexpected first row parsed: %+v", entries[0])
	}
}

func TestParseRosterCSVSkipsIncompleteRows(t *testing.T) {
	csvData := "Name,Username\n" +
		"Alice Smith,alice_codes\n" +
		",missing_name\n" +
		"Missing Username,\n"

	entries, err := ParseRosterCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("expected parse to succeed, got error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the complete row, got %d entries", len(entries))
	}
}

func TestParseRosterCSVToleratesRaggedRows(t *testing.T) {
	csvData := "name,username,notes\n" +
		"Alice Smith,alice_codes,keep\n" +
		"Bob Jones,bobj\n" +
		"Carol\n"

	entries, err := ParseRosterCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("a ragged row must not fail the upload, got error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Username != "bobj" {
		t.Fatalf("short-but-complete row should survive, got %+v", entries[1])
	}
}

func TestParseRosterCSVMissingRequiredColumn(t *testing.T) {
	csvData := `name,email
Alice,alice@example.com
`

	_, err := ParseRosterCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected missing required column error, got nil")
	}
}

func TestParseRosterCSVNoDataRows(t *testing.T) {
	_, err := ParseRosterCSV(strings.NewReader("name,username\n"))
	if err == nil {
		t.Fatal("expected error for a header-only file, got nil")
	}
}

package datefmt

import (
	"testing"
	"time"
)

func TestBR(t *testing.T) {
	tests := []struct {
		input    string
		date     string
		dateTime string
	}{
		{"2024-03-09", "09/03/2024", "09/03/2024"},
		{"2024-03-09 18:30:00", "09/03/2024", "09/03/2024 18:30"},
		{"2024-03-09T18:30", "09/03/2024", "09/03/2024 18:30"},
		{"09/03/2024 07:05", "09/03/2024", "09/03/2024 07:05"},
		{"2024-03-09 00:00:00", "09/03/2024", "09/03/2024"},
		{"amanhã", "amanhã", "amanhã"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := BR(tt.input); got != tt.date {
			t.Fatalf("BR(%q) = %q, want %q", tt.input, got, tt.date)
		}
		if got := BRDateTime(tt.input); got != tt.dateTime {
			t.Fatalf("BRDateTime(%q) = %q, want %q", tt.input, got, tt.dateTime)
		}
	}
}

func TestParseUsesLocationForNaiveValues(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	got, ok := Parse("2024-03-09 18:30", loc)
	if !ok {
		t.Fatalf("expected value to parse")
	}
	if got.UTC().Hour() != 21 {
		t.Fatalf("expected 21h UTC, got %v", got.UTC())
	}

	withZone, ok := Parse("2024-03-09T18:30:00Z", loc)
	if !ok || withZone.UTC().Hour() != 18 {
		t.Fatalf("expected explicit zone to win, got %v", withZone)
	}
}

func TestFirstOfMonth(t *testing.T) {
	if got := FirstOfMonth("2024-02"); got != "2024-02-01" {
		t.Fatalf("got %q", got)
	}
	if got := FirstOfMonth("2024-02-15"); got != "2024-02-15" {
		t.Fatalf("got %q", got)
	}
}

func TestMonth(t *testing.T) {
	if got := Month("2024-02-01"); got != "02/2024" {
		t.Fatalf("got %q", got)
	}
	if got := Month("2024-11"); got != "11/2024" {
		t.Fatalf("got %q", got)
	}
}

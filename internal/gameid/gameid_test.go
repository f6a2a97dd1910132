package gameid

import (
	"strings"
	"testing"
)

func TestNewGeneratesValidIDs(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := New()
		if len(id) != 26 {
			t.Fatalf("Expected 26 characters, got %d: %s", len(id), id)
		}
		if err := Validate(id); err != nil {
			t.Fatalf("Generated ID failed validation: %v", err)
		}
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestValidateRejectsBadIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too short", "abc123"},
		{"too long", strings.Repeat("0", 27)},
		{"uppercase", strings.Repeat("A", 26)},
		{"invalid character", "0" + strings.Repeat("u", 25)},
		{"first char out of range", "z" + strings.Repeat("0", 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.id); err == nil {
				t.Errorf("Expected validation error for %q", tt.id)
			}
		})
	}
}

package xlsx

import (
	"reflect"
	"strings"
	"testing"
)

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Acme Corp", "Acme Corp"},
		{"forbidden characters", `Acme [EU]: West/Yard\*?`, "Acme -EU-- West-Yard---"},
		{"empty", "", "Sheet"},
		{"whitespace only", "   ", "Sheet"},
		{"trims after replacement", "/ Acme", "- Acme"},
		{"edge apostrophes", "'Acme'", "Acme"},
		{"interior apostrophe kept", "O'Brien Networks", "O'Brien Networks"},
		{"apostrophes only", "''", "Sheet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeSheetName(tt.in); got != tt.want {
				t.Fatalf("sanitizeSheetName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeSheetNameTruncates(t *testing.T) {
	long := strings.Repeat("a", 40)
	got := sanitizeSheetName(long)
	if len([]rune(got)) != maxSheetName {
		t.Fatalf("length = %d, want %d", len([]rune(got)), maxSheetName)
	}

	wide := strings.Repeat("千", 40)
	got = sanitizeSheetName(wide)
	if n := len([]rune(got)); n != maxSheetName {
		t.Fatalf("rune length = %d, want %d", n, maxSheetName)
	}

	quoted := strings.Repeat("a", 30) + "'x"
	got = sanitizeSheetName(quoted)
	if got != strings.Repeat("a", 30) {
		t.Fatalf("expected the exposed apostrophe trimmed, got %q", got)
	}
}

func TestUniqueSheetNames(t *testing.T) {
	got := uniqueSheetNames([]string{"Acme", "Acme", "acme", "Globex"})
	want := []string{"Acme", "Acme 2", "acme 3", "Globex"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("uniqueSheetNames = %v, want %v", got, want)
	}
}

func TestUniqueSheetNamesAfterTruncation(t *testing.T) {
	long := strings.Repeat("a", 35)
	got := uniqueSheetNames([]string{long, long})
	if got[0] != strings.Repeat("a", 31) {
		t.Fatalf("first = %q", got[0])
	}
	if got[1] != strings.Repeat("a", 29)+" 2" {
		t.Fatalf("second = %q", got[1])
	}
	if len([]rune(got[1])) > maxSheetName {
		t.Fatalf("second exceeds limit: %d runes", len([]rune(got[1])))
	}
}

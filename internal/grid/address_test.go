package grid

import "testing"

func TestColumnLetter(t *testing.T) {
	tests := map[int]string{
		0:   "",
		1:   "A",
		2:   "B",
		26:  "Z",
		27:  "AA",
		52:  "AZ",
		53:  "BA",
		702: "ZZ",
		703: "AAA",
	}
	for n, want := range tests {
		if got := ColumnLetter(n); got != want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestColumnLetterRoundTrip(t *testing.T) {
	for n := 1; n <= 800; n++ {
		got, err := ColumnNumber(ColumnLetter(n))
		if err != nil {
			t.Fatalf("ColumnNumber(%q): %v", ColumnLetter(n), err)
		}
		if got != n {
			t.Fatalf("round trip %d -> %q -> %d", n, ColumnLetter(n), got)
		}
	}
}

func TestColumnNumberInvalid(t *testing.T) {
	for _, s := range []string{"", "A1", "?"} {
		if _, err := ColumnNumber(s); err == nil {
			t.Errorf("ColumnNumber(%q) returned no error", s)
		}
	}
}

func TestCellAddress(t *testing.T) {
	if got := CellAddress(2, 6); got != "F2" {
		t.Errorf("CellAddress(2, 6) = %q, want F2", got)
	}
	if got := CellAddress(10, 28); got != "AB10" {
		t.Errorf("CellAddress(10, 28) = %q, want AB10", got)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		sheet, addr, want string
	}{
		{"Config", "C2", "Config!C2"},
		{"2026", "A1", "'2026'!A1"},
		{"My Habits", "B3", "'My Habits'!B3"},
		{"Bob's", "A1", "'Bob''s'!A1"},
		{"Config", "", "Config"},
	}
	for _, tt := range tests {
		if got := Range(tt.sheet, tt.addr); got != tt.want {
			t.Errorf("Range(%q, %q) = %q, want %q", tt.sheet, tt.addr, got, tt.want)
		}
	}
}

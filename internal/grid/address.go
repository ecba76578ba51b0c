package grid

import (
	"fmt"
	"strings"
)

// ColumnLetter encodes a 1-based column number in bijective base-26
// (1 -> A, 26 -> Z, 27 -> AA). Non-positive input yields "".
func ColumnLetter(n int) string {
	var b []byte
	for n > 0 {
		rem := (n - 1) % 26
		b = append([]byte{byte('A' + rem)}, b...)
		n = (n - 1) / 26
	}
	return string(b)
}

// ColumnNumber decodes a column letter back to its 1-based number.
func ColumnNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty column letter")
	}
	n := 0
	for _, r := range strings.ToUpper(s) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column letter %q", s)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n, nil
}

// CellAddress returns the A1 address for a 1-based row and column.
func CellAddress(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}

// Range qualifies an A1 address with its sheet name. Names that start with a
// digit (year sheets) or contain anything besides letters, digits and
// underscores are quoted.
func Range(sheet, address string) string {
	if address == "" {
		return quoteSheet(sheet)
	}
	return quoteSheet(sheet) + "!" + address
}

func quoteSheet(name string) string {
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		return "'" + name + "'"
	}
	for _, r := range name {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

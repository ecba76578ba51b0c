package google

import (
	"encoding/json"
	"strings"
	"testing"
)

func marshal(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestRepeatCellSendsZeroIndices(t *testing.T) {
	req := RepeatCell(GridRange{SheetID: 0, StartRow: 0, EndRow: 1, StartColumn: 0, EndColumn: 1}, CellStyle{
		Foreground: White,
		Background: Black,
		FontSize:   10,
		FontFamily: "Arial",
		Alignment:  "LEFT",
	})

	got := marshal(t, req)
	for _, want := range []string{
		`"sheetId":0`,
		`"startRowIndex":0`,
		`"startColumnIndex":0`,
		`"endColumnIndex":1`,
		`"fontSize":10`,
		`"horizontalAlignment":"LEFT"`,
		`"red":0`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("request %s missing %s", got, want)
		}
	}
}

func TestClearFormatSpansAllColumns(t *testing.T) {
	got := marshal(t, ClearFormat(7, 0, 5))
	if strings.Contains(got, "ColumnIndex") {
		t.Errorf("clear format should not bound columns: %s", got)
	}
	if !strings.Contains(got, `"fields":"userEnteredFormat"`) {
		t.Errorf("fields missing: %s", got)
	}
}

func TestInsertRows(t *testing.T) {
	req := InsertRows(0, 0, 4)
	r := req.InsertDimension.Range
	if r.Dimension != "ROWS" || r.StartIndex != 0 || r.EndIndex != 4 {
		t.Fatalf("range = %+v", r)
	}
	if got := marshal(t, req); !strings.Contains(got, `"startIndex":0`) {
		t.Errorf("startIndex dropped: %s", got)
	}
}

func TestBooleanValidation(t *testing.T) {
	req := BooleanValidation(GridRange{SheetID: 3, StartRow: 1, EndRow: 4, StartColumn: 1, EndColumn: 32})
	rule := req.SetDataValidation.Rule
	if rule.Condition.Type != "BOOLEAN" || !rule.Strict || !rule.ShowCustomUi {
		t.Fatalf("rule = %+v", rule)
	}
}

func TestAddSheet(t *testing.T) {
	got := marshal(t, AddSheet("2026", 0, 500, 32))
	for _, want := range []string{`"title":"2026"`, `"index":0`, `"rowCount":500`, `"columnCount":32`} {
		if !strings.Contains(got, want) {
			t.Errorf("request %s missing %s", got, want)
		}
	}
}

package google

import "google.golang.org/api/sheets/v4"

// GridRange is a half-open row/column rectangle on one sheet. A zero
// EndColumn leaves the columns unbounded.
type GridRange struct {
	SheetID     int64
	StartRow    int64
	EndRow      int64
	StartColumn int64
	EndColumn   int64
}

func (r GridRange) toSheets() *sheets.GridRange {
	gr := &sheets.GridRange{
		SheetId:       r.SheetID,
		StartRowIndex: r.StartRow,
		EndRowIndex:   r.EndRow,
		// Zero is a valid sheet id and index; without these the fields are dropped.
		ForceSendFields: []string{"SheetId", "StartRowIndex"},
	}
	if r.EndColumn > 0 {
		gr.StartColumnIndex = r.StartColumn
		gr.EndColumnIndex = r.EndColumn
		gr.ForceSendFields = append(gr.ForceSendFields, "StartColumnIndex")
	}
	return gr
}

// RGB is a color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

func (c RGB) toSheets() *sheets.Color {
	return &sheets.Color{
		Red:             c.R,
		Green:           c.G,
		Blue:            c.B,
		Alpha:           1,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}
}

// CellStyle describes the formatting applied by RepeatCell.
type CellStyle struct {
	Foreground RGB
	Background RGB
	FontSize   int64
	FontFamily string
	Alignment  string
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
	Green = RGB{0.5, 1, 0.5}
)

const styleFields = "userEnteredFormat.backgroundColor," +
	"userEnteredFormat.textFormat.foregroundColor," +
	"userEnteredFormat.textFormat.fontSize," +
	"userEnteredFormat.textFormat.fontFamily," +
	"userEnteredFormat.horizontalAlignment"

// RepeatCell formats every cell in r with style.
func RepeatCell(r GridRange, style CellStyle) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: r.toSheets(),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor: style.Background.toSheets(),
					TextFormat: &sheets.TextFormat{
						ForegroundColor: style.Foreground.toSheets(),
						FontSize:        style.FontSize,
						FontFamily:      style.FontFamily,
					},
					HorizontalAlignment: style.Alignment,
				},
			},
			Fields: styleFields,
		},
	}
}

// ClearFormat resets formatting of rows [startRow, endRow) to black Arial.
func ClearFormat(sheetID, startRow, endRow int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: GridRange{SheetID: sheetID, StartRow: startRow, EndRow: endRow}.toSheets(),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat: &sheets.TextFormat{
						ForegroundColor: Black.toSheets(),
						FontFamily:      "Arial",
					},
				},
			},
			Fields: "userEnteredFormat",
		},
	}
}

// InsertRows inserts n rows before start.
func InsertRows(sheetID, start, n int64) *sheets.Request {
	return &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:         sheetID,
				Dimension:       "ROWS",
				StartIndex:      start,
				EndIndex:        start + n,
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
			InheritFromBefore: false,
		},
	}
}

// BooleanValidation turns every cell in r into a checkbox.
func BooleanValidation(r GridRange) *sheets.Request {
	return &sheets.Request{
		SetDataValidation: &sheets.SetDataValidationRequest{
			Range: r.toSheets(),
			Rule: &sheets.DataValidationRule{
				Condition:    &sheets.BooleanCondition{Type: "BOOLEAN"},
				Strict:       true,
				ShowCustomUi: true,
			},
		},
	}
}

// AddSheet creates a sheet titled title at position index.
func AddSheet(title string, index, rows, columns int64) *sheets.Request {
	return &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: title,
				Index: index,
				GridProperties: &sheets.GridProperties{
					RowCount:    rows,
					ColumnCount: columns,
				},
				ForceSendFields: []string{"Index"},
			},
		},
	}
}

// AutoResizeColumns fits columns [start, end) to their content.
func AutoResizeColumns(sheetID, start, end int64) *sheets.Request {
	return &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:         sheetID,
				Dimension:       "COLUMNS",
				StartIndex:      start,
				EndIndex:        end,
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
		},
	}
}

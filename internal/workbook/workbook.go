package workbook

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellKind discriminates the closed set of cell value shapes.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
)

// CellValue is a single cell: empty, text, or numeric. Formula carries the
// formula expression when the cell has one; it substitutes for an empty value
// during scanning but is never evaluated.
type CellValue struct {
	Kind    CellKind
	Text    string
	Number  float64
	Formula string
}

// Text cell constructor.
func TextCell(s string) CellValue { return CellValue{Kind: KindText, Text: s} }

// Number cell constructor.
func NumberCell(n float64) CellValue { return CellValue{Kind: KindNumber, Number: n} }

// String renders the cell for classification. Numbers drop trailing zeros so
// "50" and 50 normalize identically.
func (c CellValue) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// IsEmpty reports whether the cell carries neither a value nor a formula.
func (c CellValue) IsEmpty() bool {
	return c.Kind == KindEmpty && c.Formula == "" || c.Kind == KindText && strings.TrimSpace(c.Text) == "" && c.Formula == ""
}

// Workbook is the in-memory sheet grid handed to the core by the reader.
type Workbook struct {
	SheetNames []string
	Sheets     map[string][][]CellValue
}

// Sheet returns the named grid, nil if absent.
func (w *Workbook) Sheet(name string) [][]CellValue {
	if w.Sheets == nil {
		return nil
	}
	return w.Sheets[name]
}

// Read decodes workbook bytes into the grid model. Numeric-looking cells are
// kept as numbers; a formula is attached when the sheet stores one.
func Read(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	wb := &Workbook{SheetNames: names, Sheets: make(map[string][][]CellValue, len(names))}
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		grid := make([][]CellValue, len(rows))
		for r, row := range rows {
			cells := make([]CellValue, len(row))
			for c, raw := range row {
				cells[c] = parseCell(raw)
				if strings.TrimSpace(raw) == "" {
					addr, err := excelize.CoordinatesToCellName(c+1, r+1)
					if err != nil {
						continue
					}
					if formula, err := f.GetCellFormula(name, addr); err == nil && formula != "" {
						cells[c].Formula = formula
					}
				}
			}
			grid[r] = cells
		}
		wb.Sheets[name] = grid
	}
	return wb, nil
}

func parseCell(raw string) CellValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CellValue{}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(n)
	}
	return TextCell(raw)
}

// OutputSheet is one named output sheet: a header row plus data rows.
type OutputSheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Write serializes output sheets to xlsx bytes. The first sheet replaces the
// default "Sheet1".
func Write(sheets []OutputSheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to write")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("name sheet %q: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
			}
		}
		if err := writeRow(f, sheet.Name, 1, sheet.Headers); err != nil {
			return nil, err
		}
		for r, row := range sheet.Rows {
			if err := writeRow(f, sheet.Name, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	addr, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d address: %w", rowNum, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

package workbook

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// CellRef is one non-empty cell yielded by a scan.
type CellRef struct {
	Sheet       string
	Address     string
	Value       string
	GlobalIndex int
}

// Scanner walks workbook cells. MaxRowsPerSheet bounds worst-case cost on
// pathological sheets; zero means unbounded.
type Scanner struct {
	MaxRowsPerSheet int
}

// Scan yields every non-empty cell in sheet order, rows top-down, cells
// left-right. Whitespace-only cells are skipped. GlobalIndex is monotonic
// across the whole workbook.
func (s Scanner) Scan(wb *Workbook) []CellRef {
	var out []CellRef
	for _, name := range wb.SheetNames {
		out = append(out, s.scanSheet(wb, name)...)
	}
	reindex(out)
	return out
}

// ScanParallel scans one sheet per goroutine. Per-sheet results are
// concatenated in sheet order before global indexing, so output is identical
// to Scan. Aggregation downstream needs all sheets, making this the only
// parallelizable phase.
func (s Scanner) ScanParallel(ctx context.Context, wb *Workbook) ([]CellRef, error) {
	results := make([][]CellRef, len(wb.SheetNames))
	g, _ := errgroup.WithContext(ctx)
	for i, name := range wb.SheetNames {
		g.Go(func() error {
			results[i] = s.scanSheet(wb, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []CellRef
	for _, part := range results {
		out = append(out, part...)
	}
	reindex(out)
	return out, nil
}

func (s Scanner) scanSheet(wb *Workbook, name string) []CellRef {
	grid := wb.Sheet(name)
	if s.MaxRowsPerSheet > 0 && len(grid) > s.MaxRowsPerSheet {
		grid = grid[:s.MaxRowsPerSheet]
	}
	var out []CellRef
	for r, row := range grid {
		for c, cell := range row {
			raw := cell.String()
			if strings.TrimSpace(raw) == "" {
				raw = cell.Formula
			}
			if strings.TrimSpace(raw) == "" {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			out = append(out, CellRef{Sheet: name, Address: addr, Value: raw})
		}
	}
	return out
}

func reindex(refs []CellRef) {
	for i := range refs {
		refs[i].GlobalIndex = i
	}
}

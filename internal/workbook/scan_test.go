package workbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureWorkbook() *Workbook {
	return &Workbook{
		SheetNames: []string{"Whips", "Pricing"},
		Sheets: map[string][][]CellValue{
			"Whips": {
				{TextCell("Receptacle"), TextCell("Length"), TextCell("")},
				{TextCell("L5-20R"), NumberCell(50), {}},
				{TextCell("  "), TextCell("50ft MMC"), {Kind: KindEmpty, Formula: "SUM(B2:B3)"}},
			},
			"Pricing": {
				{TextCell("Unit Cost")},
				{NumberCell(12.5)},
			},
		},
	}
}

func TestScanOrderAndAddresses(t *testing.T) {
	t.Parallel()

	refs := Scanner{}.Scan(fixtureWorkbook())
	require.Len(t, refs, 8)

	// sheet order, rows top-down, cells left-right
	require.Equal(t, "Whips", refs[0].Sheet)
	require.Equal(t, "A1", refs[0].Address)
	require.Equal(t, "Receptacle", refs[0].Value)
	require.Equal(t, "A2", refs[2].Address)
	require.Equal(t, "L5-20R", refs[2].Value)
	require.Equal(t, "B2", refs[3].Address)
	require.Equal(t, "50", refs[3].Value)

	last := refs[len(refs)-1]
	require.Equal(t, "Pricing", last.Sheet)
	require.Equal(t, "12.5", last.Value)

	for i, ref := range refs {
		require.Equal(t, i, ref.GlobalIndex)
	}
}

func TestScanSkipsEmptyYieldsFormula(t *testing.T) {
	t.Parallel()

	refs := Scanner{}.Scan(fixtureWorkbook())
	values := make([]string, 0, len(refs))
	for _, r := range refs {
		values = append(values, r.Value)
	}
	// whitespace-only cell skipped, formula text stands in for its empty cell
	require.NotContains(t, values, "  ")
	require.Contains(t, values, "SUM(B2:B3)")
}

func TestScanParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	wb := fixtureWorkbook()
	s := Scanner{}
	sequential := s.Scan(wb)
	parallel, err := s.ScanParallel(context.Background(), wb)
	require.NoError(t, err)
	require.Equal(t, sequential, parallel)
}

func TestScanRowCap(t *testing.T) {
	t.Parallel()

	grid := make([][]CellValue, 100)
	for i := range grid {
		grid[i] = []CellValue{TextCell("x")}
	}
	wb := &Workbook{SheetNames: []string{"Big"}, Sheets: map[string][][]CellValue{"Big": grid}}

	refs := Scanner{MaxRowsPerSheet: 10}.Scan(wb)
	require.Len(t, refs, 10)
}

func TestWorkbookRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := Write([]OutputSheet{
		{
			Name:    "PreSal",
			Headers: []string{"ID", "Length (ft)"},
			Rows:    [][]string{{"w-1", "50"}, {"w-2", "25"}},
		},
		{
			Name:    "Rules",
			Headers: []string{"Name"},
			Rows:    [][]string{{"builtin-length"}},
		},
	})
	require.NoError(t, err)

	wb, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, []string{"PreSal", "Rules"}, wb.SheetNames)

	grid := wb.Sheet("PreSal")
	require.GreaterOrEqual(t, len(grid), 3)
	require.Equal(t, "ID", grid[0][0].String())
	require.Equal(t, "w-1", grid[1][0].String())
	require.Equal(t, "50", grid[1][1].String())
}

func TestReadRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Read([]byte("not a workbook"))
	require.Error(t, err)
}

func TestCellValueString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "50", NumberCell(50).String())
	require.Equal(t, "12.5", NumberCell(12.5).String())
	require.Equal(t, "abc", TextCell("abc").String())
	require.Equal(t, "", CellValue{}.String())
	require.True(t, CellValue{}.IsEmpty())
	require.False(t, CellValue{Kind: KindEmpty, Formula: "A1+A2"}.IsEmpty())
}

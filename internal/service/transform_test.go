package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whipsal/whipsal/internal/nomenclature"
	"github.com/whipsal/whipsal/internal/workbook"
)

func TestTransformEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &TransformService{Analyzer: newTestAnalyzer()}
	res, err := svc.Transform(ctx, messyWorkbook())
	require.NoError(t, err)
	require.Len(t, res.Sheets, 3)

	presal := res.Sheets[0]
	require.Equal(t, "PreSal", presal.Name)
	require.Equal(t, nomenclature.PreSalColumns, presal.Headers)
	require.Len(t, presal.Rows, 5) // header row excluded

	lengthIdx := nomenclature.ColumnIndex("Length (ft)")
	receptIdx := nomenclature.ColumnIndex("Receptacle Type")
	require.Equal(t, "50", presal.Rows[0][lengthIdx])
	require.Equal(t, "L5-20R", presal.Rows[0][receptIdx])
	require.Equal(t, "75", presal.Rows[2][lengthIdx])

	// every emitted row has the defaults filled
	for _, row := range presal.Rows {
		require.NotEmpty(t, row[nomenclature.ColumnIndex("ID")])
		require.NotEmpty(t, row[nomenclature.ColumnIndex("Order QTY")])
	}

	require.Equal(t, "Mappings", res.Sheets[1].Name)
	require.Equal(t, "Rules", res.Sheets[2].Name)
	require.NotEmpty(t, res.Sheets[1].Rows)
	require.NotEmpty(t, res.Sheets[2].Rows)
}

func TestTransformBytesProducesWorkbook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src, err := workbook.Write([]workbook.OutputSheet{
		{
			Name:    "Sheet1",
			Headers: []string{"Receptacle", "Length"},
			Rows: [][]string{
				{"L5-20R", "50ft"},
				{"L5-20R", "50ft"},
			},
		},
	})
	require.NoError(t, err)

	svc := &TransformService{Analyzer: newTestAnalyzer()}
	out, res, err := svc.TransformBytes(ctx, src)
	require.NoError(t, err)
	require.NotNil(t, res)

	wb, err := workbook.Read(out)
	require.NoError(t, err)
	require.Equal(t, []string{"PreSal", "Mappings", "Rules"}, wb.SheetNames)

	grid := wb.Sheet("PreSal")
	require.NotEmpty(t, grid)
	header := make([]string, 0, len(grid[0]))
	for _, cell := range grid[0] {
		header = append(header, cell.String())
	}
	require.Equal(t, "ID", header[0])
	require.True(t, strings.HasPrefix(strings.Join(header, "|"), "ID|Order QTY"))
}

func TestTransformRejectsEmptyWorkbook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &TransformService{Analyzer: newTestAnalyzer()}
	_, err := svc.Transform(ctx, &workbook.Workbook{})
	require.Error(t, err)
}

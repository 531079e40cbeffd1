package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/whipsal/whipsal/internal/nomenclature"
	"github.com/whipsal/whipsal/internal/workbook"
)

// TransformService analyzes a workbook and re-emits its primary sheet in the
// canonical PreSal layout, alongside the mapping and rule sheets.
type TransformService struct {
	Analyzer *AnalyzerService
}

// TransformResult carries the standardized output sheets plus the analysis
// they were derived from.
type TransformResult struct {
	Analysis *AnalysisResult
	Sheets   []workbook.OutputSheet
}

// Transform runs analysis and rewrites the first sheet's data rows through
// the generated rule set. The first row of the source sheet is treated as a
// header row and skipped. Zero-match rows still emit; completeness beats
// precision downstream.
func (s *TransformService) Transform(ctx context.Context, wb *workbook.Workbook) (*TransformResult, error) {
	res, err := s.Analyzer.Analyze(ctx, wb)
	if err != nil {
		return nil, err
	}
	if len(wb.SheetNames) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	grid := wb.Sheet(wb.SheetNames[0])
	var source [][]string
	for r, row := range grid {
		if r == 0 {
			continue
		}
		cells := make([]string, len(row))
		empty := true
		for c, cell := range row {
			cells[c] = cell.String()
			if strings.TrimSpace(cells[c]) != "" {
				empty = false
			}
		}
		if !empty {
			source = append(source, cells)
		}
	}

	transformer := nomenclature.NewTransformer(res.Rules)
	presal := workbook.OutputSheet{
		Name:    "PreSal",
		Headers: nomenclature.PreSalColumns,
		Rows:    transformer.TransformRows(source),
	}

	return &TransformResult{
		Analysis: res,
		Sheets:   []workbook.OutputSheet{presal, mappingSheet(res), ruleSheet(res)},
	}, nil
}

// TransformBytes is the byte-level convenience wrapper: workbook in, the
// standardized multi-sheet workbook out.
func (s *TransformService) TransformBytes(ctx context.Context, data []byte) ([]byte, *TransformResult, error) {
	wb, err := workbook.Read(data)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.Transform(ctx, wb)
	if err != nil {
		return nil, nil, err
	}
	out, err := workbook.Write(res.Sheets)
	if err != nil {
		return nil, nil, err
	}
	return out, res, nil
}

func mappingSheet(res *AnalysisResult) workbook.OutputSheet {
	sheet := workbook.OutputSheet{
		Name:    "Mappings",
		Headers: []string{"Category", "Standard Term", "Original Terms", "Rule", "Confidence"},
	}
	for _, m := range res.Mappings {
		sheet.Rows = append(sheet.Rows, []string{
			string(m.Category),
			m.StandardTerm,
			strings.Join(m.OriginalTerms, "; "),
			m.MappingRule,
			strconv.FormatFloat(m.Confidence, 'f', 2, 64),
		})
	}
	return sheet
}

func ruleSheet(res *AnalysisResult) workbook.OutputSheet {
	sheet := workbook.OutputSheet{
		Name:    "Rules",
		Headers: []string{"Name", "Source Pattern", "Target Column", "Transform", "Priority", "Active"},
	}
	for _, r := range res.Rules {
		sheet.Rows = append(sheet.Rows, []string{
			r.Name,
			r.SourcePattern.String(),
			r.TargetColumn,
			string(r.Transform),
			strconv.Itoa(r.Priority),
			strconv.FormatBool(r.IsActive),
		})
	}
	return sheet
}

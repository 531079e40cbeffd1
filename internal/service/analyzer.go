package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/whipsal/whipsal/internal/cache"
	"github.com/whipsal/whipsal/internal/database/repository"
	"github.com/whipsal/whipsal/internal/nomenclature"
	"github.com/whipsal/whipsal/internal/pattern"
	"github.com/whipsal/whipsal/internal/workbook"
)

// AnalysisResult is the complete output of one workbook analysis. Errors
// collects per-cell failures that were isolated rather than aborting the run.
type AnalysisResult struct {
	RunID    string
	Matches  []pattern.PatternMatch
	Analyses []pattern.Analysis
	Mappings []nomenclature.Mapping
	Rules    []nomenclature.Rule
	Errors   []error
}

// AnalyzerService runs the scan, classify, aggregate, map pipeline.
type AnalyzerService struct {
	Scanner    workbook.Scanner
	Classifier *pattern.Classifier
	Aggregator *pattern.Aggregator
	Mapper     *nomenclature.Mapper

	Runs  *repository.RunRepo
	Rules *repository.RuleRepo

	Memo *cache.Cache[string, *AnalysisResult]
}

// AnalyzeBytes decodes workbook bytes and analyzes them, memoizing by content
// hash when a cache is attached.
func (s *AnalyzerService) AnalyzeBytes(ctx context.Context, data []byte) (*AnalysisResult, error) {
	key := fmt.Sprintf("%x", sha256.Sum256(data))
	if s.Memo != nil {
		if res, ok := s.Memo.Get(key); ok {
			return res, nil
		}
	}
	wb, err := workbook.Read(data)
	if err != nil {
		return nil, err
	}
	res, err := s.Analyze(ctx, wb)
	if err != nil {
		return nil, err
	}
	if s.Memo != nil {
		s.Memo.Set(key, res)
	}
	return res, nil
}

// Analyze runs the full pipeline over an in-memory workbook. Sheets scan in
// parallel; aggregation waits for all of them. A cell that blows up during
// classification is recorded as an error and skipped, never aborting the run.
func (s *AnalyzerService) Analyze(ctx context.Context, wb *workbook.Workbook) (*AnalysisResult, error) {
	refs, err := s.Scanner.ScanParallel(ctx, wb)
	if err != nil {
		return nil, fmt.Errorf("scan workbook: %w", err)
	}

	res := &AnalysisResult{RunID: uuid.NewString()}
	for _, ref := range refs {
		matches, cellErr := s.classifyCell(ref.Value)
		if cellErr != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s!%s: %w", ref.Sheet, ref.Address, cellErr))
			continue
		}
		for _, m := range matches {
			res.Matches = append(res.Matches, pattern.PatternMatch{
				ID:          uuid.NewString(),
				Category:    m.Category,
				Value:       m.Value,
				CellAddress: ref.Address,
				SheetName:   ref.Sheet,
				GlobalIndex: ref.GlobalIndex,
			})
		}
	}

	res.Analyses = s.Aggregator.Aggregate(res.Matches)
	res.Mappings = s.Mapper.BuildMappings(res.Analyses)
	res.Rules = s.Mapper.BuildRules(res.Mappings)
	return res, nil
}

// classifyCell isolates per-cell panics so one malformed value cannot take
// down the whole scan.
func (s *AnalyzerService) classifyCell(value string) (matches []pattern.Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches = nil
			err = fmt.Errorf("classify %q: %v", value, r)
		}
	}()
	return s.Classifier.Classify(value), nil
}

// Archive persists a result's run record and rules. Opt-in: the engine is
// stateless unless the caller asks to keep the outcome.
func (s *AnalyzerService) Archive(ctx context.Context, sourceName string, wb *workbook.Workbook, res *AnalysisResult) error {
	if s.Runs == nil || s.Rules == nil {
		return fmt.Errorf("archive store not configured")
	}
	run := repository.AnalysisRun{
		ID:            res.RunID,
		SourceName:    sourceName,
		SheetCount:    len(wb.SheetNames),
		MatchCount:    len(res.Matches),
		AnalysisCount: len(res.Analyses),
		ErrorCount:    len(res.Errors),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Runs.Insert(ctx, run); err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	for _, rule := range res.Rules {
		archived := repository.ArchivedRule{
			ID:                uuid.NewString(),
			RunID:             res.RunID,
			Name:              rule.Name,
			SourcePattern:     rule.SourcePattern.String(),
			TargetColumn:      rule.TargetColumn,
			TransformFunction: string(rule.Transform),
			Priority:          rule.Priority,
			IsActive:          rule.IsActive,
		}
		if err := s.Rules.Insert(ctx, archived); err != nil {
			return fmt.Errorf("archive rule %s: %w", rule.Name, err)
		}
	}
	return nil
}

package repository

import "time"

// AnalysisRun records one archived workbook analysis.
type AnalysisRun struct {
	ID            string
	SourceName    string
	SheetCount    int
	MatchCount    int
	AnalysisCount int
	ErrorCount    int
	CreatedAt     time.Time
}

// ArchivedRule is a persisted transformation rule belonging to a run.
// SourcePattern is stored as regex text; it recompiles on load.
type ArchivedRule struct {
	ID                string
	RunID             string
	Name              string
	SourcePattern     string
	TargetColumn      string
	TransformFunction string
	Priority          int
	IsActive          bool
	CreatedAt         time.Time
}

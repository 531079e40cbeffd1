package repository

import (
	"context"
	"database/sql"
)

// RunRepo stores analysis runs.
type RunRepo struct{ db *sql.DB }

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Insert(ctx context.Context, run AnalysisRun) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO analysis_runs(id, source_name, sheet_count, match_count, analysis_count, error_count, created_at)
	VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, run.ID, run.SourceName, run.SheetCount, run.MatchCount, run.AnalysisCount, run.ErrorCount)
	return err
}

func (r *RunRepo) Get(ctx context.Context, id string) (*AnalysisRun, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, source_name, sheet_count, match_count, analysis_count, error_count, created_at
	FROM analysis_runs WHERE id = ?
	`, id)
	var run AnalysisRun
	if err := row.Scan(&run.ID, &run.SourceName, &run.SheetCount, &run.MatchCount, &run.AnalysisCount, &run.ErrorCount, &run.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// Latest returns the most recent run, nil when the archive is empty.
func (r *RunRepo) Latest(ctx context.Context) (*AnalysisRun, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, source_name, sheet_count, match_count, analysis_count, error_count, created_at
	FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT 1
	`)
	var run AnalysisRun
	if err := row.Scan(&run.ID, &run.SourceName, &run.SheetCount, &run.MatchCount, &run.AnalysisCount, &run.ErrorCount, &run.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *RunRepo) List(ctx context.Context) ([]AnalysisRun, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, source_name, sheet_count, match_count, analysis_count, error_count, created_at
	FROM analysis_runs ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(&run.ID, &run.SourceName, &run.SheetCount, &run.MatchCount, &run.AnalysisCount, &run.ErrorCount, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

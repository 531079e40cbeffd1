package repository

import (
	"context"
	"database/sql"
)

// RuleRepo stores archived transformation rules.
type RuleRepo struct{ db *sql.DB }

func NewRuleRepo(db *sql.DB) *RuleRepo { return &RuleRepo{db: db} }

func (r *RuleRepo) Insert(ctx context.Context, rule ArchivedRule) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transformation_rules(id, run_id, name, source_pattern, target_column, transform_function, priority, is_active, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, rule.ID, rule.RunID, rule.Name, rule.SourcePattern, rule.TargetColumn, rule.TransformFunction, rule.Priority, rule.IsActive)
	return err
}

// ListByRun returns a run's rules in descending priority order, the order
// they apply in.
func (r *RuleRepo) ListByRun(ctx context.Context, runID string) ([]ArchivedRule, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, run_id, name, source_pattern, target_column, transform_function, priority, is_active, created_at
	FROM transformation_rules WHERE run_id = ? ORDER BY priority DESC, created_at ASC, id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchivedRule
	for rows.Next() {
		var rule ArchivedRule
		if err := rows.Scan(&rule.ID, &rule.RunID, &rule.Name, &rule.SourcePattern, &rule.TargetColumn,
			&rule.TransformFunction, &rule.Priority, &rule.IsActive, &rule.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

func (r *RuleRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transformation_rules SET is_active = ? WHERE id = ?`, active, id)
	return err
}

func (r *RuleRepo) Get(ctx context.Context, id string) (*ArchivedRule, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, run_id, name, source_pattern, target_column, transform_function, priority, is_active, created_at
	FROM transformation_rules WHERE id = ?
	`, id)
	var rule ArchivedRule
	if err := row.Scan(&rule.ID, &rule.RunID, &rule.Name, &rule.SourcePattern, &rule.TargetColumn,
		&rule.TransformFunction, &rule.Priority, &rule.IsActive, &rule.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

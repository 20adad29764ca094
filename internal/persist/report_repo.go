package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shapepush/arena/internal/report"
)

// ReportRepo stores run reports; per-kind/per-level contributions go to
// their own table so they can be aggregated across runs.
type ReportRepo struct {
	db *DB
}

func NewReportRepo(db *DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Save writes the report and its contributions in one transaction.
func (r *ReportRepo) Save(ctx context.Context, rep report.Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("report encode: %w", err)
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("report begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO run_reports (run_id, reason, finished_at, time_of_attempt, pushed_objects, total_score, body)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rep.RunID, rep.Reason, rep.FinishedAt, rep.TimeOfAttempt, rep.AmountOfPushedObjects, rep.TotalScore, body,
	); err != nil {
		return fmt.Errorf("report insert: %w", err)
	}

	for _, item := range rep.Score {
		for _, info := range item.ItemInfos {
			if _, err := tx.Exec(ctx,
				`INSERT INTO run_contributions (run_id, item_type, collect_level, contribute_score)
				 VALUES ($1, $2, $3, $4)`,
				rep.RunID, item.ItemType, info.CollectLevel, info.ContributeScore,
			); err != nil {
				return fmt.Errorf("contribution insert: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// BestTotals returns the highest total scores recorded, best first.
func (r *ReportRepo) BestTotals(ctx context.Context, limit int) ([]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT total_score FROM run_reports ORDER BY total_score DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

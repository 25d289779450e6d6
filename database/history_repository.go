package database

import (
	"github.com/google/uuid"

	"SocialAutoPoster/models"
)

func (d *Database) SaveRun(run *models.RunRecord) error {
	query := `INSERT INTO runs (id, post_type, started_at, finished_at)
			  VALUES ($1, $2, $3, $4)`

	if _, err := d.DB.Exec(query, run.ID, run.PostType, run.StartedAt, run.FinishedAt); err != nil {
		return err
	}

	for _, result := range run.Results {
		query := `INSERT INTO publish_results (id, run_id, platform, success, message, post_id)
				  VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := d.DB.Exec(query, uuid.New().String(), run.ID, result.Platform,
			result.Success, result.Message, result.PostID); err != nil {
			return err
		}
	}

	return nil
}

// RecentRuns returns the newest runs with their per-platform results.
func (d *Database) RecentRuns(limit int) ([]*models.RunRecord, error) {
	query := `SELECT id, post_type, started_at, finished_at
			  FROM runs ORDER BY started_at DESC LIMIT $1`

	rows, err := d.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		run := &models.RunRecord{}
		if err := rows.Scan(&run.ID, &run.PostType, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, run := range runs {
		results, err := d.runResults(run.ID)
		if err != nil {
			return nil, err
		}
		run.Results = results
	}

	return runs, nil
}

func (d *Database) runResults(runID string) ([]models.PublishResult, error) {
	query := `SELECT platform, success, message, COALESCE(post_id, '')
			  FROM publish_results WHERE run_id = $1 ORDER BY created_at`

	rows, err := d.DB.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.PublishResult
	for rows.Next() {
		var r models.PublishResult
		if err := rows.Scan(&r.Platform, &r.Success, &r.Message, &r.PostID); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

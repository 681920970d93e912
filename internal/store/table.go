package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const schemaVersion = 1

// Migrate brings the schema up to schemaVersion, tracked in PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= schemaVersion {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  external_id TEXT UNIQUE,
  title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  work_mode TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS applications (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  job_id INTEGER NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
  stage TEXT NOT NULL DEFAULT '',
  outcome TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  applied_on TEXT NOT NULL,
  interview_time TEXT
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_applications_job_id
ON applications(job_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_applications_applied_on
ON applications(applied_on);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}

	return tx.Commit()
}

// JobSummary is a job row plus its application history, for listings.
type JobSummary struct {
	ID            int64  `json:"id"`
	ExternalID    string `json:"external_id"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Location      string `json:"location"`
	WorkMode      string `json:"work_mode"`
	Salary        string `json:"salary"`
	URL           string `json:"url"`
	LatestStage   string `json:"latest_stage"`
	LatestOutcome string `json:"latest_outcome"`
	Applications  int    `json:"applications"`
	UpdatedAt     string `json:"updated_at"`
}

type ListJobsOpts struct {
	Sort  string // updated | company | title
	Limit int
}

func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) ([]JobSummary, error) {
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	order := map[string]string{
		"updated": "j.updated_at DESC",
		"company": "j.company COLLATE NOCASE ASC",
		"title":   "j.title COLLATE NOCASE ASC",
	}[opts.Sort]
	if order == "" {
		order = "j.updated_at DESC"
	}

	query := fmt.Sprintf(`
SELECT j.id, COALESCE(j.external_id, ''), j.title, j.company, j.location, j.work_mode, j.salary, j.url,
  COALESCE((SELECT a.stage FROM applications a WHERE a.job_id = j.id ORDER BY a.id DESC LIMIT 1), ''),
  COALESCE((SELECT a.outcome FROM applications a WHERE a.job_id = j.id ORDER BY a.id DESC LIMIT 1), ''),
  (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id),
  j.updated_at
FROM jobs j
ORDER BY %s, j.id DESC
LIMIT ?;
`, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("store: list jobs: %w", err)
	}
	defer rows.Close()

	out := []JobSummary{}
	for rows.Next() {
		var j JobSummary
		if err := rows.Scan(
			&j.ID,
			&j.ExternalID,
			&j.Title,
			&j.Company,
			&j.Location,
			&j.WorkMode,
			&j.Salary,
			&j.URL,
			&j.LatestStage,
			&j.LatestOutcome,
			&j.Applications,
			&j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan job: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteJob removes a job and, by cascade, its applications.
func DeleteJob(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("store: delete job %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CleanupOldApplications deletes applications recorded before now-age and
// then any job left with no applications.
func CleanupOldApplications(ctx context.Context, db *sql.DB, age time.Duration) (deleted int64, err error) {
	cutoff := time.Now().UTC().Add(-age).Format(time.RFC3339)

	res, err := db.ExecContext(ctx, `DELETE FROM applications WHERE applied_on < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("store: cleanup applications: %w", err)
	}
	deleted, _ = res.RowsAffected()

	if _, err := db.ExecContext(ctx, `
DELETE FROM jobs
WHERE NOT EXISTS (SELECT 1 FROM applications a WHERE a.job_id = jobs.id);
`); err != nil {
		return deleted, fmt.Errorf("store: cleanup orphan jobs: %w", err)
	}
	return deleted, nil
}

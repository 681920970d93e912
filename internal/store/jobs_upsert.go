package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jobflow-engine/internal/domain"
)

// UpsertJobAndApplication stores job keyed by ExternalID (updating the
// existing row when one exists) and always adds app as a new application.
// Both happen in one transaction; job.ID, app.ID and app.JobID are set on success.
func UpsertJobAndApplication(ctx context.Context, db *sql.DB, job *domain.Job, app *domain.Application) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)

	var createdAt string
	err = tx.QueryRowContext(ctx, `
INSERT INTO jobs (external_id, title, company, location, url, work_mode, salary, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(external_id) DO UPDATE SET
  title = excluded.title,
  company = excluded.company,
  location = excluded.location,
  url = excluded.url,
  work_mode = excluded.work_mode,
  salary = excluded.salary,
  description = excluded.description,
  updated_at = excluded.updated_at
RETURNING id, created_at;`,
		nullIfEmpty(job.ExternalID),
		job.Title,
		job.Company,
		job.Location,
		job.URL,
		job.WorkMode,
		job.Salary,
		job.Description,
		stamp,
		stamp,
	).Scan(&job.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("store: upsert job: %w", err)
	}
	job.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	job.UpdatedAt = now.Truncate(time.Second)

	if app.AppliedOn.IsZero() {
		app.AppliedOn = now.Truncate(time.Second)
	}
	var interview any
	if app.InterviewTime != nil {
		interview = app.InterviewTime.UTC().Format(time.RFC3339)
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO applications (job_id, stage, outcome, notes, applied_on, interview_time)
VALUES (?, ?, ?, ?, ?, ?);`,
		job.ID,
		app.Stage,
		app.Outcome,
		app.Notes,
		app.AppliedOn.UTC().Format(time.RFC3339),
		interview,
	)
	if err != nil {
		return fmt.Errorf("store: insert application: %w", err)
	}
	app.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: application id: %w", err)
	}
	app.JobID = job.ID

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	committed = true
	return nil
}

// GetJob loads one job by id; sql.ErrNoRows when it doesn't exist.
func GetJob(ctx context.Context, db *sql.DB, id int64) (domain.Job, error) {
	var (
		j                domain.Job
		ext              sql.NullString
		created, updated string
	)
	err := db.QueryRowContext(ctx, `
SELECT id, external_id, title, company, location, url, work_mode, salary, description, created_at, updated_at
FROM jobs WHERE id = ?;`, id).Scan(
		&j.ID, &ext, &j.Title, &j.Company, &j.Location, &j.URL, &j.WorkMode, &j.Salary, &j.Description, &created, &updated,
	)
	if err != nil {
		return j, err
	}
	j.ExternalID = ext.String
	j.CreatedAt, _ = time.Parse(time.RFC3339, created)
	j.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return j, nil
}

// ListApplications returns a job's applications, oldest first.
func ListApplications(ctx context.Context, db *sql.DB, jobID int64) ([]domain.Application, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, job_id, stage, outcome, notes, applied_on, interview_time
FROM applications WHERE job_id = ? ORDER BY id;`, jobID)
	if err != nil {
		return nil, fmt.Errorf("store: list applications: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		var (
			a         domain.Application
			applied   string
			interview sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.JobID, &a.Stage, &a.Outcome, &a.Notes, &applied, &interview); err != nil {
			return nil, fmt.Errorf("store: scan application: %w", err)
		}
		a.AppliedOn, _ = time.Parse(time.RFC3339, applied)
		if interview.Valid {
			if t, err := time.Parse(time.RFC3339, interview.String); err == nil {
				a.InterviewTime = &t
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

package store

import (
	"context"
)

const applicationColumns = `id, job_id, student_id, resume_key, cover_letter, status, created_at, updated_at`

// Application status values accepted by UpdateApplicationStatus.
var ApplicationStatuses = map[string]struct{}{
	"pending":  {},
	"reviewed": {},
	"accepted": {},
	"rejected": {},
}

func scanApplication(row interface{ Scan(...any) error }) (*Application, error) {
	var a Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.StudentID, &a.ResumeKey, &a.CoverLetter,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// CreateApplication inserts a student's application. The (job_id, student_id)
// unique constraint enforces one application per student per job; violations
// surface unchanged for the handler to map.
func (s *Store) CreateApplication(ctx context.Context, a *Application) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO applications (id, job_id, student_id, resume_key, cover_letter, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.StudentID, a.ResumeKey, a.CoverLetter, a.Status,
	)
	return err
}

// GetApplication fetches a single application.
func (s *Store) GetApplication(ctx context.Context, id string) (*Application, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

// ListApplicationsByStudent returns a student's applications, newest first.
func (s *Store) ListApplicationsByStudent(ctx context.Context, studentID string) ([]*Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// ListApplicationsByJob returns all applications for a posting, oldest first.
func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]*Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// UpdateApplicationStatus moves an application through the review pipeline.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id, status string) (*Application, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE applications SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+applicationColumns,
		id, status,
	)
	return scanApplication(row)
}

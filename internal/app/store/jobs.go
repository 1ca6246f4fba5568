package store

import (
	"context"
)

const jobColumns = `id, company_id, title, description, location, job_type, salary_range, status, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
		&j.JobType, &j.SalaryRange, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}

// CreateJob inserts a new job posting owned by a company account.
func (s *Store) CreateJob(ctx context.Context, j *Job) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO jobs (id, company_id, title, description, location, job_type, salary_range, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.JobType, j.SalaryRange, j.Status,
	)
	return err
}

// GetJob fetches a single job posting.
func (s *Store) GetJob(ctx context.Context, id string) (*Job, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

// ListOpenJobs returns open postings, newest first.
func (s *Store) ListOpenJobs(ctx context.Context, limit, offset int) ([]*Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = 'open' ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// ListJobsByCompany returns all postings owned by the given company, newest first.
func (s *Store) ListJobsByCompany(ctx context.Context, companyID string) ([]*Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// JobPatch carries optional job posting updates. Nil fields are left untouched.
type JobPatch struct {
	Title       *string
	Description *string
	Location    *string
	JobType     *string
	SalaryRange *string
	Status      *string
}

// UpdateJob applies a partial update and returns the fresh record.
func (s *Store) UpdateJob(ctx context.Context, id string, patch JobPatch) (*Job, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE jobs SET
			title        = COALESCE($2, title),
			description  = COALESCE($3, description),
			location     = COALESCE($4, location),
			job_type     = COALESCE($5, job_type),
			salary_range = COALESCE($6, salary_range),
			status       = COALESCE($7, status),
			updated_at   = now()
		WHERE id = $1
		RETURNING `+jobColumns,
		id, patch.Title, patch.Description, patch.Location, patch.JobType, patch.SalaryRange, patch.Status,
	)
	return scanJob(row)
}

// DeleteJob removes a posting and, via cascade, its applications.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

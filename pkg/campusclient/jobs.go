package campusclient

import (
	"context"
	"fmt"
	"net/http"
)

type jobsData struct {
	Jobs []*Job `json:"jobs"`
}

type jobData struct {
	Job *Job `json:"job"`
}

// ListJobs returns open postings, newest first. Zero values use the server
// defaults.
func (c *Client) ListJobs(ctx context.Context, limit, offset int) ([]*Job, error) {
	path := "/api/jobs"
	if limit > 0 || offset > 0 {
		path = fmt.Sprintf("%s?limit=%d&offset=%d", path, limit, offset)
	}

	var result jobsData
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Jobs, nil
}

// ListMyJobs returns the calling company's postings, closed ones included.
func (c *Client) ListMyJobs(ctx context.Context) ([]*Job, error) {
	var result jobsData
	if err := c.doJSON(ctx, http.MethodGet, "/api/jobs/mine", nil, &result); err != nil {
		return nil, err
	}
	return result.Jobs, nil
}

// GetJob fetches a single posting.
func (c *Client) GetJob(ctx context.Context, jobID string) (*Job, error) {
	var result jobData
	if err := c.doJSON(ctx, http.MethodGet, "/api/jobs/"+jobID, nil, &result); err != nil {
		return nil, err
	}
	return result.Job, nil
}

// CreateJobRequest describes a new posting. Title, Description, and JobType
// are required.
type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	JobType     string `json:"jobType"`
	SalaryRange string `json:"salaryRange,omitempty"`
}

// CreateJob creates an open posting owned by the calling company.
func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (*Job, error) {
	var result jobData
	if err := c.doJSON(ctx, http.MethodPost, "/api/jobs", req, &result); err != nil {
		return nil, err
	}
	return result.Job, nil
}

// JobUpdate carries optional posting changes. Nil fields are untouched.
type JobUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	JobType     *string `json:"jobType,omitempty"`
	SalaryRange *string `json:"salaryRange,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// UpdateJob applies a partial update to a posting the caller owns.
func (c *Client) UpdateJob(ctx context.Context, jobID string, update JobUpdate) (*Job, error) {
	var result jobData
	if err := c.doJSON(ctx, http.MethodPatch, "/api/jobs/"+jobID, update, &result); err != nil {
		return nil, err
	}
	return result.Job, nil
}

// DeleteJob removes a posting the caller owns.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/jobs/"+jobID, nil, nil)
}

package campusclient

import (
	"context"
	"net/http"
)

type applicationsData struct {
	Applications []*Application `json:"applications"`
}

type applicationData struct {
	Application *Application `json:"application"`
}

// PresignResume requests an upload URL for a resume. The returned key goes
// on the SubmitApplicationRequest once the upload succeeds.
func (c *Client) PresignResume(ctx context.Context, req PresignRequest) (*Presign, error) {
	var result Presign
	if err := c.doJSON(ctx, http.MethodPost, "/api/applications/resume/presign", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitApplicationRequest files an application against an open posting.
type SubmitApplicationRequest struct {
	JobID       string `json:"jobId"`
	ResumeKey   string `json:"resumeKey,omitempty"`
	CoverLetter string `json:"coverLetter,omitempty"`
}

// SubmitApplication applies the calling student to a job. One application
// per student per job.
func (c *Client) SubmitApplication(ctx context.Context, req SubmitApplicationRequest) (*Application, error) {
	var result applicationData
	if err := c.doJSON(ctx, http.MethodPost, "/api/applications", req, &result); err != nil {
		return nil, err
	}
	return result.Application, nil
}

// ListMyApplications returns the calling student's applications.
func (c *Client) ListMyApplications(ctx context.Context) ([]*Application, error) {
	var result applicationsData
	if err := c.doJSON(ctx, http.MethodGet, "/api/applications/mine", nil, &result); err != nil {
		return nil, err
	}
	return result.Applications, nil
}

// ListJobApplications returns every application for a posting the calling
// company owns.
func (c *Client) ListJobApplications(ctx context.Context, jobID string) ([]*Application, error) {
	var result applicationsData
	if err := c.doJSON(ctx, http.MethodGet, "/api/applications/job/"+jobID, nil, &result); err != nil {
		return nil, err
	}
	return result.Applications, nil
}

// UpdateApplicationStatus moves an application through the review pipeline:
// pending, reviewed, accepted, rejected.
func (c *Client) UpdateApplicationStatus(ctx context.Context, applicationID, status string) (*Application, error) {
	var result applicationData
	req := map[string]string{"status": status}
	if err := c.doJSON(ctx, http.MethodPatch, "/api/applications/"+applicationID+"/status", req, &result); err != nil {
		return nil, err
	}
	return result.Application, nil
}

// DownloadResume returns a short-lived download URL for an application's
// resume.
func (c *Client) DownloadResume(ctx context.Context, applicationID string) (*Presign, error) {
	var result Presign
	if err := c.doJSON(ctx, http.MethodGet, "/api/applications/"+applicationID+"/resume", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file covers job postings: public listing and detail for students, and
the company-only create/update/delete operations.
*/
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/pkg/auth/jwt"
	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/randx"
	"github.com/Bini-2002/campuscraft/internal/pkg/req"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"

	defaultPageSize = 20
	maxPageSize     = 100
)

// jobTypes are the accepted values for a posting's jobType field.
var jobTypes = map[string]struct{}{
	"full-time":  {},
	"part-time":  {},
	"internship": {},
	"contract":   {},
}

// pageParams parses limit/offset query parameters with sane bounds.
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxPageSize)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// HandleListJobs returns open postings, newest first. Public to any
// authenticated user.
func HandleListJobs(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pageParams(r)

		jobs, err := deps.Store.ListOpenJobs(r.Context(), limit, offset)
		if err != nil {
			logx.Error(err, "list_jobs: query failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"jobs": jobs})
	}
}

// HandleListMyJobs returns every posting owned by the calling company,
// closed ones included.
func HandleListMyJobs(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		jobs, err := deps.Store.ListJobsByCompany(r.Context(), identity.ID)
		if err != nil {
			logx.Error(err, "list_my_jobs: query failed", "company_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"jobs": jobs})
	}
}

// HandleGetJob returns a single posting.
func HandleGetJob(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "id")

		job, err := deps.Store.GetJob(r.Context(), jobID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrJobNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"job": job})
	}
}

type CreateJobInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	JobType     string `json:"jobType"`
	SalaryRange string `json:"salaryRange"`
}

// HandleCreateJob creates an open posting owned by the calling company.
func HandleCreateJob(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input CreateJobInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Title = strings.TrimSpace(input.Title)
		input.Description = strings.TrimSpace(input.Description)
		if input.Title == "" || input.Description == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if _, ok := jobTypes[input.JobType]; !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		job := &store.Job{
			ID:          randx.NewID(),
			CompanyID:   identity.ID,
			Title:       input.Title,
			Description: input.Description,
			Location:    strings.TrimSpace(input.Location),
			JobType:     input.JobType,
			SalaryRange: strings.TrimSpace(input.SalaryRange),
			Status:      JobStatusOpen,
		}

		if err := deps.Store.CreateJob(r.Context(), job); err != nil {
			logx.Error(err, "create_job: insert failed", "company_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"job": job})
	}
}

type UpdateJobInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	JobType     *string `json:"jobType"`
	SalaryRange *string `json:"salaryRange"`
	Status      *string `json:"status"`
}

// ownedJob loads the posting and checks that the caller's company owns it.
func ownedJob(r *http.Request, deps *AppDeps, jobID, companyID string) (*store.Job, *errs.CustomError) {
	job, err := deps.Store.GetJob(r.Context(), jobID)
	if err != nil {
		return nil, errs.NewError(errs.ErrJobNotFound)
	}
	if job.CompanyID != companyID {
		return nil, errs.NewError(errs.ErrJobNotOwned)
	}
	return job, nil
}

// HandleUpdateJob applies a partial update to a posting the caller owns.
func HandleUpdateJob(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		jobID := chi.URLParam(r, "id")

		var input UpdateJobInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, customErr := ownedJob(r, deps, jobID, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Status != nil && *input.Status != JobStatusOpen && *input.Status != JobStatusClosed {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if input.JobType != nil {
			if _, ok := jobTypes[*input.JobType]; !ok {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
		}

		job, err := deps.Store.UpdateJob(r.Context(), jobID, store.JobPatch{
			Title:       input.Title,
			Description: input.Description,
			Location:    input.Location,
			JobType:     input.JobType,
			SalaryRange: input.SalaryRange,
			Status:      input.Status,
		})
		if err != nil {
			logx.Error(err, "update_job: update failed", "job_id", jobID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"job": job})
	}
}

// HandleDeleteJob removes a posting the caller owns, cascading to its
// applications.
func HandleDeleteJob(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		jobID := chi.URLParam(r, "id")

		if _, customErr := ownedJob(r, deps, jobID, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Store.DeleteJob(r.Context(), jobID); err != nil {
			logx.Error(err, "delete_job: delete failed", "job_id", jobID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file covers job applications: resume presigning and submission by
students, and review by the company that owns the posting.
*/
package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Bini-2002/campuscraft/internal/app/db"
	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/app/uploads"
	"github.com/Bini-2002/campuscraft/internal/pkg/auth/jwt"
	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/randx"
	"github.com/Bini-2002/campuscraft/internal/pkg/req"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

const maxCoverLetterLen = 5000

func resumeKeyPrefix(studentID string) string {
	return "resumes/" + studentID + "/"
}

// HandlePresignResume validates the proposed resume upload and returns a
// presigned PUT URL plus the object key to reference when submitting the
// application.
func HandlePresignResume(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input PresignUploadInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := uploads.ValidateResume(input.FileName, input.MimeType, input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext := strings.ToLower(filepath.Ext(input.FileName))
		key := resumeKeyPrefix(identity.ID) + randx.NewID() + ext

		uploadURL, err := deps.Storage.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, uploads.PresignedURLDuration)
		if err != nil {
			logx.Error(err, "presign_resume: storage presign failed", "student_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"uploadUrl": uploadURL,
			"key":       key,
			"expiresIn": int(uploads.PresignedURLDuration.Seconds()),
		})
	}
}

type SubmitApplicationInput struct {
	JobID       string `json:"jobId"`
	ResumeKey   string `json:"resumeKey"`
	CoverLetter string `json:"coverLetter"`
}

// HandleSubmitApplication files a student's application against an open
// posting. One application per student per job.
func HandleSubmitApplication(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input SubmitApplicationInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !randx.IsValidID(input.JobID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if len(input.CoverLetter) > maxCoverLetterLen {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		// Resume keys come from the presign endpoint, so they must live under
		// the student's own prefix.
		if input.ResumeKey != "" && !strings.HasPrefix(input.ResumeKey, resumeKeyPrefix(identity.ID)) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		job, err := deps.Store.GetJob(r.Context(), input.JobID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrJobNotFound))
			return
		}
		if job.Status != JobStatusOpen {
			resp.RespondError(w, r, errs.NewError(errs.ErrJobNotFound))
			return
		}

		application := &store.Application{
			ID:          randx.NewID(),
			JobID:       job.ID,
			StudentID:   identity.ID,
			ResumeKey:   input.ResumeKey,
			CoverLetter: strings.TrimSpace(input.CoverLetter),
			Status:      "pending",
		}

		if err := deps.Store.CreateApplication(r.Context(), application); err != nil {
			if db.IsUniqueViolation(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyApplied))
				return
			}
			logx.Error(err, "submit_application: insert failed", "job_id", job.ID, "student_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"application": application})
	}
}

// HandleListMyApplications returns the calling student's applications.
func HandleListMyApplications(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		applications, err := deps.Store.ListApplicationsByStudent(r.Context(), identity.ID)
		if err != nil {
			logx.Error(err, "list_my_applications: query failed", "student_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"applications": applications})
	}
}

// HandleListJobApplications returns every application for a posting the
// calling company owns.
func HandleListJobApplications(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		jobID := chi.URLParam(r, "id")

		if _, customErr := ownedJob(r, deps, jobID, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		applications, err := deps.Store.ListApplicationsByJob(r.Context(), jobID)
		if err != nil {
			logx.Error(err, "list_job_applications: query failed", "job_id", jobID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"applications": applications})
	}
}

type UpdateApplicationStatusInput struct {
	Status string `json:"status"`
}

// HandleUpdateApplicationStatus moves an application through the review
// pipeline. Only the company that owns the posting may do this.
func HandleUpdateApplicationStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		applicationID := chi.URLParam(r, "id")

		var input UpdateApplicationStatusInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, ok := store.ApplicationStatuses[input.Status]; !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidApplicationStatus))
			return
		}

		application, err := deps.Store.GetApplication(r.Context(), applicationID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrApplicationNotFound))
			return
		}

		if _, customErr := ownedJob(r, deps, application.JobID, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		updated, err := deps.Store.UpdateApplicationStatus(r.Context(), applicationID, input.Status)
		if err != nil {
			logx.Error(err, "update_application_status: update failed", "application_id", applicationID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"application": updated})
	}
}

// HandleDownloadResume issues a presigned download URL for an application's
// resume. Accessible to the applying student and the posting's company.
func HandleDownloadResume(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		applicationID := chi.URLParam(r, "id")

		application, err := deps.Store.GetApplication(r.Context(), applicationID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrApplicationNotFound))
			return
		}

		allowed := application.StudentID == identity.ID
		if !allowed && identity.UserType == UserTypeCompany {
			if _, customErr := ownedJob(r, deps, application.JobID, identity.ID); customErr == nil {
				allowed = true
			}
		}
		if !allowed {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbiddenRole))
			return
		}

		if application.ResumeKey == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrApplicationNotFound))
			return
		}

		downloadURL, err := deps.Storage.PresignDownload(r.Context(), application.ResumeKey, uploads.PresignedURLDuration)
		if err != nil {
			logx.Error(err, "download_resume: storage presign failed", "application_id", applicationID)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"downloadUrl": downloadURL,
			"expiresIn":   int(uploads.PresignedURLDuration.Seconds()),
		})
	}
}

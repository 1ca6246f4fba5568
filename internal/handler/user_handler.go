/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file covers the authenticated user's profile: reading it, applying
partial updates, and issuing presigned upload URLs for avatars.
*/
package handler

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/app/uploads"
	"github.com/Bini-2002/campuscraft/internal/pkg/auth/jwt"
	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/randx"
	"github.com/Bini-2002/campuscraft/internal/pkg/req"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

// userResponse renders a user for the wire, resolving the stored avatar key
// into a short-lived download URL.
func userResponse(ctx context.Context, deps *AppDeps, user *store.User) map[string]any {
	avatarURL := ""
	if user.AvatarKey != "" {
		url, err := deps.Storage.PresignDownload(ctx, user.AvatarKey, uploads.PresignedURLDuration)
		if err != nil {
			logx.Warn("Failed to presign avatar download", "user_id", user.ID, "error", err)
		} else {
			avatarURL = url
		}
	}

	return map[string]any{
		"user":      user,
		"avatarUrl": avatarURL,
	}
}

// HandleGetProfile returns the authenticated user's account record.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		user, err := deps.Store.GetUserByID(r.Context(), identity.ID)
		if err != nil {
			logx.Warn("get_profile: user not found", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		resp.RespondSuccess(w, r, userResponse(r.Context(), deps, user))
	}
}

type UpdateProfileInput struct {
	Name        *string `json:"name"`
	University  *string `json:"university"`
	CompanyName *string `json:"companyName"`
	AvatarKey   *string `json:"avatarKey"`
}

// HandleUpdateProfile applies a partial profile update. Absent fields stay
// untouched; a replaced avatar's old object is deleted in the background.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input UpdateProfileInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		oldUser, err := deps.Store.GetUserByID(r.Context(), identity.ID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		// Students have no company name and companies have no university.
		if identity.UserType == UserTypeStudent {
			input.CompanyName = nil
		} else {
			input.University = nil
		}

		if input.AvatarKey != nil && *input.AvatarKey != "" {
			if !strings.HasPrefix(*input.AvatarKey, avatarKeyPrefix(identity.ID)) {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
		}

		updated, err := deps.Store.UpdateUserProfile(r.Context(), identity.ID, store.UserProfilePatch{
			Name:        input.Name,
			University:  input.University,
			CompanyName: input.CompanyName,
			AvatarKey:   input.AvatarKey,
		})
		if err != nil {
			logx.Error(err, "update_profile: database update failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if input.AvatarKey != nil && oldUser.AvatarKey != "" && oldUser.AvatarKey != *input.AvatarKey {
			go func(key string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := deps.Storage.Delete(ctx, key); err != nil {
					logx.Warn("Failed to delete replaced avatar object", "key", key, "error", err)
				}
			}(oldUser.AvatarKey)
		}

		resp.RespondSuccess(w, r, userResponse(r.Context(), deps, updated))
	}
}

func avatarKeyPrefix(userID string) string {
	return "avatars/" + userID + "/"
}

type PresignUploadInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignAvatar validates the proposed avatar upload and returns a
// presigned PUT URL plus the object key the client should save on its profile
// once the upload succeeds.
func HandlePresignAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input PresignUploadInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := uploads.ValidateAvatar(input.FileName, input.MimeType, input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext := strings.ToLower(filepath.Ext(input.FileName))
		key := avatarKeyPrefix(identity.ID) + randx.NewID() + ext

		uploadURL, err := deps.Storage.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, uploads.PresignedURLDuration)
		if err != nil {
			logx.Error(err, "presign_avatar: storage presign failed", "user_id", identity.ID)
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

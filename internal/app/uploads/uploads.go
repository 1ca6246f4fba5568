/*
Package uploads holds validation rules for user-supplied files.

Two file classes exist: profile images (avatars) and application resumes.
Each has its own allowed MIME set and size limit; both are checked before a
presigned upload URL is ever issued.
*/
package uploads

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
)

const (
	// MaxAvatarSize is the maximum allowed avatar size in bytes (2 MB).
	MaxAvatarSize = 2 * 1024 * 1024

	// MaxResumeSize is the maximum allowed resume size in bytes (10 MB).
	MaxResumeSize = 10 * 1024 * 1024

	// PresignedURLDuration is how long issued upload/download URLs stay valid.
	PresignedURLDuration = 5 * time.Minute
)

// avatarExtToMIME maps allowed avatar extensions to their MIME types.
var avatarExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// resumeExtToMIME maps allowed resume extensions to their MIME types.
var resumeExtToMIME = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ValidateAvatar checks name, MIME type, and size of a profile image upload.
func ValidateAvatar(fileName, mimeType string, fileSize int64) *errs.CustomError {
	return validate(fileName, mimeType, fileSize, MaxAvatarSize, avatarExtToMIME)
}

// ValidateResume checks name, MIME type, and size of a resume upload.
func ValidateResume(fileName, mimeType string, fileSize int64) *errs.CustomError {
	return validate(fileName, mimeType, fileSize, MaxResumeSize, resumeExtToMIME)
}

func validate(fileName, mimeType string, fileSize, maxSize int64, extToMIME map[string]string) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}
	if fileSize > maxSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	expectedMIME, ok := extToMIME[ext]
	if !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	// The declared MIME type must agree with the extension.
	if expectedMIME != strings.ToLower(mimeType) {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}

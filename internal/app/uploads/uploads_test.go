package uploads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
)

func TestValidateAvatarAccepted(t *testing.T) {
	cases := []struct {
		name string
		mime string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"photo.png", "image/png"},
		{"photo.webp", "image/webp"},
	}

	for _, tc := range cases {
		assert.Nil(t, ValidateAvatar(tc.name, tc.mime, 1024), "expected %s to pass", tc.name)
	}
}

func TestValidateAvatarRejections(t *testing.T) {
	tooBig := ValidateAvatar("photo.png", "image/png", MaxAvatarSize+1)
	require.NotNil(t, tooBig)
	assert.Equal(t, errs.ErrFileSizeTooLarge, tooBig.Code)

	badExt := ValidateAvatar("photo.gif", "image/gif", 1024)
	require.NotNil(t, badExt)
	assert.Equal(t, errs.ErrFileTypeInvalid, badExt.Code)

	mimeMismatch := ValidateAvatar("photo.png", "image/jpeg", 1024)
	require.NotNil(t, mimeMismatch)
	assert.Equal(t, errs.ErrFileTypeInvalid, mimeMismatch.Code)

	emptyFile := ValidateAvatar("photo.png", "image/png", 0)
	require.NotNil(t, emptyFile)
	assert.Equal(t, errs.ErrInvalidParams, emptyFile.Code)
}

func TestValidateResumeAccepted(t *testing.T) {
	assert.Nil(t, ValidateResume("cv.pdf", "application/pdf", 1024))
	assert.Nil(t, ValidateResume("cv.doc", "application/msword", 1024))
	assert.Nil(t, ValidateResume("cv.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024))
}

func TestValidateResumeRejections(t *testing.T) {
	tooBig := ValidateResume("cv.pdf", "application/pdf", MaxResumeSize+1)
	require.NotNil(t, tooBig)
	assert.Equal(t, errs.ErrFileSizeTooLarge, tooBig.Code)

	// An image is never a valid resume, even under the size cap.
	badType := ValidateResume("cv.png", "image/png", 1024)
	require.NotNil(t, badType)
	assert.Equal(t, errs.ErrFileTypeInvalid, badType.Code)

	noExt := ValidateResume("cv", "application/pdf", 1024)
	require.NotNil(t, noExt)
	assert.Equal(t, errs.ErrFileTypeInvalid, noExt.Code)
}

func TestResumeLimitLargerThanAvatarLimit(t *testing.T) {
	assert.Greater(t, int64(MaxResumeSize), int64(MaxAvatarSize))
}

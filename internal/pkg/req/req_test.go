package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func bind(t *testing.T, contentType, body string) (*loginBody, *errs.CustomError) {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}

	var dst loginBody
	customErr := BindJSON(httptest.NewRecorder(), r, &dst)
	return &dst, customErr
}

func TestBindJSONDecodesBody(t *testing.T) {
	dst, customErr := bind(t, "application/json", `{"email":"amy@uni.example","password":"secret1"}`)
	require.Nil(t, customErr)

	assert.Equal(t, "amy@uni.example", dst.Email)
	assert.Equal(t, "secret1", dst.Password)
}

func TestBindJSONAcceptsCharsetSuffix(t *testing.T) {
	_, customErr := bind(t, "application/json; charset=utf-8", `{"email":"a@b.c","password":"x"}`)
	assert.Nil(t, customErr)
}

func TestBindJSONRejectsWrongContentType(t *testing.T) {
	_, customErr := bind(t, "text/plain", `{"email":"a@b.c"}`)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUnsupportedMediaType, customErr.Code)
}

func TestBindJSONRejectsUnknownFields(t *testing.T) {
	_, customErr := bind(t, "application/json", `{"email":"a@b.c","password":"x","admin":true}`)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInvalidJSONFormat, customErr.Code)
}

func TestBindJSONRejectsMalformedJSON(t *testing.T) {
	_, customErr := bind(t, "application/json", `{"email":`)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInvalidJSONFormat, customErr.Code)
}

func TestBindJSONRejectsTrailingContent(t *testing.T) {
	_, customErr := bind(t, "application/json", `{"email":"a@b.c"}{"again":true}`)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrExtraContentInBody, customErr.Code)
}

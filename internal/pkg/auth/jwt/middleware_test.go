package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueToken(t *testing.T, purpose, userType string) string {
	t.Helper()

	token, err := GenerateToken(&Payload{
		ID:       "u-1",
		Email:    "amy@uni.example",
		UserType: userType,
		Purpose:  purpose,
	}, testSecret, SessionExpiration)
	require.NoError(t, err)

	return token
}

func payloadProbe(captured **Payload) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetPayloadFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentityExtractorInjectsSessionPayload(t *testing.T) {
	var captured *Payload
	handler := IdentityExtractorMiddleware(testSecret)(payloadProbe(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, PurposeSession, "student"))

	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, captured)
	assert.Equal(t, "u-1", captured.ID)
	assert.Equal(t, "student", captured.UserType)
}

func TestIdentityExtractorTreatsMissingOrBadTokensAsAnonymous(t *testing.T) {
	cases := map[string]string{
		"no header":     "",
		"not bearer":    "Basic abc123",
		"invalid token": "Bearer not.a.token",
		"wrong purpose": "Bearer " + issueToken(t, PurposeVerify, "student"),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var captured *Payload
			handler := IdentityExtractorMiddleware(testSecret)(payloadProbe(&captured))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			// Request proceeds, but anonymously.
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Nil(t, captured)
		})
	}
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	handler := IdentityExtractorMiddleware(testSecret)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserType(t *testing.T) {
	build := func() http.Handler {
		return IdentityExtractorMiddleware(testSecret)(
			RequireUserType("company")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))
	}

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		build().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role gets 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, PurposeSession, "student"))

		rec := httptest.NewRecorder()
		build().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, PurposeSession, "company"))

		rec := httptest.NewRecorder()
		build().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

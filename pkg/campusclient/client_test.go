package campusclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(server.URL), server
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

func writeFailure(w http.ResponseWriter, status, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":  code,
		"error": message,
	})
}

func TestLoginDecodesEnvelope(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "amy@uni.example", req.Email)
		assert.Equal(t, UserTypeStudent, req.UserType)

		writeSuccess(w, map[string]any{
			"token": "tok-123",
			"user": map[string]any{
				"id":         "u-1",
				"email":      req.Email,
				"userType":   UserTypeStudent,
				"isVerified": true,
			},
		})
	})

	result, err := client.Login(context.Background(), LoginRequest{
		Email:    "amy@uni.example",
		Password: "secret1",
		UserType: UserTypeStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, UserTypeStudent, result.User.UserType)
	assert.True(t, result.User.IsVerified)
}

func TestNonTwoHundredYieldsAPIError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusForbidden, CodeAccountNotVerified,
			"Account not verified. Please verify your email before logging in.")
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x", UserType: UserTypeStudent})
	require.Error(t, err)

	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, CodeAccountNotVerified, apiErr.Code)
	assert.Equal(t, "Account not verified. Please verify your email before logging in.", apiErr.Message)
}

func TestUnparseableErrorBodyFallsBackToGenericMessage(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream exploded</html>"))
	})

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)

	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, GenericErrorMessage, apiErr.Message)
}

func TestErrorEnvelopeWithoutMessageFallsBackToGeneric(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":5000}`))
	})

	_, err := client.GetProfile(context.Background())
	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, 5000, apiErr.Code)
	assert.Equal(t, GenericErrorMessage, apiErr.Message)
}

func TestBearerTokenAttachedWhenSet(t *testing.T) {
	var gotAuth string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeSuccess(w, map[string]any{"user": map[string]any{"id": "u-1"}})
	})

	client.SetToken("tok-xyz")
	_, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)

	client.ClearToken()
	_, err = client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListJobsUsesQueryParams(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("offset"))

		writeSuccess(w, map[string]any{
			"jobs": []map[string]any{
				{"id": "j-1", "title": "Backend Intern", "status": "open"},
				{"id": "j-2", "title": "Data Analyst", "status": "open"},
			},
		})
	})

	jobs, err := client.ListJobs(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Backend Intern", jobs[0].Title)
}

func TestSubmitApplication(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/applications", r.URL.Path)

		writeSuccess(w, map[string]any{
			"application": map[string]any{
				"id":     "a-1",
				"jobId":  "j-1",
				"status": "pending",
			},
		})
	})

	app, err := client.SubmitApplication(context.Background(), SubmitApplicationRequest{JobID: "j-1"})
	require.NoError(t, err)
	assert.Equal(t, "pending", app.Status)
}

func TestStreamAssistantDeliversChunksUntilDone(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assistant/chat", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"content\":\"Hello\"}\n\n"))
		_, _ = w.Write([]byte("data: {\"content\":\" there\"}\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	})

	var got string
	err := client.StreamAssistant(context.Background(),
		[]ChatTurn{{Role: "user", Content: "hi"}},
		func(chunk string) error {
			got += chunk
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", got)
}

func TestStreamAssistantSurfacesStreamError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"error\":\"The assistant is unavailable right now.\"}\n\n"))
	})

	err := client.StreamAssistant(context.Background(), []ChatTurn{{Role: "user", Content: "hi"}},
		func(string) error { return nil })
	require.Error(t, err)

	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "The assistant is unavailable right now.", apiErr.Message)
}

func TestStreamAssistantNonTwoHundredBeforeStream(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusBadGateway, 5001, "The assistant is unavailable right now.")
	})

	err := client.StreamAssistant(context.Background(), []ChatTurn{{Role: "user", Content: "hi"}},
		func(string) error { return nil })

	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

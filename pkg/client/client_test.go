package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmate/interview-coach/internal/interview"
)

func TestGenerateQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generate-questions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req interview.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 5, req.QuestionCount)

		w.Write([]byte(`{"success":true,"data":{"questions":[
			{"id":"q-1","question":"What is a goroutine?","modelAnswer":"A lightweight thread managed by the runtime.","category":"technical","difficulty":"easy"}
		]}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	questions, err := c.GenerateQuestions(context.Background(), interview.GenerateRequest{
		ResumeText:         "resume",
		JobDescriptionText: "job",
		QuestionCount:      5,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "q-1", questions[0].ID)
	assert.Equal(t, "technical", questions[0].Category)
}

func TestEvaluateAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/evaluate-answer", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"evaluation":{
			"score":85,
			"strengths":["clear"],
			"areasForImprovement":["depth"],
			"suggestions":["add metrics"],
			"detailedFeedback":"Solid answer."
		}}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	evaluation, err := c.EvaluateAnswer(context.Background(), interview.EvaluateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 85, evaluation.Score)
	assert.Equal(t, []string{"clear"}, evaluation.Strengths)
	assert.Equal(t, "Solid answer.", evaluation.DetailedFeedback)
}

func TestErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"validation_failed","message":"Resume text must be at least 50 characters"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GenerateQuestions(context.Background(), interview.GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 50 characters")
}

func TestErrorEnvelopeFallsBackToCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"upstream_error"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.EvaluateAnswer(context.Background(), interview.EvaluateRequest{})
	require.Error(t, err)
	assert.Equal(t, "upstream_error", err.Error())
}

func TestRateLimitedIncludesRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"success":false,"error":"rate_limited","message":"Too many requests","retryAfter":1800}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GenerateQuestions(context.Background(), interview.GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry after 1800s")
}

func TestNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GenerateQuestions(context.Background(), interview.GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestBaseURLTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generate-questions", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"questions":[]}}`))
	}))
	defer server.Close()

	c := New(server.URL + "/")
	_, err := c.GenerateQuestions(context.Background(), interview.GenerateRequest{})
	require.NoError(t, err)
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{}
	c := New("http://example.invalid", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}

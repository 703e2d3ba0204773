//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"
)

func TestGenerateQuestionsRejectsShortContext(t *testing.T) {
	resp, body := postJSON(t, "/v1/generate-questions", map[string]any{
		"resumeText":         "too short",
		"jobDescriptionText": "also too short",
		"questionCount":      5,
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d (body: %s)", resp.StatusCode, body)
	}

	env := decodeError(t, body)
	if env.Success {
		t.Fatal("expected success=false on validation failure")
	}
	if env.Error != "validation_failed" {
		t.Fatalf("unexpected error code: %s", env.Error)
	}
	if _, ok := env.Details["resumeText"]; !ok {
		t.Fatalf("expected resumeText in details, got: %v", env.Details)
	}
	if _, ok := env.Details["jobDescriptionText"]; !ok {
		t.Fatalf("expected jobDescriptionText in details, got: %v", env.Details)
	}
}

func TestGenerateQuestionsRejectsBadCount(t *testing.T) {
	resp, body := postJSON(t, "/v1/generate-questions", map[string]any{
		"resumeText":         longText(),
		"jobDescriptionText": longText(),
		"questionCount":      7,
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d (body: %s)", resp.StatusCode, body)
	}

	env := decodeError(t, body)
	if _, ok := env.Details["questionCount"]; !ok {
		t.Fatalf("expected questionCount in details, got: %v", env.Details)
	}
}

func TestEvaluateAnswerRejectsShortAnswer(t *testing.T) {
	resp, body := postJSON(t, "/v1/evaluate-answer", map[string]any{
		"question":    "Tell me about a project you are proud of.",
		"modelAnswer": longText(),
		"userAnswer":  "short",
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d (body: %s)", resp.StatusCode, body)
	}

	env := decodeError(t, body)
	if _, ok := env.Details["userAnswer"]; !ok {
		t.Fatalf("expected userAnswer in details, got: %v", env.Details)
	}
}

func TestExportReportRejectsEmptyReport(t *testing.T) {
	resp, body := postJSON(t, "/v1/export-report", map[string]any{
		"jobTitle":  "Backend Engineer",
		"questions": []any{},
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d (body: %s)", resp.StatusCode, body)
	}
}

func longText() string {
	text := ""
	for i := 0; i < 10; i++ {
		text += "Seasoned engineer with production Go experience. "
	}
	return text
}

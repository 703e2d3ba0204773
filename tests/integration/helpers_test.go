//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

type errorEnvelope struct {
	Success    bool              `json:"success"`
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details"`
	RetryAfter int               `json:"retryAfter"`
}

func postJSON(t *testing.T, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(fmt.Sprintf("%s%s", baseURL(), path), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, buf.Bytes()
}

func decodeError(t *testing.T, raw []byte) errorEnvelope {
	t.Helper()

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode error envelope: %v (body: %s)", err, raw)
	}
	return env
}

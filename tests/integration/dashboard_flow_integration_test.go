//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("BRANDPULSE_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:18080"
}

func TestDashboardJourneyIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	userEmail := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	password := "Secret123!"
	workspaceName := fmt.Sprintf("Workspace %d", time.Now().UnixNano())

	var registerResp struct {
		Token       string `json:"token"`
		WorkspaceID string `json:"workspace_id"`
		UserID      string `json:"user_id"`
	}
	doPost(t, client, base+"/api/auth/register", "", map[string]any{
		"email":         userEmail,
		"password":      password,
		"workspaceName": workspaceName,
	}, &registerResp)
	if registerResp.Token == "" || registerResp.WorkspaceID == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/auth/login", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	var personaResp struct {
		ID string `json:"id"`
	}
	doPost(t, client, base+"/api/personas", token, map[string]any{
		"name":    "Integration Persona",
		"tagline": "Created by the integration flow",
		"goals":   []string{"Validate the API end to end"},
	}, &personaResp)
	if personaResp.ID == "" {
		t.Fatalf("expected persona id in response")
	}

	doPost(t, client, base+"/api/personas/"+personaResp.ID+"/methods", token, map[string]string{
		"type": "interviews",
	}, nil)

	doPut(t, client, base+"/api/personas/"+personaResp.ID+"/methods/interviews", token, map[string]any{
		"complete":          true,
		"participant_count": 5,
		"insights":          []string{"Integration users want fast feedback"},
	}, nil)

	var decisionResp struct {
		Decision struct {
			Status     string `json:"status"`
			Confidence int    `json:"confidence"`
		} `json:"decision"`
		ValidationScore int `json:"validation_score"`
	}
	doGet(t, client, base+"/api/personas/"+personaResp.ID+"/decision", token, &decisionResp)
	if decisionResp.Decision.Status == "" {
		t.Fatalf("decision endpoint returned no status")
	}
	if decisionResp.Decision.Confidence != 100 {
		t.Fatalf("confidence = %d, want 100 after completing the only method", decisionResp.Decision.Confidence)
	}

	var assetResp struct {
		ID string `json:"id"`
	}
	doPost(t, client, base+"/api/assets", token, map[string]any{
		"type":     "mission",
		"title":    "Integration Mission",
		"category": "Foundation",
	}, &assetResp)
	if assetResp.ID == "" {
		t.Fatalf("expected asset id in response")
	}

	var qualityResp struct {
		Status     string `json:"status"`
		Coverage   int    `json:"coverage"`
		StatusInfo struct {
			Label string `json:"label"`
		} `json:"status_info"`
	}
	doGet(t, client, base+"/api/assets/"+assetResp.ID+"/quality", token, &qualityResp)
	if qualityResp.Status != "awaiting-research" {
		t.Fatalf("fresh asset quality status = %q", qualityResp.Status)
	}

	var summaryResp struct {
		Status string `json:"status"`
		Stats  struct {
			Total int `json:"total"`
		} `json:"stats"`
	}
	doGet(t, client, base+"/api/dashboard/summary", token, &summaryResp)
	if summaryResp.Stats.Total != 2 {
		t.Fatalf("summary total = %d, want 2", summaryResp.Stats.Total)
	}
	if summaryResp.Status == "" {
		t.Fatalf("summary returned no overall status")
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	doRequest(t, client, http.MethodPost, url, token, body, out)
}

func doPut(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	doRequest(t, client, http.MethodPut, url, token, body, out)
}

func doGet(t *testing.T, client *http.Client, url, token string, out any) {
	t.Helper()
	doRequest(t, client, http.MethodGet, url, token, nil, out)
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, body any, out any) {
	t.Helper()
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s %s: %s", resp.StatusCode, method, url, string(bodyBytes))
	}
	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"governance-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := Build(config.Config{Env: "dev"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func doJSON(t *testing.T, app *App, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestCreateProjectRunsAssessment(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/projects", map[string]any{
		"name":        "Customer Sentiment Analysis",
		"description": "Analyze customer feedback using NLP",
		"useCase":     "Customer Experience Enhancement",
		"dataSources": []string{"Customer reviews", "Support tickets"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var project struct {
		ID               string  `json:"id"`
		Status           string  `json:"status"`
		RiskScore        float64 `json:"riskScore"`
		RiskLevel        string  `json:"riskLevel"`
		ApprovalRequired bool    `json:"approvalRequired"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if project.ID == "" {
		t.Fatalf("expected project id")
	}
	if project.Status != "pending" {
		t.Fatalf("expected pending status, got %s", project.Status)
	}
	if project.RiskScore <= 0 {
		t.Fatalf("expected a computed risk score, got %v", project.RiskScore)
	}
	// "customer" in the description raises privacy and bias; the mean crosses
	// the approval threshold.
	if !project.ApprovalRequired {
		t.Fatalf("expected approval required")
	}

	// The latest assessment is retrievable per project.
	assessResp := doJSON(t, app, http.MethodGet, "/api/v1/projects/"+project.ID+"/assessment", nil)
	if assessResp.Code != http.StatusOK {
		t.Fatalf("expected 200 for latest assessment, got %d", assessResp.Code)
	}
	var record struct {
		RiskDimensions []struct {
			Name string `json:"name"`
		} `json:"riskDimensions"`
	}
	if err := json.NewDecoder(assessResp.Body).Decode(&record); err != nil {
		t.Fatalf("decode assessment: %v", err)
	}
	if len(record.RiskDimensions) != 5 {
		t.Fatalf("expected 5 dimensions, got %d", len(record.RiskDimensions))
	}

	// Registration leaves an audit trail.
	auditResp := doJSON(t, app, http.MethodGet, "/api/v1/audit?entityId="+project.ID, nil)
	if auditResp.Code != http.StatusOK {
		t.Fatalf("expected 200 for audit, got %d", auditResp.Code)
	}
	var trail struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(auditResp.Body).Decode(&trail); err != nil {
		t.Fatalf("decode audit: %v", err)
	}
	if trail.Count != 1 {
		t.Fatalf("expected one audit event, got %d", trail.Count)
	}
}

func TestCreateProjectRequiresName(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/projects", map[string]any{
		"description": "missing name",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestApproveFlow(t *testing.T) {
	app := newTestApp(t)

	createResp := doJSON(t, app, http.MethodPost, "/api/v1/projects", map[string]any{"name": "Tool"})
	if createResp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", createResp.Code)
	}
	var project struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&project); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	approveResp := doJSON(t, app, http.MethodPost, "/api/v1/projects/"+project.ID+"/approve", nil)
	if approveResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", approveResp.Code, approveResp.Body.String())
	}
	var approved struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(approveResp.Body).Decode(&approved); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if approved.Status != "approved" {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	again := doJSON(t, app, http.MethodPost, "/api/v1/projects/"+project.ID+"/approve", nil)
	if again.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second approve, got %d", again.Code)
	}
}

func TestProjectMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)

	for _, name := range []string{"One", "Two"} {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/projects", map[string]any{"name": name})
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.Code)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/projects/metrics", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var m struct {
		TotalProjects   int `json:"totalProjects"`
		PendingApproval int `json:"pendingApproval"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if m.TotalProjects != 2 || m.PendingApproval != 2 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestAdHocRiskAssess(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/risk/assess", map[string]any{
		"projectName": "Claims Triage",
		"description": "Processes personal health records",
		"useCase":     "insurance claims",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		OverallRiskScore       float64  `json:"overallRiskScore"`
		RiskLevel              string   `json:"riskLevel"`
		ComplianceRequirements []string `json:"complianceRequirements"`
		ApprovalRequired       bool     `json:"approvalRequired"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.OverallRiskScore <= 0 {
		t.Fatalf("expected computed score, got %v", result.OverallRiskScore)
	}
	if len(result.ComplianceRequirements) == 0 {
		t.Fatalf("expected compliance requirements")
	}

	// Ad-hoc assessments never persist anything.
	listResp := doJSON(t, app, http.MethodGet, "/api/v1/projects", nil)
	var listing struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.Count != 0 {
		t.Fatalf("expected no projects, got %d", listing.Count)
	}
}

func TestDeleteProject(t *testing.T) {
	app := newTestApp(t)

	createResp := doJSON(t, app, http.MethodPost, "/api/v1/projects", map[string]any{"name": "Tool"})
	var project struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&project); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	deleteResp := doJSON(t, app, http.MethodDelete, "/api/v1/projects/"+project.ID, nil)
	if deleteResp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", deleteResp.Code)
	}

	getResp := doJSON(t, app, http.MethodGet, "/api/v1/projects/"+project.ID, nil)
	if getResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getResp.Code)
	}
}

func TestUnknownProjectReturns404(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/projects/nope", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMeRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/me", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.Code)
	}
}

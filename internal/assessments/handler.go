package assessments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"governance-backend/internal/assessments/risk"
	"governance-backend/internal/shared/server/middleware"
	"governance-backend/internal/shared/server/respond"
)

// Handler exposes risk assessment endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches assessment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/risk/assess", h.assess)
	rg.GET("/projects/:id/assessment", tagProjectID, h.latest)
	rg.GET("/projects/:id/assessments", tagProjectID, h.history)
}

// tagProjectID puts the path id into the context for request logging.
func tagProjectID(c *gin.Context) {
	if id := c.Param("id"); id != "" {
		c.Set("projectId", id)
	}
	c.Next()
}

type assessRequest struct {
	ProjectName  string   `json:"projectName" binding:"required"`
	Description  string   `json:"description"`
	UseCase      string   `json:"useCase"`
	DataSources  []string `json:"dataSources"`
	Stakeholders []string `json:"stakeholders"`
}

// assess evaluates an ad-hoc project snapshot without persisting anything.
// Useful for previewing a risk profile before registering the project.
func (h *Handler) assess(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "projectName is required", nil)
		return
	}

	assessment := h.Svc.Evaluate("", risk.Project{
		Name:        req.ProjectName,
		Description: req.Description,
		UseCase:     req.UseCase,
		DataSources: req.DataSources,
	}, middleware.ActorFromContext(c))

	respond.JSON(c, http.StatusOK, gin.H{
		"projectName":            req.ProjectName,
		"overallRiskScore":       assessment.OverallRiskScore,
		"riskLevel":              assessment.RiskLevel,
		"riskDimensions":         assessment.RiskDimensions,
		"complianceRequirements": assessment.ComplianceRequirements,
		"approvalRequired":       assessment.ApprovalRequired(),
		"assessmentDate":         assessment.AssessmentDate,
		"assessedBy":             assessment.AssessedBy,
	})
}

func (h *Handler) latest(c *gin.Context) {
	record, err := h.Svc.LatestForProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no assessment for project", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch assessment", nil)
		return
	}
	c.Set("assessmentId", record.ID)
	respond.JSON(c, http.StatusOK, record)
}

func (h *Handler) history(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	records, err := h.Svc.ListForProject(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list assessments", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"assessments": records, "count": len(records)})
}

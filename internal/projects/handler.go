package projects

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"governance-backend/internal/shared/server/middleware"
	"governance-backend/internal/shared/server/respond"
)

// Handler exposes the project registry endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches project routes to the router group. The static
// metrics route registers before the :id routes; gin keeps them disjoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects", h.create)
	rg.GET("/projects", h.list)
	rg.GET("/projects/metrics", h.metrics)
	rg.GET("/projects/:id", tagProjectID, h.get)
	rg.PUT("/projects/:id", tagProjectID, h.update)
	rg.DELETE("/projects/:id", tagProjectID, h.remove)
	rg.POST("/projects/:id/approve", tagProjectID, h.approve)
	rg.POST("/projects/:id/assess", tagProjectID, h.reassess)
}

// tagProjectID puts the path id into the context for request logging.
func tagProjectID(c *gin.Context) {
	if id := c.Param("id"); id != "" {
		c.Set("projectId", id)
	}
	c.Next()
}

type projectRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	UseCase      string   `json:"useCase"`
	DataSources  []string `json:"dataSources"`
	Stakeholders []string `json:"stakeholders"`
}

func (req projectRequest) toInput() Input {
	return Input{
		Name:         req.Name,
		Description:  req.Description,
		UseCase:      req.UseCase,
		DataSources:  req.DataSources,
		Stakeholders: req.Stakeholders,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "name is required", nil)
		return
	}

	project, err := h.Svc.Create(c.Request.Context(), req.toInput(), middleware.ActorFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create project", nil)
		return
	}
	c.Set("projectId", project.ID)
	respond.JSON(c, http.StatusCreated, project)
}

func (h *Handler) list(c *gin.Context) {
	filter := Filter{
		Status:    c.Query("status"),
		RiskLevel: c.Query("riskLevel"),
	}
	var ok bool
	if filter.Limit, ok = queryInt(c, "limit"); !ok {
		return
	}
	if filter.Offset, ok = queryInt(c, "offset"); !ok {
		return
	}

	list, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list projects", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"projects": list, "count": len(list)})
}

func (h *Handler) get(c *gin.Context) {
	project, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch project", nil)
		return
	}
	respond.JSON(c, http.StatusOK, project)
}

func (h *Handler) update(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "name is required", nil)
		return
	}

	project, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.toInput(), middleware.ActorFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update project", nil)
		return
	}
	respond.JSON(c, http.StatusOK, project)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete project", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) approve(c *gin.Context) {
	project, err := h.Svc.Approve(c.Request.Context(), c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
		case errors.Is(err, ErrNotPending):
			respond.Error(c, http.StatusConflict, "invalid_status", "only pending projects can be approved", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to approve project", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, project)
}

func (h *Handler) reassess(c *gin.Context) {
	project, err := h.Svc.Reassess(c.Request.Context(), c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reassess project", nil)
		return
	}
	respond.JSON(c, http.StatusOK, project)
}

func (h *Handler) metrics(c *gin.Context) {
	m, err := h.Svc.Metrics(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute metrics", nil)
		return
	}
	respond.JSON(c, http.StatusOK, m)
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", name+" must be a non-negative integer", nil)
		return 0, false
	}
	return n, true
}

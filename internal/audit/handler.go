package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"governance-backend/internal/shared/server/respond"
)

// Handler exposes audit trail endpoints.
type Handler struct {
	Svc *Recorder
}

// NewHandler constructs a Handler.
func NewHandler(svc *Recorder) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches audit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit", h.list)
}

func (h *Handler) list(c *gin.Context) {
	filter := Filter{
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", nil)
			return
		}
		filter.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "offset must be a non-negative integer", nil)
			return
		}
		filter.Offset = n
	}

	events, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list audit events", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"events": events, "count": len(events)})
}

package audit

import "time"

// Entity types and actions recorded by the governance service.
const (
	EntityProject    = "project"
	EntityAssessment = "assessment"

	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionApprove  = "approve"
	ActionReassess = "reassess"
)

// Event captures one state-changing action. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"createdAt"`
}

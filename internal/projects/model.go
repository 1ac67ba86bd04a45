package projects

import (
	"time"

	"governance-backend/internal/assessments/risk"
)

// Project lifecycle states. Every project starts pending; approval flips it
// to approved, and edits send it back to pending for re-review.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Project is a registered AI initiative with its current risk posture.
// RiskScore, RiskLevel and ApprovalRequired are derived from the latest
// assessment and copied here so listings never need a join.
type Project struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	UseCase          string        `json:"useCase"`
	DataSources      []string      `json:"dataSources"`
	Stakeholders     []string      `json:"stakeholders"`
	Status           string        `json:"status"`
	RiskScore        float64       `json:"riskScore"`
	RiskLevel        risk.Severity `json:"riskLevel"`
	ApprovalRequired bool          `json:"approvalRequired"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// RiskProfile is the engine's view of this project.
func (p Project) RiskProfile() risk.Project {
	return risk.Project{
		Name:        p.Name,
		Description: p.Description,
		UseCase:     p.UseCase,
		DataSources: p.DataSources,
	}
}

// RiskBucket counts projects sharing one risk level.
type RiskBucket struct {
	RiskLevel string `json:"riskLevel"`
	Count     int    `json:"count"`
}

// Metrics is the dashboard rollup across all live projects.
type Metrics struct {
	TotalProjects    int          `json:"totalProjects"`
	ActiveProjects   int          `json:"activeProjects"`
	PendingApproval  int          `json:"pendingApproval"`
	RiskDistribution []RiskBucket `json:"riskDistribution"`
}

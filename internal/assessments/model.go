package assessments

import (
	"time"

	"governance-backend/internal/assessments/risk"
)

// Record is a persisted risk assessment. One project accumulates a history
// of records; the newest one is authoritative for its risk posture.
type Record struct {
	ID                     string           `json:"id"`
	ProjectID              string           `json:"projectId"`
	OverallRiskScore       float64          `json:"overallRiskScore"`
	RiskLevel              risk.Severity    `json:"riskLevel"`
	RiskDimensions         []risk.Dimension `json:"riskDimensions"`
	ComplianceRequirements []string         `json:"complianceRequirements"`
	AssessedBy             string           `json:"assessedBy"`
	AssessmentDate         time.Time        `json:"assessmentDate"`
	CreatedAt              time.Time        `json:"createdAt"`
}

// FromAssessment converts an engine result into a storable record. The id
// and created-at are filled in by the service.
func FromAssessment(a risk.Assessment) Record {
	return Record{
		ProjectID:              a.ProjectID,
		OverallRiskScore:       a.OverallRiskScore,
		RiskLevel:              a.RiskLevel,
		RiskDimensions:         a.RiskDimensions,
		ComplianceRequirements: a.ComplianceRequirements,
		AssessedBy:             a.AssessedBy,
		AssessmentDate:         a.AssessmentDate,
	}
}

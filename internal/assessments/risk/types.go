package risk

import "time"

// SystemAssessor is the actor identity stamped on assessments produced
// automatically, without a human reviewer in the loop.
const SystemAssessor = "System"

// Project is the engine's view of an AI project. Fields mirror what the
// registry stores; absent values are empty strings/slices and simply fail
// every keyword test.
type Project struct {
	Name        string
	Description string
	UseCase     string
	DataSources []string
}

// Severity classifies a numeric score into low/medium/high bands.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Dimension is the evaluated result for a single risk dimension.
type Dimension struct {
	Name                      string   `json:"name"`
	Score                     float64  `json:"score"`
	Severity                  Severity `json:"severity"`
	Explanation               string   `json:"explanation"`
	MitigationRecommendations []string `json:"mitigationRecommendations"`
}

// Assessment is the aggregate risk profile for one project. It is built
// fresh per call and never mutated afterwards.
type Assessment struct {
	ProjectID              string      `json:"projectId"`
	OverallRiskScore       float64     `json:"overallRiskScore"`
	RiskLevel              Severity    `json:"riskLevel"`
	RiskDimensions         []Dimension `json:"riskDimensions"`
	ComplianceRequirements []string    `json:"complianceRequirements"`
	AssessmentDate         time.Time   `json:"assessmentDate"`
	AssessedBy             string      `json:"assessedBy"`
}

// ApprovalRequired reports whether the assessed project needs human approval
// before going live. Callers copy this onto the project record.
func (a Assessment) ApprovalRequired() bool {
	return a.OverallRiskScore >= 4.0
}

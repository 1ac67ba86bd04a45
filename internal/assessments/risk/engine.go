package risk

import (
	"math"
	"strings"
	"time"
)

// Engine produces deterministic risk assessments from project text. It holds
// no mutable state; the clock is injectable so tests can pin timestamps.
type Engine struct {
	now func() time.Time
}

// NewEngine constructs an Engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock constructs an Engine with a custom time source.
func NewEngineWithClock(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Assess evaluates every dimension, aggregates the overall score, and derives
// compliance requirements. It is a total function: any project value,
// including one with empty fields, yields a valid assessment.
//
// Overall score is the mean of the five dimension scores rounded to two
// decimals, half away from zero.
func (e *Engine) Assess(projectID string, p Project, assessedBy string) Assessment {
	dims := make([]Dimension, 0, len(dimensionRules))
	var total float64
	for _, rule := range dimensionRules {
		d := evaluateDimension(rule, p)
		total += d.Score
		dims = append(dims, d)
	}

	overall := round2(total / float64(len(dims)))

	return Assessment{
		ProjectID:              projectID,
		OverallRiskScore:       overall,
		RiskLevel:              SeverityFor(overall),
		RiskDimensions:         dims,
		ComplianceRequirements: deriveRequirements(dims),
		AssessmentDate:         e.now().UTC(),
		AssessedBy:             assessedBy,
	}
}

// evaluateDimension applies one dimension's rule set to the project. Pure;
// every call builds fresh slices so results never share backing arrays.
func evaluateDimension(rule dimensionRule, p Project) Dimension {
	score := rule.base
	recs := append([]string(nil), rule.alwaysRecommendations...)
	var fired []string

	for _, t := range rule.triggers {
		if t.matches(p) {
			score += t.increment
			recs = append(recs, t.recommendations...)
			fired = append(fired, t.explanation)
		}
	}

	score = clampScore(score)

	if len(recs) == 0 {
		recs = append(recs, rule.defaultRecommendations...)
	}

	explanation := rule.defaultExplanation
	if len(fired) > 0 {
		explanation = strings.Join(fired, "; ")
	}

	return Dimension{
		Name:                      rule.name,
		Score:                     score,
		Severity:                  SeverityFor(score),
		Explanation:               explanation,
		MitigationRecommendations: recs,
	}
}

// matches reports whether any keyword appears (case-insensitive substring)
// in any of the trigger's fields.
func (t trigger) matches(p Project) bool {
	for _, f := range t.fields {
		switch f {
		case fieldDescription:
			if containsAny(p.Description, t.keywords) {
				return true
			}
		case fieldUseCase:
			if containsAny(p.UseCase, t.keywords) {
				return true
			}
		case fieldDataSources:
			for _, src := range p.DataSources {
				if containsAny(src, t.keywords) {
					return true
				}
			}
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// deriveRequirements resolves compliance obligations from dimension scores,
// keyed by dimension name. Output is deduplicated, first occurrence wins.
func deriveRequirements(dims []Dimension) []string {
	scores := make(map[string]float64, len(dims))
	for _, d := range dims {
		scores[d.Name] = d.Score
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(baselineRequirements)+4)
	add := func(reqs []string) {
		for _, r := range reqs {
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}

	for _, rule := range requirementRules {
		if scores[rule.dimension] >= rule.minScore {
			add(rule.requirements)
		}
	}
	add(baselineRequirements)
	return out
}

// SeverityFor maps a score to its severity band: <4 low, <7 medium, else high.
func SeverityFor(score float64) Severity {
	switch {
	case score < 4.0:
		return SeverityLow
	case score < 7.0:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// clampScore bounds a score to [0, 10]. Increments are all non-negative, so
// in practice only the upper bound fires.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// round2 rounds half away from zero to two decimals.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// DimensionNames returns the fixed dimension names in evaluation order.
func DimensionNames() []string {
	names := make([]string, 0, len(dimensionRules))
	for _, rule := range dimensionRules {
		names = append(names, rule.name)
	}
	return names
}

package risk

// The rule corpus lives here as data so evaluators stay trivial and the
// tables can change without touching aggregation logic.

// Fixed dimension names, also the evaluation and output order.
const (
	DimensionPrivacy      = "Data Privacy & Security"
	DimensionBias         = "Bias & Fairness"
	DimensionTransparency = "Transparency & Explainability"
	DimensionCompliance   = "Regulatory Compliance"
	DimensionOperational  = "Operational Risk"
)

// textField selects which project fields a trigger scans.
type textField int

const (
	fieldDescription textField = iota
	fieldUseCase
	fieldDataSources
)

// trigger adds a fixed increment and recommendations when any keyword is
// contained (case-insensitive substring) in any of its fields. Triggers on
// the same dimension are independent and may stack.
type trigger struct {
	keywords        []string
	fields          []textField
	increment       float64
	explanation     string
	recommendations []string
}

// dimensionRule is the complete rule set for one dimension.
type dimensionRule struct {
	name     string
	base     float64
	triggers []trigger
	// alwaysRecommendations are present regardless of trigger outcomes.
	alwaysRecommendations []string
	// defaultRecommendations apply only when the list would otherwise be empty.
	defaultRecommendations []string
	defaultExplanation     string
}

var dimensionRules = [5]dimensionRule{
	{
		name: DimensionPrivacy,
		base: 3.0,
		triggers: []trigger{
			{
				keywords:    []string{"pii", "personal", "customer", "user data", "email", "phone", "address"},
				fields:      []textField{fieldDescription, fieldDataSources},
				increment:   4.0,
				explanation: "Project handles personally identifiable information and requires enhanced data protection",
				recommendations: []string{
					"Implement encryption at rest and in transit",
					"Apply role-based access control",
					"Conduct privacy impact assessment",
					"Apply data minimization principles",
				},
			},
			{
				keywords:    []string{"health", "medical", "financial", "payment", "ssn", "credit card"},
				fields:      []textField{fieldDescription},
				increment:   2.0,
				explanation: "Project processes highly sensitive data categories",
				recommendations: []string{
					"Adopt enhanced encryption requirements",
					"Schedule regular security audits",
				},
			},
		},
		defaultRecommendations: []string{"Implement standard security measures"},
		defaultExplanation:     "Standard data protection measures required",
	},
	{
		name: DimensionBias,
		base: 5.0,
		triggers: []trigger{
			{
				keywords:    []string{"customer"},
				fields:      []textField{fieldDescription, fieldUseCase},
				increment:   2.0,
				explanation: "Customer-facing AI requires heightened bias and fairness scrutiny",
				recommendations: []string{
					"Apply enhanced bias testing for customer-facing features",
				},
			},
		},
		alwaysRecommendations: []string{
			"Test model across demographic groups",
			"Monitor fairness metrics in production",
			"Conduct regular bias audits",
			"Validate training data diversity",
		},
		defaultExplanation: "AI models require bias testing and fairness evaluation",
	},
	{
		name: DimensionTransparency,
		base: 4.0,
		alwaysRecommendations: []string{
			"Document model architecture and training data",
			"Implement explainability features",
			"Maintain comprehensive documentation",
			"Provide clear explanations of automated decisions",
		},
		defaultExplanation: "Model decisions must be explainable to stakeholders and regulators",
	},
	{
		name: DimensionCompliance,
		base: 3.0,
		triggers: []trigger{
			{
				keywords:    []string{"healthcare", "health", "medical", "financial", "banking", "insurance"},
				fields:      []textField{fieldDescription, fieldUseCase},
				increment:   4.0,
				explanation: "Project operates in a regulated industry with specific compliance obligations",
				recommendations: []string{
					"Conduct industry-specific compliance review",
					"Obtain legal consultation",
					"Map applicable regulatory requirements",
				},
			},
		},
		alwaysRecommendations: []string{
			"Maintain audit trail",
			"Regular compliance reviews",
		},
		defaultExplanation: "Standard compliance obligations apply",
	},
	{
		name: DimensionOperational,
		base: 4.0,
		alwaysRecommendations: []string{
			"Implement monitoring and alerting",
			"Define error-handling procedures",
			"Establish fallback mechanisms",
			"Conduct performance testing",
		},
		defaultExplanation: "Operational readiness depends on monitoring, fallback, and performance safeguards",
	},
}

// requirementRule attaches compliance obligations when the named dimension's
// score reaches the threshold. Only Privacy and Compliance drive the resolver.
type requirementRule struct {
	dimension    string
	minScore     float64
	requirements []string
}

var requirementRules = []requirementRule{
	{
		dimension: DimensionPrivacy,
		minScore:  7.0,
		requirements: []string{
			"GDPR compliance review",
			"CCPA compliance review",
			"Data Protection Officer approval",
		},
	},
	{
		dimension: DimensionCompliance,
		minScore:  7.0,
		requirements: []string{
			"Industry-specific regulatory compliance",
			"Legal team review",
		},
	},
}

// baselineRequirements attach to every assessment.
var baselineRequirements = []string{
	"AI Ethics Board review",
	"Security assessment",
	"Maintain audit trail",
	"Regular compliance reviews",
}

package model

type Transport string // "tcp", "udp"

const (
	TCP Transport = "tcp"
	UDP Transport = "udp"
)

type Role string // "web", "db", "bastion", "custom"

const (
	RoleWeb      Role = "web"
	RoleDatabase Role = "db"
	RoleBastion  Role = "bastion"
	RoleCustom   Role = "custom"
)

type SourceMode string // "any", "single", "cidr"

const (
	SourceAny    SourceMode = "any"
	SourceSingle SourceMode = "single"
	SourceRange  SourceMode = "cidr"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Request describes the server the caller wants rules for.
type Request struct {
	Description string     `json:"description" yaml:"description"`
	Role        Role       `json:"role" yaml:"role"`
	Protocols   []string   `json:"protocols" yaml:"protocols"`
	SourceType  SourceMode `json:"source_type" yaml:"source_type"`
	SourceValue string     `json:"source_value,omitempty" yaml:"source_value,omitempty"`
}

// Source is derived from a Request. Restricted implies Filter is non-empty.
type Source struct {
	Restricted bool
	Display    string
	Filter     string // " -s <value>" or ""
}

// Intent is what the extractor derived from a Request.
type Intent struct {
	Protocols []string // deduplicated, first-seen order
	Source    Source
}

// Has reports whether protocol is part of the intent. Names are compared as stored.
func (i Intent) Has(protocol string) bool {
	for _, p := range i.Protocols {
		if p == protocol {
			return true
		}
	}
	return false
}

type Rule struct {
	Rule        string `json:"rule" yaml:"rule"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Threat      string `json:"threat" yaml:"threat"`
}

type Warning struct {
	Severity       Severity `json:"severity" yaml:"severity"`
	Message        string   `json:"message" yaml:"message"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

type ScoreEntry struct {
	Category  string `json:"category" yaml:"category"`
	Points    int    `json:"points" yaml:"points"`
	MaxPoints int    `json:"max_points" yaml:"max_points"`
	Reason    string `json:"reason" yaml:"reason"`
}

type Example struct {
	Rules []string `json:"rules" yaml:"rules"`
	Why   string   `json:"why" yaml:"why"`
}

type Comparison struct {
	Insecure Example `json:"insecure" yaml:"insecure"`
	Secure   Example `json:"secure" yaml:"secure"`
}

type Result struct {
	Rules          []Rule       `json:"rules" yaml:"rules"`
	Warnings       []Warning    `json:"warnings" yaml:"warnings"`
	Score          int          `json:"score" yaml:"score"`
	ScoreBreakdown []ScoreEntry `json:"score_breakdown" yaml:"score_breakdown"`
	Comparison     Comparison   `json:"comparison" yaml:"comparison"`
	LearningPoints []string     `json:"learning_points" yaml:"learning_points"`
}

package entity

import "time"

// Compliance states counted by the report.
const (
	ComplianceCompliant    = "COMPLIANT"
	ComplianceNonCompliant = "NON_COMPLIANT"
)

// RuleCompliance is the compliance state of one Config rule.
type RuleCompliance struct {
	RuleName string `json:"rule_name"`
	Status   string `json:"status"`
}

// NonCompliantResource is one resource failing a rule.
type NonCompliantResource struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	FriendlyName string `json:"friendly_name"`
}

// RuleFindings groups the non-compliant resources of a rule.
type RuleFindings struct {
	RuleName  string                 `json:"rule_name"`
	Resources []NonCompliantResource `json:"resources"`
}

// ComplianceReport is everything the compliance PDF renders.
type ComplianceReport struct {
	AccountID         string           `json:"account_id"`
	GeneratedAt       time.Time        `json:"generated_at"`
	CompliantCount    int              `json:"compliant_count"`
	NonCompliantCount int              `json:"non_compliant_count"`
	Rules             []RuleCompliance `json:"rules"`
	Findings          []RuleFindings   `json:"findings"`
}

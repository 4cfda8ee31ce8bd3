package types

import "time"

// Config represents the application configuration that can be loaded from a file.
// Only the CLI reads it; Lambda handlers are configured from the environment.
type Config struct {
	Profile            string   `json:"profile" yaml:"profile" toml:"profile"`
	Region             string   `json:"region" yaml:"region" toml:"region"`
	Bucket             string   `json:"bucket" yaml:"bucket" toml:"bucket"`
	Dir                string   `json:"dir" yaml:"dir" toml:"dir"`
	CustomerIdentifier string   `json:"customer_identifier" yaml:"customer_identifier" toml:"customer_identifier"`
	TagKey             string   `json:"tag_key" yaml:"tag_key" toml:"tag_key"`
	PeriodStart        string   `json:"period_start" yaml:"period_start" toml:"period_start"`
	PeriodEnd          string   `json:"period_end" yaml:"period_end" toml:"period_end"`
	MinItemCost        float64  `json:"min_item_cost" yaml:"min_item_cost" toml:"min_item_cost"`
	Sections           []string `json:"sections" yaml:"sections" toml:"sections"`
	ReportPrefix       string   `json:"report_prefix" yaml:"report_prefix" toml:"report_prefix"`
	BackupRegions      []string `json:"backup_regions" yaml:"backup_regions" toml:"backup_regions"`
	ReportDays         int      `json:"report_days" yaml:"report_days" toml:"report_days"`
	VaultNamePrefix    string   `json:"vault_name_prefix" yaml:"vault_name_prefix" toml:"vault_name_prefix"`
	DiagramFormat      string   `json:"diagram_format" yaml:"diagram_format" toml:"diagram_format"`
	DiagramInclude     []string `json:"diagram_include" yaml:"diagram_include" toml:"diagram_include"`
	SNSTopicARN        string   `json:"sns_topic_arn" yaml:"sns_topic_arn" toml:"sns_topic_arn"`
}

// CostReportConfig holds the cost reporter settings.
type CostReportConfig struct {
	Bucket             string
	TagKey             string
	PeriodStart        string
	PeriodEnd          string
	CustomerIdentifier string
	MinItemCost        float64
	Sections           []string
	SNSTopicARN        string
}

// HasSection reports whether an optional report section was requested.
func (c CostReportConfig) HasSection(name string) bool {
	for _, s := range c.Sections {
		if s == name {
			return true
		}
	}
	return false
}

// ComplianceReportConfig holds the Config compliance reporter settings.
type ComplianceReportConfig struct {
	Bucket      string
	Prefix      string
	SNSTopicARN string
}

// SnapshotConfig holds the Config snapshot processor settings.
type SnapshotConfig struct {
	GenerateSummary bool
}

// BackupReportConfig holds the backup inventory reporter settings.
type BackupReportConfig struct {
	Bucket             string
	CustomerIdentifier string
	Regions            []string
	LookbackDays       int
	SNSTopicARN        string
}

// VaultSelection is one vault kind (hourly, daily...) and whether it is reported.
type VaultSelection struct {
	Kind    string
	Name    string
	Enabled bool
}

// BackupStatusConfig holds the backup status reporter settings.
type BackupStatusConfig struct {
	Bucket             string
	CustomerIdentifier string
	ReportDays         int
	Vaults             []VaultSelection
	SortOrder          []string
	VaultNamePrefix    string
	SNSTopicARN        string
}

// EnabledVaults returns the names of the vaults selected for reporting.
func (c BackupStatusConfig) EnabledVaults() []VaultSelection {
	var enabled []VaultSelection
	for _, v := range c.Vaults {
		if v.Enabled {
			enabled = append(enabled, v)
		}
	}
	return enabled
}

// NetworkDiagramConfig holds the network diagram generator settings.
type NetworkDiagramConfig struct {
	Bucket     string
	Region     string
	Key        string
	Format     string
	Include    []string
	DotBinary  string
	RenderTime time.Duration
}

// Includes reports whether an enrichment (elb, waf, lambda, rds) is enabled.
func (c NetworkDiagramConfig) Includes(name string) bool {
	for _, s := range c.Include {
		if s == name {
			return true
		}
	}
	return false
}

package entity

import "time"

// Backup job states as reported by AWS Backup.
const (
	JobStateCompleted = "COMPLETED"
	JobStateFailed    = "FAILED"
	JobStateExpired   = "EXPIRED"
	JobStateRunning   = "RUNNING"
	JobStatePending   = "PENDING"
	JobStateAborting  = "ABORTING"
	JobStateAborted   = "ABORTED"
	JobStateCreated   = "CREATED"
)

// BackupJob is one AWS Backup job.
type BackupJob struct {
	JobID           string    `json:"job_id"`
	VaultName       string    `json:"vault_name"`
	ResourceARN     string    `json:"resource_arn"`
	ResourceID      string    `json:"resource_id"`
	ResourceType    string    `json:"resource_type"`
	ResourceName    string    `json:"resource_name"`
	BackupType      string    `json:"backup_type"`
	State           string    `json:"state"`
	StatusMessage   string    `json:"status_message,omitempty"`
	MessageCategory string    `json:"message_category,omitempty"`
	CreationDate    time.Time `json:"creation_date"`
}

// VaultSummary describes a vault in the inventory report.
type VaultSummary struct {
	Name           string     `json:"name"`
	CreationDate   *time.Time `json:"creation_date,omitempty"`
	RecoveryPoints int        `json:"recovery_points"`
}

// JobStatusOverview counts the jobs of a region over the lookback window.
type JobStatusOverview struct {
	Completed           int      `json:"completed"`
	CompletedWithIssues int      `json:"completed_with_issues"`
	Failed              int      `json:"failed"`
	Expired             int      `json:"expired"`
	Running             int      `json:"running"`
	ErrorExamples       []string `json:"error_examples"`
}

// RegionBackupData is the per-region block of the inventory report.
type RegionBackupData struct {
	Region    string            `json:"region"`
	Vaults    []VaultSummary    `json:"vaults"`
	JobStatus JobStatusOverview `json:"job_status"`
}

// BackupInventoryReport is everything the inventory PDF renders.
type BackupInventoryReport struct {
	CustomerIdentifier string             `json:"customer_identifier"`
	AccountID          string             `json:"account_id"`
	GeneratedAt        time.Time          `json:"generated_at"`
	LookbackDays       int                `json:"lookback_days"`
	Regions            []RegionBackupData `json:"regions"`
}

// TotalVaults counts vaults across regions.
func (r BackupInventoryReport) TotalVaults() int {
	n := 0
	for _, reg := range r.Regions {
		n += len(reg.Vaults)
	}
	return n
}

// TotalRecoveryPoints sums recovery points across regions.
func (r BackupInventoryReport) TotalRecoveryPoints() int {
	n := 0
	for _, reg := range r.Regions {
		for _, v := range reg.Vaults {
			n += v.RecoveryPoints
		}
	}
	return n
}

// VaultJobs are the jobs of one vault in the status report window.
type VaultJobs struct {
	VaultName string      `json:"vault_name"`
	Kind      string      `json:"kind"`
	Jobs      []BackupJob `json:"jobs"`
}

// BackupStatusTotals counts jobs of the status report.
type BackupStatusTotals struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Running   int `json:"running"`
}

// BackupStatusReport is everything the status PDF renders.
type BackupStatusReport struct {
	CustomerIdentifier string      `json:"customer_identifier"`
	AccountID          string      `json:"account_id"`
	VaultNamePrefix    string      `json:"vault_name_prefix,omitempty"`
	VaultsChecked      []string    `json:"vaults_checked"`
	GeneratedAt        time.Time   `json:"generated_at"`
	Start              time.Time   `json:"start"`
	End                time.Time   `json:"end"`
	ReportDays         int         `json:"report_days"`
	Vaults             []VaultJobs `json:"vaults"`
}

// Totals counts every job in the report by state.
func (r BackupStatusReport) Totals() BackupStatusTotals {
	var t BackupStatusTotals
	for _, v := range r.Vaults {
		for _, j := range v.Jobs {
			t.Total++
			switch j.State {
			case JobStateCompleted:
				t.Completed++
			case JobStateFailed:
				t.Failed++
			case JobStateRunning, JobStatePending, JobStateCreated:
				t.Running++
			}
		}
	}
	return t
}

// FailedJobs returns every failed job across vaults.
func (r BackupStatusReport) FailedJobs() []BackupJob {
	var failed []BackupJob
	for _, v := range r.Vaults {
		for _, j := range v.Jobs {
			if j.State == JobStateFailed {
				failed = append(failed, j)
			}
		}
	}
	return failed
}

package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

func requirePDF(t *testing.T, data []byte, err error) {
	t.Helper()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output is a PDF document")
}

func TestExportCostReportToPDF(t *testing.T) {
	report := entity.CostReport{
		CustomerIdentifier: "Acme Ação",
		AccountID:          "123456789012",
		TagKey:             "Project",
		Period:             entity.Period{Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		Groups: []entity.TagCostGroup{
			{
				TagValue:      "web",
				ResourceTypes: []string{"EC2 Instance"},
				Items:         []entity.CostItem{{UsageType: "USE1-BoxUsage:t3.micro", ResourceType: "EC2 Instance", Cost: 1234.5}},
				Total:         1234.5,
			},
			{TagValue: "idle", ResourceTypes: []string{"Unknown"}},
		},
		Services:    []entity.ServiceCost{{ServiceName: "Amazon Elastic Compute Cloud - Compute", Cost: 1234.5}},
		Budgets:     []entity.BudgetInfo{{Name: "monthly", Limit: 1000, Actual: 1234.5, Forecast: 1500}},
		GeneratedAt: generatedAt,
	}

	data, err := NewExportRepository().ExportCostReportToPDF(report)
	requirePDF(t, data, err)
}

func TestExportCostReportServicesOnly(t *testing.T) {
	report := entity.CostReport{
		TagKey:      "Name",
		Period:      entity.Period{Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		Services:    []entity.ServiceCost{{ServiceName: "AWS Lambda", Cost: 0.42}},
		GeneratedAt: generatedAt,
	}

	data, err := NewExportRepository().ExportCostReportToPDF(report)
	requirePDF(t, data, err)
}

func TestExportComplianceReportToPDF(t *testing.T) {
	report := entity.ComplianceReport{
		AccountID:         "123456789012",
		GeneratedAt:       generatedAt,
		CompliantCount:    1,
		NonCompliantCount: 1,
		Rules: []entity.RuleCompliance{
			{RuleName: "iam-mfa", Status: "NON_COMPLIANT"},
			{RuleName: "s3-versioning", Status: "COMPLIANT"},
		},
		Findings: []entity.RuleFindings{{
			RuleName:  "iam-mfa",
			Resources: []entity.NonCompliantResource{{ResourceType: "AWS::IAM::User", ResourceID: "AIDA1", FriendlyName: "alice"}},
		}},
	}

	data, err := NewExportRepository().ExportComplianceReportToPDF(report)
	requirePDF(t, data, err)

	empty, err := NewExportRepository().ExportComplianceReportToPDF(entity.ComplianceReport{AccountID: "x", GeneratedAt: generatedAt})
	requirePDF(t, empty, err)
}

func TestExportBackupInventoryToPDF(t *testing.T) {
	created := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	report := entity.BackupInventoryReport{
		CustomerIdentifier: "Acme",
		AccountID:          "123456789012",
		GeneratedAt:        generatedAt,
		LookbackDays:       14,
		Regions: []entity.RegionBackupData{
			{
				Region: "us-east-1",
				Vaults: []entity.VaultSummary{{Name: "Daily", CreationDate: &created, RecoveryPoints: 42}, {Name: "Weekly"}},
				JobStatus: entity.JobStatusOverview{
					Completed:     10,
					Failed:        1,
					ErrorExamples: []string{strings.Repeat("access denied ", 20)},
				},
			},
			{Region: "us-west-2", Vaults: []entity.VaultSummary{}, JobStatus: entity.JobStatusOverview{ErrorExamples: []string{}}},
		},
	}

	data, err := NewExportRepository().ExportBackupInventoryToPDF(report)
	requirePDF(t, data, err)
}

func TestExportBackupStatusToPDF(t *testing.T) {
	report := entity.BackupStatusReport{
		CustomerIdentifier: "Acme",
		AccountID:          "123456789012",
		VaultNamePrefix:    "acme-",
		VaultsChecked:      []string{"acme-daily", "acme-weekly"},
		GeneratedAt:        generatedAt,
		Start:              generatedAt.AddDate(0, 0, -1),
		End:                generatedAt,
		ReportDays:         1,
		Vaults: []entity.VaultJobs{{
			VaultName: "acme-daily",
			Kind:      "daily",
			Jobs: []entity.BackupJob{
				{JobID: "1", ResourceID: "vol-1", ResourceType: "EBS Volume", ResourceName: "data", BackupType: "Daily", State: "COMPLETED", CreationDate: generatedAt},
				{JobID: "2", ResourceID: "i-1", ResourceType: "EC2 Instance", ResourceName: "No Name Tag", BackupType: "Daily", State: "FAILED", StatusMessage: "denied", CreationDate: generatedAt},
				{JobID: "3", ResourceID: "db", ResourceType: "RDS Database", ResourceName: strings.Repeat("long-name-", 10), BackupType: "Daily", State: "RUNNING", CreationDate: generatedAt},
			},
		}},
	}

	data, err := NewExportRepository().ExportBackupStatusToPDF(report)
	requirePDF(t, data, err)
}

func TestExportJSON(t *testing.T) {
	data, err := NewExportRepository().ExportJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(data))

	_, err = NewExportRepository().ExportJSON(make(chan int))
	assert.Error(t, err)
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1234.5, "1,234.50"},
		{0.123456, "0.123456"},
		{1, "1.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCost(tt.amount))
	}
	assert.Equal(t, "0.12", formatTotal(0.123456))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "ação...", truncate("açãoxyz", 4))
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, statusGreen, statusColor("COMPLETED"))
	assert.Equal(t, statusRed, statusColor("FAILED"))
	assert.Equal(t, statusOrange, statusColor("PENDING"))
	assert.Equal(t, statusBlack, statusColor("EXPIRED"))
}

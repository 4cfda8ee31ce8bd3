package repository

import (
	"context"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
)

// ExportRepository renders reports into document bytes.
type ExportRepository interface {
	ExportCostReportToPDF(report entity.CostReport) ([]byte, error)
	ExportComplianceReportToPDF(report entity.ComplianceReport) ([]byte, error)
	ExportBackupInventoryToPDF(report entity.BackupInventoryReport) ([]byte, error)
	ExportBackupStatusToPDF(report entity.BackupStatusReport) ([]byte, error)

	// ExportJSON encodes v with two-space indentation.
	ExportJSON(v interface{}) ([]byte, error)
}

// DiagramRenderer turns a topology into an image.
type DiagramRenderer interface {
	Render(ctx context.Context, topology entity.NetworkTopology, format string) ([]byte, error)
}

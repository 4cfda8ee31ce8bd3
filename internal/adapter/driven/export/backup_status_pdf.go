package export

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
)

var statusHeaders = []string{"Resource Name", "Resource ID", "Resource Type", "Backup Type", "Creation Time", "Vault", "Status"}
var statusWidths = []float64{35, 25, 30, 25, 30, 35, 20}

// ExportBackupStatusToPDF gera a tabela de jobs por vault e a página de falhas.
func (r *ExportRepositoryImpl) ExportBackupStatusToPDF(report entity.BackupStatusReport) ([]byte, error) {
	doc := newDocument("AWS Backup Status Report", report.GeneratedAt)
	pdf := doc.pdf
	pdf.AddPage()

	accountID := report.AccountID
	if accountID == "" {
		accountID = "Unknown"
	}

	plural := ""
	if report.ReportDays > 1 {
		plural = "s"
	}

	doc.setTextColor(statusBlack)
	doc.centered("B", 16, 10, fmt.Sprintf("Customer: %s", report.CustomerIdentifier))
	doc.centered("", 12, 8, fmt.Sprintf("AWS Account ID: %s", accountID))
	doc.centered("B", 14, 8, fmt.Sprintf("AWS Backup Status Report - Last %d Day%s", report.ReportDays, plural))
	doc.centered("I", 10, 6, fmt.Sprintf("Period: %s to %s UTC",
		report.Start.UTC().Format("2006-01-02 15:04"), report.End.UTC().Format("2006-01-02 15:04")))
	pdf.Ln(6)

	totals := report.Totals()
	doc.centered("B", 12, 7, fmt.Sprintf("Total Backup Jobs: %d | Successful: %d | Failed: %d | Running/Pending: %d",
		totals.Total, totals.Completed, totals.Failed, totals.Running))
	pdf.Ln(4)

	const h = 7.0
	doc.tableHeader(statusHeaders, statusWidths, h)
	pdf.SetFont("Arial", "", 8)

	for _, vault := range report.Vaults {
		vaultDisplay := truncateNoEllipsis(strings.Replace(vault.VaultName, report.VaultNamePrefix, "", 1), 30)
		for _, job := range vault.Jobs {
			doc.setTextColor(statusColor(job.State))
			doc.row([]string{
				truncate(job.ResourceName, 30),
				truncate(job.ResourceID, 20),
				job.ResourceType,
				job.BackupType,
				job.CreationDate.UTC().Format("2006-01-02 15:04"),
				vaultDisplay,
				job.State,
			}, statusWidths, h, "L", "L", "L", "L", "C", "L", "C")
			doc.setTextColor(statusBlack)

			// Repete o cabeçalho quando a tabela passa para a próxima página.
			if pdf.GetY() > 260 {
				pdf.AddPage()
				doc.tableHeader(statusHeaders, statusWidths, h)
				pdf.SetFont("Arial", "", 8)
			}
		}
	}

	if failed := report.FailedJobs(); len(failed) > 0 {
		pdf.AddPage()
		doc.centered("B", 14, 10, "Failed Backup Jobs Details")
		pdf.Ln(4)

		for _, job := range failed {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(0, 7, doc.tr(fmt.Sprintf("Resource: %s (%s)", job.ResourceName, job.ResourceID)), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 6, doc.tr(fmt.Sprintf("Type: %s | Vault: %s", job.ResourceType, job.VaultName)), "", 1, "L", false, 0, "")
			pdf.CellFormat(0, 6, fmt.Sprintf("Failed at: %s", job.CreationDate.UTC().Format("2006-01-02 15:04:05 UTC")), "", 1, "L", false, 0, "")
			if job.StatusMessage != "" {
				pdf.MultiCell(0, 5, doc.tr("Error: "+job.StatusMessage), "", "L", false)
			}
			pdf.Ln(4)
		}
	}

	return doc.bytes()
}

func truncateNoEllipsis(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

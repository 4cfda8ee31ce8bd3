package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/dustin/go-humanize"
)

// ExportBackupInventoryToPDF gera o inventário de vaults e o resumo de jobs por região.
func (r *ExportRepositoryImpl) ExportBackupInventoryToPDF(report entity.BackupInventoryReport) ([]byte, error) {
	doc := newDocument("AWS Backup Report", report.GeneratedAt)
	pdf := doc.pdf
	pdf.AddPage()

	accountID := report.AccountID
	if accountID == "" {
		accountID = "Unknown"
	}

	doc.setTextColor(statusBlack)
	doc.centered("B", 16, 10, fmt.Sprintf("Customer: %s", report.CustomerIdentifier))
	doc.centered("", 12, 8, fmt.Sprintf("AWS Account ID: %s", accountID))
	doc.centered("B", 14, 8, "AWS Backup Report - Recovery Points by Vault")
	doc.centered("I", 10, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))
	pdf.Ln(6)

	// Summary
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 8, "AWS Backup Summary", "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Regions Scanned: %d", len(report.Regions)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Backup Vaults: %d", report.TotalVaults()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Recovery Points: %s", humanize.Comma(int64(report.TotalRecoveryPoints()))), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	regions := make([]entity.RegionBackupData, len(report.Regions))
	copy(regions, report.Regions)
	sort.Slice(regions, func(i, j int) bool { return regions[i].Region < regions[j].Region })

	for _, region := range regions {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetFillColor(200, 220, 255)
		pdf.CellFormat(0, 8, doc.tr("Region: "+region.Region), "", 1, "L", true, 0, "")
		pdf.Ln(2)

		drawJobStatus(doc, region.JobStatus, report.LookbackDays)
		drawVaultTable(doc, region.Vaults)

		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
	}

	return doc.bytes()
}

func drawJobStatus(doc *document, status entity.JobStatusOverview, days int) {
	pdf := doc.pdf
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Backup Job Status (Last %d Days):", days), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	const colWidth, h = 38.0, 6.0
	cells := []struct {
		label string
		value int
		fill  [3]int
	}{
		{"Completed", status.Completed, [3]int{220, 255, 220}},
		{"With Issues", status.CompletedWithIssues, [3]int{255, 255, 200}},
		{"Failed", status.Failed, [3]int{255, 220, 220}},
		{"Expired", status.Expired, [3]int{255, 200, 200}},
		{"Running", status.Running, [3]int{200, 200, 255}},
	}
	for _, c := range cells {
		doc.setFillColor(c.fill)
		pdf.CellFormat(colWidth, h, fmt.Sprintf("%s: %s", c.label, humanize.Comma(int64(c.value))), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(h + 2)

	if len(status.ErrorExamples) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Example Error Messages:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		for i, msg := range status.ErrorExamples {
			if i == 3 {
				break
			}
			line := strings.ReplaceAll(truncate(msg, 120), "\n", " ")
			pdf.CellFormat(0, 5, doc.tr(fmt.Sprintf("%d. %s", i+1, line)), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(2)
}

func drawVaultTable(doc *document, vaults []entity.VaultSummary) {
	pdf := doc.pdf
	if len(vaults) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, "No backup vaults found in this region.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 6, "Backup Vaults:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	const h = 7.0
	widths := []float64{80, 40, 60}
	pdf.SetFont("Arial", "B", 10)
	doc.setFillColor(tableHeaderColor)
	pdf.CellFormat(widths[0], h, "Vault Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[1], h, "Recovery Points", "1", 0, "C", true, 0, "")
	pdf.CellFormat(widths[2], h, "Created", "1", 1, "C", true, 0, "")

	sorted := make([]entity.VaultSummary, len(vaults))
	copy(sorted, vaults)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	pdf.SetFont("Arial", "", 9)
	for _, v := range sorted {
		created := "N/A"
		if v.CreationDate != nil {
			created = v.CreationDate.Format("01/02/2006")
		}
		doc.row([]string{truncate(v.Name, 40), humanize.Comma(int64(v.RecoveryPoints)), created}, widths, h, "L", "C", "C")
	}
	pdf.Ln(6)
}

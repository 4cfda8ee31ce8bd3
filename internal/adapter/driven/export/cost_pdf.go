package export

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
)

// ExportCostReportToPDF gera o relatório granular de custo por tag e usage type.
func (r *ExportRepositoryImpl) ExportCostReportToPDF(report entity.CostReport) ([]byte, error) {
	doc := newDocument("AWS Cost Report", report.GeneratedAt)
	pdf := doc.pdf
	pdf.AddPage()

	accountID := report.AccountID
	if accountID == "" {
		accountID = "Unknown"
	}

	// Header
	doc.setTextColor(statusBlack)
	doc.centered("B", 16, 10, fmt.Sprintf("Customer: %s", report.CustomerIdentifier))
	doc.centered("", 12, 8, fmt.Sprintf("AWS Account ID: %s", accountID))
	doc.centered("B", 14, 8, "Granular Cost Report by Tag - Usage Type")
	doc.centered("I", 10, 6, fmt.Sprintf("Tag: %s | Period: %s", report.TagKey, report.Period))
	pdf.Ln(6)

	const col1, col2, h = 140.0, 40.0, 7.0
	widths := []float64{col1, col2}

	if report.TagsRequested && len(report.Groups) == 0 {
		doc.drawSection("No Cost Data", fmt.Sprintf("No costs tagged with %s were found for this period.", report.TagKey))
	}

	for _, group := range report.Groups {
		// Tag header
		pdf.SetFont("Arial", "B", 14)
		doc.setFillColor(bandColor)
		doc.setTextColor(statusBlack)
		pdf.CellFormat(0, 8, doc.tr(fmt.Sprintf("%s: %s", report.TagKey, group.TagValue)), "", 1, "L", true, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(0, 7, doc.tr("Resource Type: "+strings.Join(group.ResourceTypes, ", ")), "", 1, "L", false, 0, "")
		doc.setTextColor(statusBlack)
		pdf.Ln(2)

		pdf.SetFont("Arial", "B", 11)
		doc.setFillColor(tableHeaderColor)
		pdf.CellFormat(col1, h, "Usage Type", "1", 0, "L", true, 0, "")
		pdf.CellFormat(col2, h, "Cost ($)", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range group.Items {
			doc.row([]string{truncate(item.UsageType, 60), formatCost(item.Cost)}, widths, h, "L", "R")
		}

		pdf.SetFont("Arial", "B", 12)
		doc.row([]string{"Total", formatTotal(group.Total)}, widths, h, "L", "R")
		pdf.Ln(6)

		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
	}

	if len(report.Services) > 0 {
		doc.sectionTitle("Cost By Service")
		doc.tableHeader([]string{"Service", "Cost ($)"}, widths, h)
		pdf.SetFont("Arial", "", 10)
		for _, sc := range report.Services {
			doc.row([]string{truncate(sc.ServiceName, 60), formatCost(sc.Cost)}, widths, h, "L", "R")
		}
		pdf.Ln(6)
	}

	if len(report.Budgets) > 0 {
		doc.sectionTitle("Budget Status")
		budgetWidths := []float64{70, 40, 40, 40}
		doc.tableHeader([]string{"Budget", "Limit ($)", "Actual ($)", "Forecast ($)"}, budgetWidths, h)
		pdf.SetFont("Arial", "", 10)
		for _, b := range report.Budgets {
			if b.Actual > b.Limit && b.Limit > 0 {
				doc.setTextColor(statusRed)
			}
			doc.row([]string{
				truncate(b.Name, 35),
				formatTotal(b.Limit),
				fmt.Sprintf("%s (%.0f%%)", formatTotal(b.Actual), b.UsagePercent()),
				formatTotal(b.Forecast),
			}, budgetWidths, h, "L", "R", "R", "R")
			doc.setTextColor(statusBlack)
		}
	}

	return doc.bytes()
}

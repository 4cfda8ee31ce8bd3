package export

import (
	"fmt"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
)

// ExportComplianceReportToPDF gera o relatório de conformidade do AWS Config.
func (r *ExportRepositoryImpl) ExportComplianceReportToPDF(report entity.ComplianceReport) ([]byte, error) {
	doc := newDocument("AWS Config Compliance Report", report.GeneratedAt)
	pdf := doc.pdf
	pdf.AddPage()

	doc.headerBar("AWS Config Compliance Report",
		fmt.Sprintf("Account ID: %s", report.AccountID),
		fmt.Sprintf("Generated On: %s", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")),
	)

	const h = 7.0

	// Summary
	doc.sectionTitle("Compliance Summary")
	summaryWidths := []float64{95, 95}
	doc.tableHeader([]string{"Status", "Number of Rules"}, summaryWidths, h)
	pdf.SetFont("Arial", "", 10)
	doc.setTextColor(statusGreen)
	doc.row([]string{"Compliant", fmt.Sprintf("%d", report.CompliantCount)}, summaryWidths, h, "L", "C")
	doc.setTextColor(statusRed)
	doc.row([]string{"Non-Compliant", fmt.Sprintf("%d", report.NonCompliantCount)}, summaryWidths, h, "L", "C")
	doc.setTextColor(statusBlack)
	pdf.Ln(8)

	// Rules
	doc.sectionTitle("Config Rules")
	ruleWidths := []float64{140, 50}
	doc.tableHeader([]string{"Rule Name", "Compliance Status"}, ruleWidths, h)
	pdf.SetFont("Arial", "", 9)
	for _, rule := range report.Rules {
		switch rule.Status {
		case entity.ComplianceCompliant:
			doc.setTextColor(statusGreen)
		case entity.ComplianceNonCompliant:
			doc.setTextColor(statusRed)
		default:
			doc.setTextColor(statusBlack)
		}
		doc.row([]string{truncate(rule.RuleName, 75), rule.Status}, ruleWidths, h, "L", "C")
		doc.setTextColor(statusBlack)
	}
	pdf.Ln(8)

	// Details
	doc.sectionTitle("Non-Compliant Resources")
	if len(report.Findings) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 8, "No Non-Compliant Rules Found", "", 1, "L", false, 0, "")
		return doc.bytes()
	}

	detailWidths := []float64{55, 75, 60}
	for _, finding := range report.Findings {
		pdf.SetFont("Arial", "B", 11)
		doc.setFillColor(bandColor)
		pdf.CellFormat(0, 8, doc.tr("Rule: "+finding.RuleName), "", 1, "L", true, 0, "")
		pdf.Ln(1)

		if len(finding.Resources) == 0 {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 6, "No resource details available.", "", 1, "L", false, 0, "")
			pdf.Ln(4)
			continue
		}

		doc.tableHeader([]string{"Resource Type", "Resource ID", "Friendly Name"}, detailWidths, h)
		pdf.SetFont("Arial", "", 8)
		for _, res := range finding.Resources {
			doc.row([]string{
				truncate(res.ResourceType, 30),
				truncate(res.ResourceID, 42),
				truncate(res.FriendlyName, 32),
			}, detailWidths, h)
		}
		pdf.Ln(6)
	}

	return doc.bytes()
}

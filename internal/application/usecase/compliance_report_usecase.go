package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
)

// MaxNonCompliantResources limita os detalhes buscados por regra.
const MaxNonCompliantResources = 100

// UnknownAccount substitui o account id quando o STS falha.
const UnknownAccount = "UNKNOWN_ACCOUNT"

// ComplianceReportKey monta "{prefix}/{yyyy/mm/dd}/aws-config-compliance-report-{yyyymmdd_HHMMSS}.pdf".
func ComplianceReportKey(prefix string, now time.Time) string {
	return fmt.Sprintf("%s/%s/aws-config-compliance-report-%s.pdf",
		strings.Trim(prefix, "/"), now.Format("2006/01/02"), now.Format("20060102_150405"))
}

// ComplianceReportUseCase gera o relatório de conformidade do AWS Config.
type ComplianceReportUseCase struct {
	identity       repository.IdentityRepository
	complianceRepo repository.ComplianceRepository
	exportRepo     repository.ExportRepository
	publisher      *Publisher
	console        types.ConsoleInterface
	now            func() time.Time
}

// NewComplianceReportUseCase creates a new compliance report use case.
func NewComplianceReportUseCase(
	identity repository.IdentityRepository,
	complianceRepo repository.ComplianceRepository,
	exportRepo repository.ExportRepository,
	publisher *Publisher,
	console types.ConsoleInterface,
) *ComplianceReportUseCase {
	return &ComplianceReportUseCase{
		identity:       identity,
		complianceRepo: complianceRepo,
		exportRepo:     exportRepo,
		publisher:      publisher,
		console:        console,
		now:            time.Now,
	}
}

// BuildReport conta as regras por estado e detalha as não conformes.
func (uc *ComplianceReportUseCase) BuildReport(ctx context.Context) (entity.ComplianceReport, error) {
	report := entity.ComplianceReport{GeneratedAt: uc.now().UTC()}

	accountID, err := uc.identity.GetAccountID(ctx)
	if err != nil || accountID == "" {
		uc.console.LogWarning("Could not resolve account ID: %v", err)
		accountID = UnknownAccount
	}
	report.AccountID = accountID

	rules, err := uc.complianceRepo.GetRuleCompliance(ctx)
	if err != nil {
		return entity.ComplianceReport{}, fmt.Errorf("error describing compliance: %w", err)
	}

	for _, rule := range rules {
		switch rule.Status {
		case entity.ComplianceCompliant:
			report.CompliantCount++
		case entity.ComplianceNonCompliant:
			report.NonCompliantCount++

			resources, err := uc.complianceRepo.GetNonCompliantResources(ctx, rule.RuleName, MaxNonCompliantResources)
			if err != nil {
				uc.console.LogWarning("Error getting details for rule %s: %s", rule.RuleName, err)
				continue
			}
			if len(resources) > 0 {
				report.Findings = append(report.Findings, entity.RuleFindings{RuleName: rule.RuleName, Resources: resources})
			}
		}
	}

	sort.SliceStable(rules, func(i, j int) bool { return rules[i].RuleName < rules[j].RuleName })
	report.Rules = rules

	uc.console.LogInfo("Summary: Total Rules=%d, Compliant=%d, Non-Compliant=%d",
		len(rules), report.CompliantCount, report.NonCompliantCount)
	return report, nil
}

// Run gera o relatório e devolve a resposta no formato statusCode/body.
func (uc *ComplianceReportUseCase) Run(ctx context.Context, cfg types.ComplianceReportConfig) (types.HandlerResponse, error) {
	if cfg.Bucket == "" {
		uc.console.LogError("S3_BUCKET_NAME environment variable not set.")
		return types.HandlerResponse{StatusCode: 500, Body: "S3 bucket name not configured."}, nil
	}

	report, err := uc.BuildReport(ctx)
	if err != nil {
		return types.HandlerResponse{}, err
	}

	pdf, err := uc.exportRepo.ExportComplianceReportToPDF(report)
	if err != nil {
		return types.HandlerResponse{}, err
	}

	key := ComplianceReportKey(cfg.Prefix, report.GeneratedAt)
	location, err := uc.publisher.Publish(ctx, cfg.Bucket, key, pdf, ContentTypePDF, "AWS Config Compliance Report "+report.AccountID)
	if err != nil {
		uc.console.LogError("Error uploading report: %s", err)
		return types.HandlerResponse{StatusCode: 500, Body: "Failed to upload compliance report to S3."}, nil
	}

	return types.HandlerResponse{
		StatusCode: 200,
		Body:       "Compliance report successfully generated and uploaded to " + location,
	}, nil
}

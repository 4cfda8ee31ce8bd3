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

// Optional cost report sections.
const (
	SectionTags     = "tags"
	SectionServices = "services"
	SectionBudgets  = "budgets"
)

const dateLayout = "2006-01-02"

// usageTypeMapping é avaliado em ordem; a primeira substring encontrada vence.
var usageTypeMapping = []struct {
	fragment     string
	resourceType string
}{
	{"EBS:SnapshotUsage", "EBS Volume"},
	{"EBS:VolumeUsage", "EBS Volume"},
	{"VolumeUsage", "EBS Volume"},
	{"SnapshotUsage", "EBS Volume"},
	{"EC2", "EC2 Instance"},
	{"DataTransfer", "VPC / Data Transfer"},
	{"NatGateway", "VPC / NAT Gateway"},
	{"VpcPeering", "VPC Peering"},
	{"PublicIPv4", "Elastic IP"},
	{"CW:", "CloudWatch"},
	{"Log-Bytes", "CloudWatch Logs"},
	{"SecretsManager", "Secrets Manager"},
	{"APIRequest", "API Gateway"},
	{"BoxUsage", "EC2 Instance"},
	{"CreateImage", "EC2 AMI"},
}

// ResourceTypeFor maps a Cost Explorer usage type to a readable resource type.
func ResourceTypeFor(usageType string) string {
	for _, m := range usageTypeMapping {
		if strings.Contains(usageType, m.fragment) {
			return m.resourceType
		}
	}
	return "Other"
}

// TimePeriod resolve o período do relatório: o configurado, quando início e fim
// estão presentes, ou o mês anterior completo.
func TimePeriod(cfg types.CostReportConfig, now time.Time) (entity.Period, error) {
	if cfg.PeriodStart != "" && cfg.PeriodEnd != "" {
		start, err := time.Parse(dateLayout, cfg.PeriodStart)
		if err != nil {
			return entity.Period{}, fmt.Errorf("%w: start %q: %v", types.ErrInvalidPeriod, cfg.PeriodStart, err)
		}
		end, err := time.Parse(dateLayout, cfg.PeriodEnd)
		if err != nil {
			return entity.Period{}, fmt.Errorf("%w: end %q: %v", types.ErrInvalidPeriod, cfg.PeriodEnd, err)
		}
		if end.Before(start) {
			return entity.Period{}, fmt.Errorf("%w: end %s before start %s", types.ErrInvalidPeriod, cfg.PeriodEnd, cfg.PeriodStart)
		}
		return entity.Period{Start: start, End: end}, nil
	}

	firstThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastPrev := firstThis.AddDate(0, 0, -1)
	firstPrev := time.Date(lastPrev.Year(), lastPrev.Month(), 1, 0, 0, 0, 0, time.UTC)
	return entity.Period{Start: firstPrev, End: lastPrev}, nil
}

// BuildCostGroups filtra e ordena os custos por tag.
func BuildCostGroups(costs entity.TagUsageCosts, minItemCost float64) []entity.TagCostGroup {
	tags := make([]string, 0, len(costs))
	for tag := range costs {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		tags = append(tags, tag)
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})

	groups := make([]entity.TagCostGroup, 0, len(tags))
	for _, tag := range tags {
		usages := costs[tag]
		group := entity.TagCostGroup{TagValue: tag}
		resourceTypes := make(map[string]struct{})

		usageTypes := make([]string, 0, len(usages))
		for usageType := range usages {
			usageTypes = append(usageTypes, usageType)
		}
		sort.Strings(usageTypes)

		for _, usageType := range usageTypes {
			amount := usages[usageType]
			if amount < minItemCost {
				continue
			}
			resourceType := ResourceTypeFor(usageType)
			resourceTypes[resourceType] = struct{}{}
			group.Items = append(group.Items, entity.CostItem{
				UsageType:    usageType,
				ResourceType: resourceType,
				Cost:         amount,
			})
			group.Total += amount
		}

		for rt := range resourceTypes {
			group.ResourceTypes = append(group.ResourceTypes, rt)
		}
		sort.Strings(group.ResourceTypes)
		if len(group.ResourceTypes) == 0 {
			group.ResourceTypes = []string{"Unknown"}
		}
		groups = append(groups, group)
	}
	return groups
}

// tagsRequested: sem seções configuradas vale o padrão, que é só "tags".
func tagsRequested(cfg types.CostReportConfig) bool {
	return len(cfg.Sections) == 0 || cfg.HasSection(SectionTags)
}

// CostReportKey monta "{yyyy}/{mm}/{cliente}-cost-report-{yyyy}-{mm}.pdf" a partir do início do período.
func CostReportKey(customer string, period entity.Period) string {
	year := period.Start.Format("2006")
	month := period.Start.Format("01")
	return fmt.Sprintf("%s/%s/%s-cost-report-%s-%s.pdf", year, month, CustomerSlug(customer), year, month)
}

// CostReportUseCase gera o relatório de custos por tag.
type CostReportUseCase struct {
	identity   repository.IdentityRepository
	costRepo   repository.CostRepository
	exportRepo repository.ExportRepository
	publisher  *Publisher
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewCostReportUseCase creates a new cost report use case.
func NewCostReportUseCase(
	identity repository.IdentityRepository,
	costRepo repository.CostRepository,
	exportRepo repository.ExportRepository,
	publisher *Publisher,
	console types.ConsoleInterface,
) *CostReportUseCase {
	return &CostReportUseCase{
		identity:   identity,
		costRepo:   costRepo,
		exportRepo: exportRepo,
		publisher:  publisher,
		console:    console,
		now:        time.Now,
	}
}

// BuildReport coleta e agrega os dados do relatório sem renderizá-lo.
func (uc *CostReportUseCase) BuildReport(ctx context.Context, cfg types.CostReportConfig) (entity.CostReport, error) {
	now := uc.now().UTC()
	period, err := TimePeriod(cfg, now)
	if err != nil {
		return entity.CostReport{}, err
	}

	report := entity.CostReport{
		CustomerIdentifier: cfg.CustomerIdentifier,
		TagKey:             cfg.TagKey,
		Period:             period,
		TagsRequested:      tagsRequested(cfg),
		GeneratedAt:        now,
	}

	accountID, err := uc.identity.GetAccountID(ctx)
	if err != nil {
		uc.console.LogWarning("Could not resolve account ID: %s", err)
	}
	report.AccountID = accountID

	if report.TagsRequested {
		status := uc.console.Status(fmt.Sprintf("Fetching costs by %s for %s", cfg.TagKey, period))
		costs, err := uc.costRepo.GetTagUsageCosts(ctx, cfg.TagKey, period)
		status.Stop()
		if err != nil {
			return entity.CostReport{}, fmt.Errorf("error fetching cost data: %w", err)
		}
		report.Groups = BuildCostGroups(costs, cfg.MinItemCost)
	}

	if cfg.HasSection(SectionServices) {
		services, err := uc.costRepo.GetServiceCosts(ctx, period)
		if err != nil {
			uc.console.LogWarning("Could not fetch service costs: %s", err)
		}
		report.Services = services
	}

	if cfg.HasSection(SectionBudgets) {
		if accountID == "" {
			uc.console.LogWarning("Skipping budgets: account ID unknown")
		} else {
			budgets, err := uc.costRepo.GetBudgets(ctx, accountID)
			if err != nil {
				uc.console.LogWarning("Could not fetch budgets: %s", err)
			}
			report.Budgets = budgets
		}
	}

	return report, nil
}

// Run gera o PDF e o publica no bucket configurado.
func (uc *CostReportUseCase) Run(ctx context.Context, cfg types.CostReportConfig) (types.HandlerResponse, error) {
	if cfg.Bucket == "" {
		return missingBucket(uc.console, "REPORT_BUCKET"), nil
	}

	report, err := uc.BuildReport(ctx, cfg)
	if err != nil {
		return types.HandlerResponse{}, err
	}
	uc.console.LogInfo("Cost report has %d tag groups, total $%.2f", len(report.Groups), report.GrandTotal())

	pdf, err := uc.exportRepo.ExportCostReportToPDF(report)
	if err != nil {
		return types.HandlerResponse{}, err
	}

	key := CostReportKey(cfg.CustomerIdentifier, report.Period)
	if _, err := uc.publisher.Publish(ctx, cfg.Bucket, key, pdf, ContentTypePDF, "AWS Cost Report "+report.Period.String()); err != nil {
		return types.HandlerResponse{}, err
	}

	return types.HandlerResponse{Status: "ok", S3Key: key}, nil
}

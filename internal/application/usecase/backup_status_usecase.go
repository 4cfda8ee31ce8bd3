package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
)

// friendlyResourceTypes mapeia serviço -> tipo de recurso -> nome legível.
// A chave "*" vale para qualquer tipo do serviço.
var friendlyResourceTypes = map[string]map[string]string{
	"ec2": {
		"instance": "EC2 Instance",
		"volume":   "EBS Volume",
		"snapshot": "EBS Snapshot",
		"image":    "AMI",
	},
	"rds": {
		"db":       "RDS Database",
		"cluster":  "RDS Cluster",
		"snapshot": "RDS Snapshot",
	},
	"elasticfilesystem": {"*": "EFS"},
	"dynamodb":          {"*": "DynamoDB Table"},
	"s3":                {"*": "S3 Bucket"},
	"fsx":               {"*": "FSx"},
	"storagegateway":    {"*": "Storage Gateway"},
}

// ResourceDetails extracts the resource id and a friendly resource type from an ARN.
func ResourceDetails(resourceARN string) (id, resourceType string) {
	parsed, err := arn.Parse(resourceARN)
	if err != nil {
		return "Unknown", "Unknown"
	}

	kind, id := parsed.Resource, parsed.Resource
	if i := strings.IndexAny(parsed.Resource, "/:"); i >= 0 {
		kind, id = parsed.Resource[:i], parsed.Resource[i+1:]
	}

	if byKind, ok := friendlyResourceTypes[parsed.Service]; ok {
		if friendly, ok := byKind[kind]; ok {
			return id, friendly
		}
		if friendly, ok := byKind["*"]; ok {
			return id, friendly
		}
	}
	return id, strings.ToUpper(parsed.Service) + " " + kind
}

// BackupType derives the schedule (Hourly..Yearly) from a vault name.
func BackupType(vaultName string) string {
	lower := strings.ToLower(vaultName)
	for _, kind := range []string{"hourly", "daily", "weekly", "monthly", "yearly"} {
		if strings.Contains(lower, kind) {
			return strings.ToUpper(kind[:1]) + kind[1:]
		}
	}
	return "Custom"
}

// VaultPriority devolve o índice do primeiro item de sortOrder contido no nome;
// vaults desconhecidos vão para o fim.
func VaultPriority(vaultName string, sortOrder []string) int {
	lower := strings.ToLower(vaultName)
	for i, kind := range sortOrder {
		if kind != "" && strings.Contains(lower, strings.ToLower(kind)) {
			return i
		}
	}
	return len(sortOrder)
}

// SortVaultJobs ordena os vaults por prioridade e os jobs do mais novo ao mais antigo.
func SortVaultJobs(vaults []entity.VaultJobs, sortOrder []string) {
	sort.SliceStable(vaults, func(i, j int) bool {
		return VaultPriority(vaults[i].VaultName, sortOrder) < VaultPriority(vaults[j].VaultName, sortOrder)
	})
	for _, v := range vaults {
		jobs := v.Jobs
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].CreationDate.After(jobs[j].CreationDate)
		})
	}
}

// BackupStatusKey monta "{yyyy}/{mm}/{cliente|backup}-backup-status-report-{yyyy}-{mm}-{dd}.pdf".
func BackupStatusKey(customer string, now time.Time) string {
	slug := CustomerSlug(customer)
	if customer == "" {
		slug = "backup"
	}
	return fmt.Sprintf("%s/%s/%s-backup-status-report-%s.pdf",
		now.Format("2006"), now.Format("01"), slug, now.Format("2006-01-02"))
}

type backupStatusBody struct {
	Status        string   `json:"status"`
	S3Key         string   `json:"s3_key"`
	VaultsChecked []string `json:"vaults_checked"`
	TotalJobs     int      `json:"total_jobs"`
}

// BackupStatusUseCase gera o relatório de status dos jobs dos vaults habilitados.
type BackupStatusUseCase struct {
	identity   repository.IdentityRepository
	backupRepo repository.BackupRepository
	exportRepo repository.ExportRepository
	publisher  *Publisher
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewBackupStatusUseCase creates a new backup status use case.
func NewBackupStatusUseCase(
	identity repository.IdentityRepository,
	backupRepo repository.BackupRepository,
	exportRepo repository.ExportRepository,
	publisher *Publisher,
	console types.ConsoleInterface,
) *BackupStatusUseCase {
	return &BackupStatusUseCase{
		identity:   identity,
		backupRepo: backupRepo,
		exportRepo: exportRepo,
		publisher:  publisher,
		console:    console,
		now:        time.Now,
	}
}

// BuildReport busca os jobs da janela para cada vault habilitado.
func (uc *BackupStatusUseCase) BuildReport(ctx context.Context, cfg types.BackupStatusConfig) (entity.BackupStatusReport, error) {
	enabled := cfg.EnabledVaults()
	if len(enabled) == 0 {
		return entity.BackupStatusReport{}, types.ErrNoVaultsEnabled
	}

	end := uc.now().UTC()
	report := entity.BackupStatusReport{
		CustomerIdentifier: cfg.CustomerIdentifier,
		VaultNamePrefix:    cfg.VaultNamePrefix,
		GeneratedAt:        end,
		Start:              end.AddDate(0, 0, -cfg.ReportDays),
		End:                end,
		ReportDays:         cfg.ReportDays,
	}

	accountID, err := uc.identity.GetAccountID(ctx)
	if err != nil {
		uc.console.LogWarning("Error getting account ID: %s", err)
	}
	report.AccountID = accountID

	names := make(map[string]string)
	for _, vault := range enabled {
		report.VaultsChecked = append(report.VaultsChecked, vault.Name)

		jobs, err := uc.backupRepo.ListVaultJobs(ctx, vault.Name, report.Start, report.End)
		if err != nil {
			uc.console.LogWarning("%s", err)
		}
		if len(jobs) == 0 {
			continue
		}

		for i := range jobs {
			uc.enrichJob(ctx, &jobs[i], vault.Name, names)
		}
		report.Vaults = append(report.Vaults, entity.VaultJobs{VaultName: vault.Name, Kind: vault.Kind, Jobs: jobs})
	}

	SortVaultJobs(report.Vaults, cfg.SortOrder)
	return report, nil
}

// enrichJob preenche id, tipo, nome e tipo de backup; nomes são consultados uma vez por ARN.
func (uc *BackupStatusUseCase) enrichJob(ctx context.Context, job *entity.BackupJob, vaultName string, names map[string]string) {
	if job.VaultName == "" {
		job.VaultName = vaultName
	}
	job.ResourceID, job.ResourceType = ResourceDetails(job.ResourceARN)
	job.BackupType = BackupType(vaultName)

	name, ok := names[job.ResourceARN]
	if !ok {
		var err error
		name, err = uc.backupRepo.GetResourceName(ctx, job.ResourceARN)
		if err != nil {
			uc.console.LogWarning("%s", err)
		}
		names[job.ResourceARN] = name
	}
	job.ResourceName = name
}

// Run gera o relatório e responde no formato statusCode/body.
func (uc *BackupStatusUseCase) Run(ctx context.Context, cfg types.BackupStatusConfig) (types.HandlerResponse, error) {
	if cfg.Bucket == "" {
		return missingBucket(uc.console, "REPORT_BUCKET"), nil
	}

	report, err := uc.BuildReport(ctx, cfg)
	if err != nil {
		if errors.Is(err, types.ErrNoVaultsEnabled) {
			uc.console.LogWarning("No vaults enabled for reporting")
			return types.HandlerResponse{StatusCode: 400, Body: `{"error":"No vaults enabled for reporting"}`}, nil
		}
		return types.HandlerResponse{}, err
	}

	totals := report.Totals()
	uc.console.LogInfo("Backup jobs: total=%d completed=%d failed=%d running=%d",
		totals.Total, totals.Completed, totals.Failed, totals.Running)

	pdf, err := uc.exportRepo.ExportBackupStatusToPDF(report)
	if err != nil {
		return types.HandlerResponse{}, err
	}

	key := BackupStatusKey(cfg.CustomerIdentifier, report.GeneratedAt)
	subject := fmt.Sprintf("AWS Backup Status Report (%d failed)", totals.Failed)
	if _, err := uc.publisher.Publish(ctx, cfg.Bucket, key, pdf, ContentTypePDF, subject); err != nil {
		return types.HandlerResponse{}, err
	}

	body, err := json.Marshal(backupStatusBody{
		Status:        "ok",
		S3Key:         key,
		VaultsChecked: report.VaultsChecked,
		TotalJobs:     totals.Total,
	})
	if err != nil {
		return types.HandlerResponse{}, fmt.Errorf("error encoding response: %w", err)
	}
	return types.HandlerResponse{StatusCode: 200, Body: string(body)}, nil
}

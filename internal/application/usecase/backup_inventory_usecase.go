package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
)

const maxErrorExamples = 3

var (
	issueCategories = map[string]bool{"WARNING": true, "ERROR": true, "VSS_ERROR": true}
	issueMarkers    = []string{
		"vss error",
		"warning:",
		"error:",
		"partial backup",
		"backup completed with warnings",
		"failed to",
	}
)

// HasIssues reports whether a COMPLETED job finished with warnings or errors.
// MessageCategory wins when present; otherwise the status message is scanned.
func HasIssues(job entity.BackupJob) bool {
	if job.MessageCategory != "" && issueCategories[strings.ToUpper(job.MessageCategory)] {
		return true
	}
	if job.MessageCategory != "" || job.StatusMessage == "" {
		return false
	}

	msg := strings.ToLower(job.StatusMessage)
	for _, marker := range issueMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// ClassifyJobs monta a visão geral de status dos jobs de uma região.
func ClassifyJobs(jobs []entity.BackupJob) entity.JobStatusOverview {
	overview := entity.JobStatusOverview{ErrorExamples: []string{}}

	addExample := func(msg string) {
		if msg == "" || len(overview.ErrorExamples) >= maxErrorExamples {
			return
		}
		for _, existing := range overview.ErrorExamples {
			if existing == msg {
				return
			}
		}
		overview.ErrorExamples = append(overview.ErrorExamples, msg)
	}

	for _, job := range jobs {
		switch job.State {
		case entity.JobStateCompleted:
			if HasIssues(job) {
				overview.CompletedWithIssues++
				addExample(job.StatusMessage)
			} else {
				overview.Completed++
			}
		case entity.JobStateFailed:
			overview.Failed++
			addExample(job.StatusMessage)
		case entity.JobStateExpired:
			overview.Expired++
		case entity.JobStateRunning, entity.JobStatePending, entity.JobStateAborting, entity.JobStateCreated:
			overview.Running++
		}
	}
	return overview
}

// BackupReportKey monta "{yyyy}/{mm}/{cliente}-backup-report-{yyyy}-{mm}-{dd}.pdf".
func BackupReportKey(customer string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s-backup-report-%s.pdf",
		now.Format("2006"), now.Format("01"), CustomerSlug(customer), now.Format("2006-01-02"))
}

// BackupInventoryUseCase gera o inventário de vaults por região.
type BackupInventoryUseCase struct {
	identity   repository.IdentityRepository
	backupRepo repository.BackupRepository
	exportRepo repository.ExportRepository
	publisher  *Publisher
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewBackupInventoryUseCase creates a new backup inventory use case.
func NewBackupInventoryUseCase(
	identity repository.IdentityRepository,
	backupRepo repository.BackupRepository,
	exportRepo repository.ExportRepository,
	publisher *Publisher,
	console types.ConsoleInterface,
) *BackupInventoryUseCase {
	return &BackupInventoryUseCase{
		identity:   identity,
		backupRepo: backupRepo,
		exportRepo: exportRepo,
		publisher:  publisher,
		console:    console,
		now:        time.Now,
	}
}

// BuildReport percorre as regiões; falhas de uma região não interrompem as demais.
func (uc *BackupInventoryUseCase) BuildReport(ctx context.Context, cfg types.BackupReportConfig) entity.BackupInventoryReport {
	now := uc.now().UTC()
	report := entity.BackupInventoryReport{
		CustomerIdentifier: cfg.CustomerIdentifier,
		GeneratedAt:        now,
		LookbackDays:       cfg.LookbackDays,
	}

	accountID, err := uc.identity.GetAccountID(ctx)
	if err != nil {
		uc.console.LogWarning("Could not resolve account ID: %s", err)
	}
	report.AccountID = accountID

	since := now.AddDate(0, 0, -cfg.LookbackDays)
	for _, region := range cfg.Regions {
		uc.console.LogInfo("Scanning region: %s", region)
		data := entity.RegionBackupData{Region: region, Vaults: []entity.VaultSummary{}}

		vaults, err := uc.backupRepo.ListVaults(ctx, region)
		if err != nil {
			uc.console.LogError("Error scanning region %s: %s", region, err)
		}
		for _, vault := range vaults {
			summary, err := uc.backupRepo.GetVaultSummary(ctx, region, vault)
			if err != nil {
				uc.console.LogWarning("Error getting vault summary for %s in %s: %s", vault, region, err)
			}
			data.Vaults = append(data.Vaults, summary)
		}

		jobs, err := uc.backupRepo.ListJobsSince(ctx, region, since)
		if err != nil {
			uc.console.LogWarning("Error getting backup job status for region %s: %s", region, err)
		}
		data.JobStatus = ClassifyJobs(jobs)

		report.Regions = append(report.Regions, data)
	}
	return report
}

// Run gera e publica o inventário.
func (uc *BackupInventoryUseCase) Run(ctx context.Context, cfg types.BackupReportConfig) (types.HandlerResponse, error) {
	if cfg.Bucket == "" {
		return missingBucket(uc.console, "REPORT_BUCKET"), nil
	}

	report := uc.BuildReport(ctx, cfg)
	uc.console.LogInfo("Found %d vaults with %d recovery points", report.TotalVaults(), report.TotalRecoveryPoints())

	pdf, err := uc.exportRepo.ExportBackupInventoryToPDF(report)
	if err != nil {
		return types.HandlerResponse{}, err
	}

	key := BackupReportKey(cfg.CustomerIdentifier, report.GeneratedAt)
	if _, err := uc.publisher.Publish(ctx, cfg.Bucket, key, pdf, ContentTypePDF, "AWS Backup Report"); err != nil {
		return types.HandlerResponse{}, err
	}
	return types.HandlerResponse{Status: "ok", S3Key: key}, nil
}

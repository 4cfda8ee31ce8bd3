package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	backupTypes "github.com/aws/aws-sdk-go-v2/service/backup/types"
	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

const (
	jobsPageSize = 100
	noNameTag    = "No Name Tag"
)

type backupClients interface {
	Backup(ctx context.Context, region string) (BackupAPI, error)
}

// BackupRepositoryImpl implementa o BackupRepository sobre o AWS Backup.
type BackupRepositoryImpl struct {
	clients backupClients
}

// NewBackupRepository cria uma nova implementação do BackupRepository.
func NewBackupRepository(p *ClientProvider) repository.BackupRepository {
	return &BackupRepositoryImpl{clients: p}
}

func (r *BackupRepositoryImpl) ListVaults(ctx context.Context, region string) ([]string, error) {
	client, err := r.clients.Backup(ctx, region)
	if err != nil {
		return nil, err
	}

	var names []string
	paginator := backup.NewListBackupVaultsPaginator(client, &backup.ListBackupVaultsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing backup vaults in %s: %s: %w", region, describeError(err), err)
		}
		for _, vault := range page.BackupVaultList {
			names = append(names, aws.ToString(vault.BackupVaultName))
		}
	}
	return names, nil
}

func (r *BackupRepositoryImpl) GetVaultSummary(ctx context.Context, region, vaultName string) (entity.VaultSummary, error) {
	summary := entity.VaultSummary{Name: vaultName}

	client, err := r.clients.Backup(ctx, region)
	if err != nil {
		return summary, err
	}

	var firstErr error
	details, err := client.DescribeBackupVault(ctx, &backup.DescribeBackupVaultInput{
		BackupVaultName: aws.String(vaultName),
	})
	if err != nil {
		firstErr = fmt.Errorf("error describing vault %s in %s: %s: %w", vaultName, region, describeError(err), err)
	} else if details.CreationDate != nil {
		created := *details.CreationDate
		summary.CreationDate = &created
	}

	// Conta os recovery points página a página.
	paginator := backup.NewListRecoveryPointsByBackupVaultPaginator(client, &backup.ListRecoveryPointsByBackupVaultInput{
		BackupVaultName: aws.String(vaultName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("error listing recovery points of %s in %s: %s: %w", vaultName, region, describeError(err), err)
			}
			summary.RecoveryPoints = 0
			break
		}
		summary.RecoveryPoints += len(page.RecoveryPoints)
	}

	return summary, firstErr
}

func (r *BackupRepositoryImpl) ListJobsSince(ctx context.Context, region string, since time.Time) ([]entity.BackupJob, error) {
	client, err := r.clients.Backup(ctx, region)
	if err != nil {
		return nil, err
	}

	var jobs []entity.BackupJob
	paginator := backup.NewListBackupJobsPaginator(client, &backup.ListBackupJobsInput{
		ByCreatedAfter: aws.Time(since),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing backup jobs in %s: %s: %w", region, describeError(err), err)
		}
		for _, job := range page.BackupJobs {
			jobs = append(jobs, toBackupJob(job))
		}
	}
	return jobs, nil
}

// ListVaultJobs devolve os jobs já obtidos junto com o erro quando uma página falha.
func (r *BackupRepositoryImpl) ListVaultJobs(ctx context.Context, vaultName string, start, end time.Time) ([]entity.BackupJob, error) {
	client, err := r.clients.Backup(ctx, "")
	if err != nil {
		return nil, err
	}

	var jobs []entity.BackupJob
	input := &backup.ListBackupJobsInput{
		ByBackupVaultName: aws.String(vaultName),
		ByCreatedAfter:    aws.Time(start),
		ByCreatedBefore:   aws.Time(end),
		MaxResults:        aws.Int32(jobsPageSize),
	}
	for {
		page, err := client.ListBackupJobs(ctx, input)
		if err != nil {
			return jobs, fmt.Errorf("error fetching backup jobs for vault %s: %s: %w", vaultName, describeError(err), err)
		}
		for _, job := range page.BackupJobs {
			jobs = append(jobs, toBackupJob(job))
		}
		if aws.ToString(page.NextToken) == "" {
			break
		}
		input.NextToken = page.NextToken
	}
	return jobs, nil
}

func (r *BackupRepositoryImpl) GetResourceName(ctx context.Context, resourceARN string) (string, error) {
	client, err := r.clients.Backup(ctx, "")
	if err != nil {
		return noNameTag, err
	}

	out, err := client.ListTags(ctx, &backup.ListTagsInput{ResourceArn: aws.String(resourceARN)})
	if err != nil {
		return noNameTag, fmt.Errorf("error getting resource name for %s: %s: %w", resourceARN, describeError(err), err)
	}
	if name, ok := out.Tags["Name"]; ok && name != "" {
		return name, nil
	}
	return noNameTag, nil
}

func toBackupJob(job backupTypes.BackupJob) entity.BackupJob {
	return entity.BackupJob{
		JobID:           aws.ToString(job.BackupJobId),
		VaultName:       aws.ToString(job.BackupVaultName),
		ResourceARN:     aws.ToString(job.ResourceArn),
		State:           string(job.State),
		StatusMessage:   aws.ToString(job.StatusMessage),
		MessageCategory: aws.ToString(job.MessageCategory),
		CreationDate:    aws.ToTime(job.CreationDate),
	}
}

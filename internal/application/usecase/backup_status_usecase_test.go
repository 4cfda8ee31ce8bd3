package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultSortOrder = []string{"hourly", "daily", "weekly", "monthly", "yearly"}

func TestResourceDetails(t *testing.T) {
	tests := []struct {
		arn      string
		wantID   string
		wantType string
	}{
		{"arn:aws:ec2:us-east-1:123456789012:instance/i-0abc", "i-0abc", "EC2 Instance"},
		{"arn:aws:ec2:us-east-1:123456789012:volume/vol-0abc", "vol-0abc", "EBS Volume"},
		{"arn:aws:rds:us-east-1:123456789012:db:orders", "orders", "RDS Database"},
		{"arn:aws:rds:us-east-1:123456789012:cluster:aurora-1", "aurora-1", "RDS Cluster"},
		{"arn:aws:elasticfilesystem:us-east-1:123456789012:file-system/fs-1", "fs-1", "EFS"},
		{"arn:aws:dynamodb:us-east-1:123456789012:table/orders", "orders", "DynamoDB Table"},
		{"arn:aws:s3:::my-bucket", "my-bucket", "S3 Bucket"},
		{"arn:aws:redshift:us-east-1:123456789012:cluster:dw", "dw", "REDSHIFT cluster"},
		{"not-an-arn", "Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.arn, func(t *testing.T) {
			id, resourceType := ResourceDetails(tt.arn)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantType, resourceType)
		})
	}
}

func TestBackupType(t *testing.T) {
	assert.Equal(t, "Daily", BackupType("prod-daily"))
	assert.Equal(t, "Monthly", BackupType("Vault-MONTHLY"))
	assert.Equal(t, "Custom", BackupType("adhoc"))
}

func TestSortVaultJobs(t *testing.T) {
	older := time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	vaults := []entity.VaultJobs{
		{VaultName: "custom"},
		{VaultName: "prod-weekly"},
		{VaultName: "prod-hourly", Jobs: []entity.BackupJob{{JobID: "old", CreationDate: older}, {JobID: "new", CreationDate: newer}}},
		{VaultName: "prod-daily"},
	}

	SortVaultJobs(vaults, defaultSortOrder)

	var names []string
	for _, v := range vaults {
		names = append(names, v.VaultName)
	}
	assert.Equal(t, []string{"prod-hourly", "prod-daily", "prod-weekly", "custom"}, names)
	assert.Equal(t, "new", vaults[0].Jobs[0].JobID)
	assert.Equal(t, len(defaultSortOrder), VaultPriority("custom", defaultSortOrder))
}

func TestBackupStatusKey(t *testing.T) {
	now := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024/05/backup-backup-status-report-2024-05-07.pdf", BackupStatusKey("", now))
	assert.Equal(t, "2024/05/acme-co-backup-status-report-2024-05-07.pdf", BackupStatusKey("Acme Co", now))
}

func TestBackupStatusBuildReport(t *testing.T) {
	const volume = "arn:aws:ec2:us-east-1:123456789012:volume/vol-1"
	created := time.Date(2024, 5, 7, 2, 0, 0, 0, time.UTC)
	repo := &fakeBackupRepo{
		vaultJobs: map[string][]entity.BackupJob{
			"acme-daily": {
				{JobID: "1", ResourceARN: volume, State: entity.JobStateCompleted, CreationDate: created},
				{JobID: "2", ResourceARN: volume, State: entity.JobStateFailed, CreationDate: created.Add(time.Hour)},
			},
			"acme-hourly": {
				{JobID: "3", ResourceARN: volume, State: entity.JobStateRunning, CreationDate: created},
			},
		},
		vaultJobsErr: map[string]error{"acme-hourly": errFake},
		names:        map[string]string{volume: "data"},
	}
	console := &fakeConsole{}
	uc := NewBackupStatusUseCase(fakeIdentity{account: "123456789012"}, repo, &fakeExport{}, NewPublisher(&fakeStore{}, nil, console), console)
	now := time.Date(2024, 5, 8, 6, 0, 0, 0, time.UTC)
	uc.now = fixedClock(now)

	report, err := uc.BuildReport(context.Background(), types.BackupStatusConfig{
		ReportDays: 1,
		SortOrder:  defaultSortOrder,
		Vaults: []types.VaultSelection{
			{Kind: "hourly", Name: "acme-hourly", Enabled: true},
			{Kind: "daily", Name: "acme-daily", Enabled: true},
			{Kind: "weekly", Name: "acme-weekly", Enabled: true},
			{Kind: "monthly", Name: "acme-monthly", Enabled: false},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"acme-hourly", "acme-daily", "acme-weekly"}, report.VaultsChecked)
	assert.Equal(t, now.AddDate(0, 0, -1), report.Start)
	assert.Equal(t, [2]time.Time{now.AddDate(0, 0, -1), now}, repo.windows[0])

	require.Len(t, report.Vaults, 2, "vaults without jobs are dropped")
	assert.Equal(t, "acme-hourly", report.Vaults[0].VaultName, "partial results are kept")
	daily := report.Vaults[1]
	assert.Equal(t, "daily", daily.Kind)
	assert.Equal(t, "2", daily.Jobs[0].JobID)
	assert.Equal(t, entity.BackupJob{
		JobID:        "1",
		VaultName:    "acme-daily",
		ResourceARN:  volume,
		ResourceID:   "vol-1",
		ResourceType: "EBS Volume",
		ResourceName: "data",
		BackupType:   "Daily",
		State:        entity.JobStateCompleted,
		CreationDate: created,
	}, daily.Jobs[1])

	assert.Equal(t, 1, repo.nameCalls[volume], "names are looked up once per ARN")
	assert.Equal(t, 3, report.Totals().Total)
	assert.Len(t, console.warnings, 1)
}

func TestBackupStatusRun(t *testing.T) {
	repo := &fakeBackupRepo{vaultJobs: map[string][]entity.BackupJob{
		"d": {{JobID: "1", ResourceARN: "arn:aws:s3:::b", State: entity.JobStateFailed}},
	}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	console := &fakeConsole{}
	uc := NewBackupStatusUseCase(fakeIdentity{}, repo, &fakeExport{}, NewPublisher(store, notifier, console), console)
	uc.now = fixedClock(time.Date(2024, 5, 8, 6, 0, 0, 0, time.UTC))

	resp, err := uc.Run(context.Background(), types.BackupStatusConfig{
		Bucket:     "reports",
		ReportDays: 1,
		Vaults:     []types.VaultSelection{{Kind: "daily", Name: "d", Enabled: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2024/05/backup-backup-status-report-2024-05-08.pdf", body["s3_key"])
	assert.Equal(t, []interface{}{"d"}, body["vaults_checked"])
	assert.Equal(t, float64(1), body["total_jobs"])
	assert.Equal(t, []string{"AWS Backup Status Report (1 failed)"}, notifier.subjects)
}

func TestBackupStatusRunWithoutVaults(t *testing.T) {
	store := &fakeStore{}
	console := &fakeConsole{}
	uc := NewBackupStatusUseCase(fakeIdentity{}, &fakeBackupRepo{}, &fakeExport{}, NewPublisher(store, nil, console), console)

	resp, err := uc.Run(context.Background(), types.BackupStatusConfig{
		Bucket: "reports",
		Vaults: []types.VaultSelection{{Kind: "daily", Name: "d", Enabled: false}},
	})
	require.NoError(t, err)
	assert.Equal(t, types.HandlerResponse{StatusCode: 400, Body: `{"error":"No vaults enabled for reporting"}`}, resp)
	assert.Empty(t, store.puts)

	_, err = uc.BuildReport(context.Background(), types.BackupStatusConfig{})
	assert.ErrorIs(t, err, types.ErrNoVaultsEnabled)
}

func TestBackupStatusRunWithoutBucket(t *testing.T) {
	repo := &fakeBackupRepo{}
	console := &fakeConsole{}
	uc := NewBackupStatusUseCase(fakeIdentity{}, repo, &fakeExport{}, NewPublisher(&fakeStore{}, nil, console), console)

	resp, err := uc.Run(context.Background(), types.BackupStatusConfig{
		Vaults: []types.VaultSelection{{Kind: "daily", Name: "d", Enabled: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, types.HandlerResponse{StatusCode: 500, Body: "REPORT_BUCKET not configured."}, resp)
	require.Len(t, console.errors, 1)
	assert.Contains(t, console.errors[0], types.ErrMissingBucket.Error())
}

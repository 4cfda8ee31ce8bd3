package repository

import (
	"context"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
)

// IdentityRepository resolves the caller account.
type IdentityRepository interface {
	GetAccountID(ctx context.Context) (string, error)
}

// CostRepository defines the Cost Explorer and Budgets queries.
type CostRepository interface {
	GetTagUsageCosts(ctx context.Context, tagKey string, period entity.Period) (entity.TagUsageCosts, error)
	GetServiceCosts(ctx context.Context, period entity.Period) ([]entity.ServiceCost, error)
	GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error)
}

// ComplianceRepository defines the AWS Config queries.
type ComplianceRepository interface {
	GetRuleCompliance(ctx context.Context) ([]entity.RuleCompliance, error)
	GetNonCompliantResources(ctx context.Context, ruleName string, limit int) ([]entity.NonCompliantResource, error)
}

// BackupRepository defines the AWS Backup queries.
type BackupRepository interface {
	// Inventory, one region at a time.
	ListVaults(ctx context.Context, region string) ([]string, error)
	// GetVaultSummary returns what it could gather alongside the first error met.
	GetVaultSummary(ctx context.Context, region, vaultName string) (entity.VaultSummary, error)
	ListJobsSince(ctx context.Context, region string, since time.Time) ([]entity.BackupJob, error)

	// Status, default region.
	ListVaultJobs(ctx context.Context, vaultName string, start, end time.Time) ([]entity.BackupJob, error)
	GetResourceName(ctx context.Context, resourceARN string) (string, error)
}

// NetworkRepository defines the topology queries of the diagram generator.
type NetworkRepository interface {
	GetVPCs(ctx context.Context) ([]entity.VPC, error)
	GetSubnets(ctx context.Context) ([]entity.Subnet, error)
	GetInstances(ctx context.Context) ([]entity.Instance, error)
	GetLoadBalancers(ctx context.Context) ([]entity.LoadBalancer, error)
	GetWebACLs(ctx context.Context) ([]entity.WebACL, error)
	GetFunctions(ctx context.Context) ([]entity.Function, error)
	GetDBInstances(ctx context.Context) ([]entity.DBInstance, error)
}

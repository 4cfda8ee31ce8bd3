package aws

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

// fakeClients satisfaz todas as interfaces xxxClients dos repositórios.
type fakeClients struct {
	sts     STSAPI
	ce      CostExplorerAPI
	budgets BudgetsAPI
	config  ConfigServiceAPI
	iam     IAMAPI
	ec2     EC2API
	rds     RDSAPI
	backup  BackupAPI
	elb     ELBv2API
	waf     WAFv2API
	lambda  LambdaAPI
	s3      S3API
	sns     SNSAPI

	backupRegions []string
}

func (f *fakeClients) STS(context.Context) (STSAPI, error)                   { return f.sts, nil }
func (f *fakeClients) CostExplorer(context.Context) (CostExplorerAPI, error) { return f.ce, nil }
func (f *fakeClients) Budgets(context.Context) (BudgetsAPI, error)           { return f.budgets, nil }
func (f *fakeClients) ConfigService(context.Context) (ConfigServiceAPI, error) {
	return f.config, nil
}
func (f *fakeClients) IAM(context.Context) (IAMAPI, error)       { return f.iam, nil }
func (f *fakeClients) EC2(context.Context) (EC2API, error)       { return f.ec2, nil }
func (f *fakeClients) RDS(context.Context) (RDSAPI, error)       { return f.rds, nil }
func (f *fakeClients) ELBv2(context.Context) (ELBv2API, error)   { return f.elb, nil }
func (f *fakeClients) WAFv2(context.Context) (WAFv2API, error)   { return f.waf, nil }
func (f *fakeClients) Lambda(context.Context) (LambdaAPI, error) { return f.lambda, nil }
func (f *fakeClients) S3(context.Context) (S3API, error)         { return f.s3, nil }
func (f *fakeClients) SNS(context.Context) (SNSAPI, error)       { return f.sns, nil }

func (f *fakeClients) Backup(_ context.Context, region string) (BackupAPI, error) {
	f.backupRegions = append(f.backupRegions, region)
	return f.backup, nil
}

var errFakeClient = errors.New("client unavailable")

// brokenClients falha ao construir qualquer cliente.
type brokenClients struct{}

func (brokenClients) STS(context.Context) (STSAPI, error) { return nil, errFakeClient }
func (brokenClients) Backup(context.Context, string) (BackupAPI, error) {
	return nil, errFakeClient
}

func apiError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}

package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/wafv2"
)

// globalRegion hosts the account-wide billing endpoints (Cost Explorer, Budgets).
const globalRegion = "us-east-1"

// ClientProvider builds SDK clients lazily and caches them per region and service.
type ClientProvider struct {
	profile     string
	region      string
	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewClientProvider creates a provider for the given shared profile and default region.
// Empty values fall back to the SDK default chain (env, instance role, Lambda role).
func NewClientProvider(profile, region string) *ClientProvider {
	return &ClientProvider{
		profile:     profile,
		region:      region,
		clientCache: make(map[string]interface{}),
	}
}

func (p *ClientProvider) getAWSConfig(ctx context.Context) (aws.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cfg != nil {
		return *p.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if p.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(p.profile))
	}
	if p.region != "" {
		opts = append(opts, config.WithRegion(p.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", p.profile, err)
	}
	if p.region == "" {
		p.region = cfg.Region
	}

	p.cfg = &cfg
	return cfg, nil
}

func (p *ClientProvider) getServiceClient(ctx context.Context, region, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s", region, service)

	p.mu.Lock()
	if client, ok := p.clientCache[cacheKey]; ok {
		p.mu.Unlock()
		return client, nil
	}
	p.mu.Unlock()

	cfg, err := p.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "costexplorer":
		regionalCfg.Region = globalRegion
		client = costexplorer.NewFromConfig(regionalCfg)
	case "budgets":
		regionalCfg.Region = globalRegion
		client = budgets.NewFromConfig(regionalCfg)
	case "configservice":
		client = configservice.NewFromConfig(regionalCfg)
	case "iam":
		client = iam.NewFromConfig(regionalCfg)
	case "ec2":
		client = ec2.NewFromConfig(regionalCfg)
	case "rds":
		client = rds.NewFromConfig(regionalCfg)
	case "backup":
		client = backup.NewFromConfig(regionalCfg)
	case "elbv2":
		client = elasticloadbalancingv2.NewFromConfig(regionalCfg)
	case "wafv2":
		client = wafv2.NewFromConfig(regionalCfg)
	case "lambda":
		client = lambda.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	case "sns":
		client = sns.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	p.mu.Lock()
	p.clientCache[cacheKey] = client
	p.mu.Unlock()

	return client, nil
}

func (p *ClientProvider) STS(ctx context.Context) (STSAPI, error) {
	client, err := p.getServiceClient(ctx, "", "sts")
	if err != nil {
		return nil, err
	}
	return client.(*sts.Client), nil
}

func (p *ClientProvider) CostExplorer(ctx context.Context) (CostExplorerAPI, error) {
	client, err := p.getServiceClient(ctx, "", "costexplorer")
	if err != nil {
		return nil, err
	}
	return client.(*costexplorer.Client), nil
}

func (p *ClientProvider) Budgets(ctx context.Context) (BudgetsAPI, error) {
	client, err := p.getServiceClient(ctx, "", "budgets")
	if err != nil {
		return nil, err
	}
	return client.(*budgets.Client), nil
}

func (p *ClientProvider) ConfigService(ctx context.Context) (ConfigServiceAPI, error) {
	client, err := p.getServiceClient(ctx, "", "configservice")
	if err != nil {
		return nil, err
	}
	return client.(*configservice.Client), nil
}

func (p *ClientProvider) IAM(ctx context.Context) (IAMAPI, error) {
	client, err := p.getServiceClient(ctx, "", "iam")
	if err != nil {
		return nil, err
	}
	return client.(*iam.Client), nil
}

func (p *ClientProvider) EC2(ctx context.Context) (EC2API, error) {
	client, err := p.getServiceClient(ctx, "", "ec2")
	if err != nil {
		return nil, err
	}
	return client.(*ec2.Client), nil
}

func (p *ClientProvider) RDS(ctx context.Context) (RDSAPI, error) {
	client, err := p.getServiceClient(ctx, "", "rds")
	if err != nil {
		return nil, err
	}
	return client.(*rds.Client), nil
}

// Backup returns a client for region, or for the default region when empty.
func (p *ClientProvider) Backup(ctx context.Context, region string) (BackupAPI, error) {
	client, err := p.getServiceClient(ctx, region, "backup")
	if err != nil {
		return nil, err
	}
	return client.(*backup.Client), nil
}

func (p *ClientProvider) ELBv2(ctx context.Context) (ELBv2API, error) {
	client, err := p.getServiceClient(ctx, "", "elbv2")
	if err != nil {
		return nil, err
	}
	return client.(*elasticloadbalancingv2.Client), nil
}

func (p *ClientProvider) WAFv2(ctx context.Context) (WAFv2API, error) {
	client, err := p.getServiceClient(ctx, "", "wafv2")
	if err != nil {
		return nil, err
	}
	return client.(*wafv2.Client), nil
}

func (p *ClientProvider) Lambda(ctx context.Context) (LambdaAPI, error) {
	client, err := p.getServiceClient(ctx, "", "lambda")
	if err != nil {
		return nil, err
	}
	return client.(*lambda.Client), nil
}

func (p *ClientProvider) S3(ctx context.Context) (S3API, error) {
	client, err := p.getServiceClient(ctx, "", "s3")
	if err != nil {
		return nil, err
	}
	return client.(*s3.Client), nil
}

func (p *ClientProvider) SNS(ctx context.Context) (SNSAPI, error) {
	client, err := p.getServiceClient(ctx, "", "sns")
	if err != nil {
		return nil, err
	}
	return client.(*sns.Client), nil
}

package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	cfgTypes "github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

type complianceClients interface {
	ConfigService(ctx context.Context) (ConfigServiceAPI, error)
	IAM(ctx context.Context) (IAMAPI, error)
	EC2(ctx context.Context) (EC2API, error)
	RDS(ctx context.Context) (RDSAPI, error)
}

// ComplianceRepositoryImpl implementa o ComplianceRepository sobre o AWS Config.
type ComplianceRepositoryImpl struct {
	clients complianceClients
}

// NewComplianceRepository cria uma nova implementação do ComplianceRepository.
func NewComplianceRepository(p *ClientProvider) repository.ComplianceRepository {
	return &ComplianceRepositoryImpl{clients: p}
}

func (r *ComplianceRepositoryImpl) GetRuleCompliance(ctx context.Context) ([]entity.RuleCompliance, error) {
	client, err := r.clients.ConfigService(ctx)
	if err != nil {
		return nil, err
	}

	var rules []entity.RuleCompliance
	input := &configservice.DescribeComplianceByConfigRuleInput{}
	for {
		result, err := client.DescribeComplianceByConfigRule(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error describing compliance by config rule: %s: %w", describeError(err), err)
		}

		for _, rule := range result.ComplianceByConfigRules {
			status := "UNKNOWN"
			if rule.Compliance != nil && rule.Compliance.ComplianceType != "" {
				status = string(rule.Compliance.ComplianceType)
			}
			rules = append(rules, entity.RuleCompliance{
				RuleName: aws.ToString(rule.ConfigRuleName),
				Status:   status,
			})
		}

		if aws.ToString(result.NextToken) == "" {
			break
		}
		input.NextToken = result.NextToken
	}

	return rules, nil
}

// GetNonCompliantResources lista até limit recursos NON_COMPLIANT da regra, já com nome amigável.
func (r *ComplianceRepositoryImpl) GetNonCompliantResources(ctx context.Context, ruleName string, limit int) ([]entity.NonCompliantResource, error) {
	client, err := r.clients.ConfigService(ctx)
	if err != nil {
		return nil, err
	}

	var resources []entity.NonCompliantResource
	input := &configservice.GetComplianceDetailsByConfigRuleInput{
		ConfigRuleName:  aws.String(ruleName),
		ComplianceTypes: []cfgTypes.ComplianceType{cfgTypes.ComplianceTypeNonCompliant},
	}
	for {
		result, err := client.GetComplianceDetailsByConfigRule(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error fetching resources for %s: %s: %w", ruleName, describeError(err), err)
		}

		for _, eval := range result.EvaluationResults {
			if limit > 0 && len(resources) >= limit {
				return resources, nil
			}
			if eval.EvaluationResultIdentifier == nil || eval.EvaluationResultIdentifier.EvaluationResultQualifier == nil {
				continue
			}
			q := eval.EvaluationResultIdentifier.EvaluationResultQualifier
			resourceType := aws.ToString(q.ResourceType)
			resourceID := aws.ToString(q.ResourceId)
			resources = append(resources, entity.NonCompliantResource{
				ResourceType: resourceType,
				ResourceID:   resourceID,
				FriendlyName: r.friendlyName(ctx, resourceType, resourceID),
			})
		}

		if aws.ToString(result.NextToken) == "" || (limit > 0 && len(resources) >= limit) {
			break
		}
		input.NextToken = result.NextToken
	}

	return resources, nil
}

// friendlyName devolve um nome legível para o recurso; qualquer falha resulta no próprio ID.
func (r *ComplianceRepositoryImpl) friendlyName(ctx context.Context, resourceType, resourceID string) string {
	switch resourceType {
	case "AWS::IAM::User":
		if arn.IsARN(resourceID) {
			if parsed, err := arn.Parse(resourceID); err == nil {
				return lastPathSegment(parsed.Resource)
			}
		}
		client, err := r.clients.IAM(ctx)
		if err != nil {
			return resourceID
		}
		out, err := client.GetUser(ctx, &iam.GetUserInput{UserName: aws.String(resourceID)})
		if err != nil || out.User == nil || out.User.UserName == nil {
			return resourceID
		}
		return *out.User.UserName

	case "AWS::EC2::Instance":
		client, err := r.clients.EC2(ctx)
		if err != nil {
			return resourceID
		}
		out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{resourceID}})
		if err != nil {
			return resourceID
		}
		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				if name := nameTag(instance.Tags); name != "" {
					return name
				}
			}
		}

	case "AWS::EC2::Volume":
		client, err := r.clients.EC2(ctx)
		if err != nil {
			return resourceID
		}
		out, err := client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{VolumeIds: []string{resourceID}})
		if err != nil {
			return resourceID
		}
		for _, volume := range out.Volumes {
			if name := nameTag(volume.Tags); name != "" {
				return name
			}
		}

	case "AWS::EC2::EIP":
		client, err := r.clients.EC2(ctx)
		if err != nil {
			return resourceID
		}
		out, err := client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{AllocationIds: []string{resourceID}})
		if err != nil {
			return resourceID
		}
		for _, addr := range out.Addresses {
			if name := nameTag(addr.Tags); name != "" {
				return name
			}
		}

	case "AWS::S3::Bucket":
		return resourceID

	case "AWS::RDS::DBInstance":
		client, err := r.clients.RDS(ctx)
		if err != nil {
			return resourceID
		}
		out, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{DBInstanceIdentifier: aws.String(resourceID)})
		if err != nil {
			return resourceID
		}
		for _, db := range out.DBInstances {
			if db.DBName != nil && *db.DBName != "" {
				return *db.DBName
			}
			return resourceID
		}
	}

	return resourceID
}

func nameTag(tags []ec2Types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func lastPathSegment(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

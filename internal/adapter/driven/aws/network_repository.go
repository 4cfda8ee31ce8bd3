package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/wafv2"
	wafTypes "github.com/aws/aws-sdk-go-v2/service/wafv2/types"
	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

type networkClients interface {
	EC2(ctx context.Context) (EC2API, error)
	ELBv2(ctx context.Context) (ELBv2API, error)
	WAFv2(ctx context.Context) (WAFv2API, error)
	Lambda(ctx context.Context) (LambdaAPI, error)
	RDS(ctx context.Context) (RDSAPI, error)
}

// NetworkRepositoryImpl implementa o NetworkRepository para a região do provider.
type NetworkRepositoryImpl struct {
	clients networkClients
}

// NewNetworkRepository cria uma nova implementação do NetworkRepository.
func NewNetworkRepository(p *ClientProvider) repository.NetworkRepository {
	return &NetworkRepositoryImpl{clients: p}
}

func (r *NetworkRepositoryImpl) GetVPCs(ctx context.Context) ([]entity.VPC, error) {
	client, err := r.clients.EC2(ctx)
	if err != nil {
		return nil, err
	}

	var vpcs []entity.VPC
	paginator := ec2.NewDescribeVpcsPaginator(client, &ec2.DescribeVpcsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing VPCs: %s: %w", describeError(err), err)
		}
		for _, v := range page.Vpcs {
			vpcs = append(vpcs, entity.VPC{
				ID:        aws.ToString(v.VpcId),
				Name:      nameTag(v.Tags),
				CIDRBlock: aws.ToString(v.CidrBlock),
				IsDefault: aws.ToBool(v.IsDefault),
			})
		}
	}
	return vpcs, nil
}

func (r *NetworkRepositoryImpl) GetSubnets(ctx context.Context) ([]entity.Subnet, error) {
	client, err := r.clients.EC2(ctx)
	if err != nil {
		return nil, err
	}

	var subnets []entity.Subnet
	paginator := ec2.NewDescribeSubnetsPaginator(client, &ec2.DescribeSubnetsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing subnets: %s: %w", describeError(err), err)
		}
		for _, s := range page.Subnets {
			subnets = append(subnets, entity.Subnet{
				ID:               aws.ToString(s.SubnetId),
				VPCID:            aws.ToString(s.VpcId),
				Name:             nameTag(s.Tags),
				CIDRBlock:        aws.ToString(s.CidrBlock),
				AvailabilityZone: aws.ToString(s.AvailabilityZone),
			})
		}
	}
	return subnets, nil
}

func (r *NetworkRepositoryImpl) GetInstances(ctx context.Context) ([]entity.Instance, error) {
	client, err := r.clients.EC2(ctx)
	if err != nil {
		return nil, err
	}

	var instances []entity.Instance
	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing instances: %s: %w", describeError(err), err)
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				state := ""
				if inst.State != nil {
					state = string(inst.State.Name)
				}
				instances = append(instances, entity.Instance{
					ID:       aws.ToString(inst.InstanceId),
					Name:     nameTag(inst.Tags),
					Type:     string(inst.InstanceType),
					State:    state,
					SubnetID: aws.ToString(inst.SubnetId),
					VPCID:    aws.ToString(inst.VpcId),
				})
			}
		}
	}
	return instances, nil
}

func (r *NetworkRepositoryImpl) GetLoadBalancers(ctx context.Context) ([]entity.LoadBalancer, error) {
	client, err := r.clients.ELBv2(ctx)
	if err != nil {
		return nil, err
	}

	var lbs []entity.LoadBalancer
	paginator := elasticloadbalancingv2.NewDescribeLoadBalancersPaginator(client, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing load balancers: %s: %w", describeError(err), err)
		}
		for _, lb := range page.LoadBalancers {
			var subnetIDs []string
			for _, az := range lb.AvailabilityZones {
				if az.SubnetId != nil {
					subnetIDs = append(subnetIDs, *az.SubnetId)
				}
			}
			lbs = append(lbs, entity.LoadBalancer{
				ARN:       aws.ToString(lb.LoadBalancerArn),
				Name:      aws.ToString(lb.LoadBalancerName),
				Type:      string(lb.Type),
				Scheme:    string(lb.Scheme),
				VPCID:     aws.ToString(lb.VpcId),
				SubnetIDs: subnetIDs,
			})
		}
	}
	return lbs, nil
}

// GetWebACLs lista as Web ACLs regionais e os ALBs associados a cada uma.
func (r *NetworkRepositoryImpl) GetWebACLs(ctx context.Context) ([]entity.WebACL, error) {
	client, err := r.clients.WAFv2(ctx)
	if err != nil {
		return nil, err
	}

	var acls []entity.WebACL
	input := &wafv2.ListWebACLsInput{Scope: wafTypes.ScopeRegional}
	for {
		page, err := client.ListWebACLs(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error listing web ACLs: %s: %w", describeError(err), err)
		}
		for _, summary := range page.WebACLs {
			acl := entity.WebACL{
				ARN:  aws.ToString(summary.ARN),
				Name: aws.ToString(summary.Name),
			}
			resources, err := client.ListResourcesForWebACL(ctx, &wafv2.ListResourcesForWebACLInput{
				WebACLArn:    summary.ARN,
				ResourceType: wafTypes.ResourceTypeApplicationLoadBalancer,
			})
			if err == nil {
				acl.ResourceARNs = resources.ResourceArns
			}
			acls = append(acls, acl)
		}
		// WAFv2 devolve NextMarker mesmo na última página quando a lista está vazia.
		if aws.ToString(page.NextMarker) == "" || len(page.WebACLs) == 0 {
			break
		}
		input.NextMarker = page.NextMarker
	}
	return acls, nil
}

func (r *NetworkRepositoryImpl) GetFunctions(ctx context.Context) ([]entity.Function, error) {
	client, err := r.clients.Lambda(ctx)
	if err != nil {
		return nil, err
	}

	var functions []entity.Function
	paginator := lambda.NewListFunctionsPaginator(client, &lambda.ListFunctionsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing functions: %s: %w", describeError(err), err)
		}
		for _, fn := range page.Functions {
			if fn.VpcConfig == nil || aws.ToString(fn.VpcConfig.VpcId) == "" {
				continue
			}
			functions = append(functions, entity.Function{
				Name:      aws.ToString(fn.FunctionName),
				Runtime:   string(fn.Runtime),
				VPCID:     aws.ToString(fn.VpcConfig.VpcId),
				SubnetIDs: fn.VpcConfig.SubnetIds,
			})
		}
	}
	return functions, nil
}

func (r *NetworkRepositoryImpl) GetDBInstances(ctx context.Context) ([]entity.DBInstance, error) {
	client, err := r.clients.RDS(ctx)
	if err != nil {
		return nil, err
	}

	var dbs []entity.DBInstance
	paginator := rds.NewDescribeDBInstancesPaginator(client, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing DB instances: %s: %w", describeError(err), err)
		}
		for _, db := range page.DBInstances {
			instance := entity.DBInstance{
				ID:     aws.ToString(db.DBInstanceIdentifier),
				Engine: aws.ToString(db.Engine),
			}
			if db.DBSubnetGroup != nil {
				instance.VPCID = aws.ToString(db.DBSubnetGroup.VpcId)
				for _, s := range db.DBSubnetGroup.Subnets {
					if s.SubnetIdentifier != nil {
						instance.SubnetIDs = append(instance.SubnetIDs, *s.SubnetIdentifier)
					}
				}
			}
			dbs = append(dbs, instance)
		}
	}
	return dbs, nil
}

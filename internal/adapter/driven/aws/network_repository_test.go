package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbTypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/aws-sdk-go-v2/service/wafv2"
	wafTypes "github.com/aws/aws-sdk-go-v2/service/wafv2/types"
	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWAF struct {
	pages         map[string]*wafv2.ListWebACLsOutput
	resources     map[string][]string
	resourcesErr  error
	listCalls     int
	resourceTypes []wafTypes.ResourceType
}

func (f *fakeWAF) ListWebACLs(_ context.Context, in *wafv2.ListWebACLsInput, _ ...func(*wafv2.Options)) (*wafv2.ListWebACLsOutput, error) {
	f.listCalls++
	return f.pages[aws.ToString(in.NextMarker)], nil
}

func (f *fakeWAF) ListResourcesForWebACL(_ context.Context, in *wafv2.ListResourcesForWebACLInput, _ ...func(*wafv2.Options)) (*wafv2.ListResourcesForWebACLOutput, error) {
	f.resourceTypes = append(f.resourceTypes, in.ResourceType)
	if f.resourcesErr != nil {
		return nil, f.resourcesErr
	}
	return &wafv2.ListResourcesForWebACLOutput{ResourceArns: f.resources[aws.ToString(in.WebACLArn)]}, nil
}

type fakeLambda struct {
	out *lambda.ListFunctionsOutput
}

func (f *fakeLambda) ListFunctions(context.Context, *lambda.ListFunctionsInput, ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error) {
	return f.out, nil
}

type fakeELB struct {
	out *elasticloadbalancingv2.DescribeLoadBalancersOutput
}

func (f *fakeELB) DescribeLoadBalancers(context.Context, *elasticloadbalancingv2.DescribeLoadBalancersInput, ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error) {
	return f.out, nil
}

func webACL(name string) wafTypes.WebACLSummary {
	return wafTypes.WebACLSummary{
		ARN:  aws.String("arn:aws:wafv2:us-east-1:123456789012:regional/webacl/" + name),
		Name: aws.String(name),
	}
}

func TestGetVPCsAndSubnets(t *testing.T) {
	fake := &fakeEC2{
		vpcs: &ec2.DescribeVpcsOutput{Vpcs: []ec2Types.Vpc{{
			VpcId:     aws.String("vpc-1"),
			CidrBlock: aws.String("10.0.0.0/16"),
			IsDefault: aws.Bool(true),
			Tags:      nameTags("main"),
		}}},
		subnets: &ec2.DescribeSubnetsOutput{Subnets: []ec2Types.Subnet{{
			SubnetId:         aws.String("subnet-1"),
			VpcId:            aws.String("vpc-1"),
			CidrBlock:        aws.String("10.0.1.0/24"),
			AvailabilityZone: aws.String("us-east-1a"),
		}}},
	}
	repo := &NetworkRepositoryImpl{clients: &fakeClients{ec2: fake}}

	vpcs, err := repo.GetVPCs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.VPC{{ID: "vpc-1", Name: "main", CIDRBlock: "10.0.0.0/16", IsDefault: true}}, vpcs)

	subnets, err := repo.GetSubnets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Subnet{{ID: "subnet-1", VPCID: "vpc-1", CIDRBlock: "10.0.1.0/24", AvailabilityZone: "us-east-1a"}}, subnets)
}

func TestGetInstances(t *testing.T) {
	fake := &fakeEC2{instances: &ec2.DescribeInstancesOutput{Reservations: []ec2Types.Reservation{{
		Instances: []ec2Types.Instance{
			{
				InstanceId:   aws.String("i-1"),
				InstanceType: ec2Types.InstanceTypeT3Micro,
				State:        &ec2Types.InstanceState{Name: ec2Types.InstanceStateNameRunning},
				SubnetId:     aws.String("subnet-1"),
				VpcId:        aws.String("vpc-1"),
				Tags:         nameTags("web"),
			},
			{InstanceId: aws.String("i-2")},
		},
	}}}}
	repo := &NetworkRepositoryImpl{clients: &fakeClients{ec2: fake}}

	instances, err := repo.GetInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, entity.Instance{ID: "i-1", Name: "web", Type: "t3.micro", State: "running", SubnetID: "subnet-1", VPCID: "vpc-1"}, instances[0])
	assert.Equal(t, "", instances[1].State)
}

func TestGetLoadBalancers(t *testing.T) {
	fake := &fakeELB{out: &elasticloadbalancingv2.DescribeLoadBalancersOutput{LoadBalancers: []elbTypes.LoadBalancer{{
		LoadBalancerArn:  aws.String("arn:lb"),
		LoadBalancerName: aws.String("public-alb"),
		Type:             elbTypes.LoadBalancerTypeEnumApplication,
		Scheme:           elbTypes.LoadBalancerSchemeEnumInternetFacing,
		VpcId:            aws.String("vpc-1"),
		AvailabilityZones: []elbTypes.AvailabilityZone{
			{SubnetId: aws.String("subnet-1")},
			{ZoneName: aws.String("us-east-1b")},
		},
	}}}}
	repo := &NetworkRepositoryImpl{clients: &fakeClients{elb: fake}}

	lbs, err := repo.GetLoadBalancers(context.Background())
	require.NoError(t, err)
	require.Len(t, lbs, 1)
	assert.Equal(t, "application", lbs[0].Type)
	assert.Equal(t, "internet-facing", lbs[0].Scheme)
	assert.Equal(t, []string{"subnet-1"}, lbs[0].SubnetIDs)
}

func TestGetWebACLs(t *testing.T) {
	tests := []struct {
		name          string
		fake          *fakeWAF
		wantACLs      int
		wantCalls     int
		wantResources []string
	}{
		{
			name: "follows NextMarker",
			fake: &fakeWAF{
				pages: map[string]*wafv2.ListWebACLsOutput{
					"":   {WebACLs: []wafTypes.WebACLSummary{webACL("edge")}, NextMarker: aws.String("m2")},
					"m2": {WebACLs: []wafTypes.WebACLSummary{webACL("api")}},
				},
				resources: map[string][]string{
					"arn:aws:wafv2:us-east-1:123456789012:regional/webacl/edge": {"arn:lb"},
				},
			},
			wantACLs:      2,
			wantCalls:     2,
			wantResources: []string{"arn:lb"},
		},
		{
			name: "stops on an empty page that still carries a marker",
			fake: &fakeWAF{
				pages: map[string]*wafv2.ListWebACLsOutput{
					"":   {WebACLs: []wafTypes.WebACLSummary{webACL("edge")}, NextMarker: aws.String("m2")},
					"m2": {NextMarker: aws.String("m3")},
				},
			},
			wantACLs:  1,
			wantCalls: 2,
		},
		{
			name: "resource lookup failure leaves the ACL unassociated",
			fake: &fakeWAF{
				pages: map[string]*wafv2.ListWebACLsOutput{
					"": {WebACLs: []wafTypes.WebACLSummary{webACL("edge")}},
				},
				resourcesErr: apiError("WAFNonexistentItemException", "gone"),
			},
			wantACLs:  1,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &NetworkRepositoryImpl{clients: &fakeClients{waf: tt.fake}}
			acls, err := repo.GetWebACLs(context.Background())
			require.NoError(t, err)
			require.Len(t, acls, tt.wantACLs)
			assert.Equal(t, tt.wantCalls, tt.fake.listCalls)
			assert.Equal(t, tt.wantResources, acls[0].ResourceARNs)
			for _, rt := range tt.fake.resourceTypes {
				assert.Equal(t, wafTypes.ResourceTypeApplicationLoadBalancer, rt)
			}
		})
	}
}

func TestGetFunctionsSkipsFunctionsOutsideVPC(t *testing.T) {
	fake := &fakeLambda{out: &lambda.ListFunctionsOutput{Functions: []lambdaTypes.FunctionConfiguration{
		{
			FunctionName: aws.String("in-vpc"),
			Runtime:      lambdaTypes.RuntimeProvidedal2023,
			VpcConfig: &lambdaTypes.VpcConfigResponse{
				VpcId:     aws.String("vpc-1"),
				SubnetIds: []string{"subnet-1", "subnet-2"},
			},
		},
		{FunctionName: aws.String("no-vpc-config")},
		{FunctionName: aws.String("empty-vpc"), VpcConfig: &lambdaTypes.VpcConfigResponse{VpcId: aws.String("")}},
	}}}
	repo := &NetworkRepositoryImpl{clients: &fakeClients{lambda: fake}}

	functions, err := repo.GetFunctions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Function{{
		Name:      "in-vpc",
		Runtime:   "provided.al2023",
		VPCID:     "vpc-1",
		SubnetIDs: []string{"subnet-1", "subnet-2"},
	}}, functions)
}

func TestGetDBInstances(t *testing.T) {
	fake := &fakeRDS{out: &rds.DescribeDBInstancesOutput{DBInstances: []rdsTypes.DBInstance{
		{
			DBInstanceIdentifier: aws.String("orders-db"),
			Engine:               aws.String("postgres"),
			DBSubnetGroup: &rdsTypes.DBSubnetGroup{
				VpcId: aws.String("vpc-1"),
				Subnets: []rdsTypes.Subnet{
					{SubnetIdentifier: aws.String("subnet-1")},
					{SubnetIdentifier: aws.String("subnet-2")},
				},
			},
		},
		{DBInstanceIdentifier: aws.String("legacy"), Engine: aws.String("mysql")},
	}}}
	repo := &NetworkRepositoryImpl{clients: &fakeClients{rds: fake}}

	dbs, err := repo.GetDBInstances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.DBInstance{
		{ID: "orders-db", Engine: "postgres", VPCID: "vpc-1", SubnetIDs: []string{"subnet-1", "subnet-2"}},
		{ID: "legacy", Engine: "mysql"},
	}, dbs)
}

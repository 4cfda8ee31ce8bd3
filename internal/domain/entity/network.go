package entity

// VPC is a virtual network drawn as the outer cluster.
type VPC struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	CIDRBlock string `json:"cidr_block"`
	IsDefault bool   `json:"is_default"`
}

// Subnet belongs to a VPC.
type Subnet struct {
	ID               string `json:"id"`
	VPCID            string `json:"vpc_id"`
	Name             string `json:"name,omitempty"`
	CIDRBlock        string `json:"cidr_block"`
	AvailabilityZone string `json:"availability_zone"`
}

// Instance is an EC2 instance placed in a subnet.
type Instance struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type"`
	State    string `json:"state"`
	SubnetID string `json:"subnet_id,omitempty"`
	VPCID    string `json:"vpc_id,omitempty"`
}

// LoadBalancer is an ELBv2 load balancer attached to subnets.
type LoadBalancer struct {
	ARN       string   `json:"arn"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Scheme    string   `json:"scheme"`
	VPCID     string   `json:"vpc_id"`
	SubnetIDs []string `json:"subnet_ids"`
}

// WebACL is a regional WAF ACL and the resources it protects.
type WebACL struct {
	ARN          string   `json:"arn"`
	Name         string   `json:"name"`
	ResourceARNs []string `json:"resource_arns"`
}

// Function is a Lambda function attached to a VPC.
type Function struct {
	Name      string   `json:"name"`
	Runtime   string   `json:"runtime,omitempty"`
	VPCID     string   `json:"vpc_id"`
	SubnetIDs []string `json:"subnet_ids"`
}

// DBInstance is an RDS instance and its subnet group subnets.
type DBInstance struct {
	ID        string   `json:"id"`
	Engine    string   `json:"engine"`
	VPCID     string   `json:"vpc_id"`
	SubnetIDs []string `json:"subnet_ids"`
}

// NetworkTopology is the gathered state drawn by the diagram generator.
type NetworkTopology struct {
	Region        string         `json:"region"`
	VPCs          []VPC          `json:"vpcs"`
	Subnets       []Subnet       `json:"subnets"`
	Instances     []Instance     `json:"instances"`
	LoadBalancers []LoadBalancer `json:"load_balancers,omitempty"`
	WebACLs       []WebACL       `json:"web_acls,omitempty"`
	Functions     []Function     `json:"functions,omitempty"`
	DBInstances   []DBInstance   `json:"db_instances,omitempty"`
}

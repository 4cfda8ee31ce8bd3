package diagram

import (
	"fmt"
	"sort"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/emicklei/dot"
)

// Cores dos nós, na paleta dos ícones da AWS.
const (
	colorEC2    = "#FF9900"
	colorLambda = "#FFB84D"
	colorRDS    = "#3B48CC"
	colorELB    = "#8C4FFF"
	colorWAF    = "#DD344C"
	colorBorder = "#232F3E"
)

// BuildGraph monta o grafo VPC -> Subnet -> recursos. Subnets sem VPC conhecida
// e instâncias sem subnet ficam de fora.
func BuildGraph(t entity.NetworkTopology) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("label", fmt.Sprintf("AWS Network Diagram (%s)", t.Region))
	g.Attr("labelloc", "t")
	g.Attr("fontname", "Helvetica")
	g.Attr("compound", "true")
	g.Attr("rankdir", "TB")

	vpcs := make([]entity.VPC, len(t.VPCs))
	copy(vpcs, t.VPCs)
	sort.Slice(vpcs, func(i, j int) bool { return vpcs[i].ID < vpcs[j].ID })

	vpcGraphs := make(map[string]*dot.Graph)
	for _, vpc := range vpcs {
		sub := g.Subgraph(vpc.ID, dot.ClusterOption{})
		sub.Attr("label", vpcLabel(vpc))
		sub.Attr("style", "rounded")
		sub.Attr("color", colorBorder)
		vpcGraphs[vpc.ID] = sub
	}

	subnets := make([]entity.Subnet, len(t.Subnets))
	copy(subnets, t.Subnets)
	sort.Slice(subnets, func(i, j int) bool { return subnets[i].ID < subnets[j].ID })

	subnetGraphs := make(map[string]*dot.Graph)
	anchors := make(map[string]dot.Node)
	for _, s := range subnets {
		parent, ok := vpcGraphs[s.VPCID]
		if !ok {
			continue
		}
		sub := parent.Subgraph(s.ID, dot.ClusterOption{})
		sub.Attr("label", subnetLabel(s))
		sub.Attr("style", "dashed")
		subnetGraphs[s.ID] = sub
		// Âncora invisível para as arestas que apontam para o cluster da subnet.
		anchors[s.ID] = sub.Node(s.ID+"_anchor").Attr("shape", "point").Attr("style", "invis")
	}

	for _, inst := range t.Instances {
		sub, ok := subnetGraphs[inst.SubnetID]
		if !ok {
			continue
		}
		sub.Node(inst.ID).
			Label(instanceLabel(inst)).
			Attr("shape", "box").
			Attr("style", "filled").
			Attr("fillcolor", colorEC2)
	}

	for _, fn := range t.Functions {
		for _, subnetID := range fn.SubnetIDs {
			sub, ok := subnetGraphs[subnetID]
			if !ok {
				continue
			}
			sub.Node(fmt.Sprintf("lambda_%s_%s", fn.Name, subnetID)).
				Label(fmt.Sprintf("λ %s\n%s", fn.Name, fn.Runtime)).
				Attr("shape", "component").
				Attr("style", "filled").
				Attr("fillcolor", colorLambda)
		}
	}

	for _, db := range t.DBInstances {
		parent, ok := vpcGraphs[db.VPCID]
		if !ok {
			continue
		}
		node := parent.Node("rds_"+db.ID).
			Label(fmt.Sprintf("RDS %s\n%s", db.ID, db.Engine)).
			Attr("shape", "cylinder").
			Attr("style", "filled").
			Attr("fillcolor", colorRDS).
			Attr("fontcolor", "white")
		linkToSubnets(g, node, db.SubnetIDs, subnetGraphs, anchors)
	}

	lbNodes := make(map[string]dot.Node)
	for _, lb := range t.LoadBalancers {
		parent, ok := vpcGraphs[lb.VPCID]
		if !ok {
			continue
		}
		node := parent.Node("elb_"+lb.Name).
			Label(fmt.Sprintf("%s\n%s (%s)", lb.Name, lb.Type, lb.Scheme)).
			Attr("shape", "hexagon").
			Attr("style", "filled").
			Attr("fillcolor", colorELB).
			Attr("fontcolor", "white")
		lbNodes[lb.ARN] = node
		linkToSubnets(g, node, lb.SubnetIDs, subnetGraphs, anchors)
	}

	for _, acl := range t.WebACLs {
		var protected []dot.Node
		for _, arn := range acl.ResourceARNs {
			if n, ok := lbNodes[arn]; ok {
				protected = append(protected, n)
			}
		}
		if len(protected) == 0 {
			continue
		}
		waf := g.Node("waf_"+acl.Name).
			Label("WAF "+acl.Name).
			Attr("shape", "octagon").
			Attr("style", "filled").
			Attr("fillcolor", colorWAF).
			Attr("fontcolor", "white")
		for _, n := range protected {
			g.Edge(waf, n).Attr("color", colorWAF)
		}
	}

	return g
}

func linkToSubnets(g *dot.Graph, from dot.Node, subnetIDs []string, subnetGraphs map[string]*dot.Graph, anchors map[string]dot.Node) {
	for _, id := range subnetIDs {
		anchor, ok := anchors[id]
		if !ok {
			continue
		}
		g.Edge(from, anchor).
			Attr("lhead", subnetGraphs[id].GetID()).
			Attr("style", "dotted")
	}
}

func vpcLabel(v entity.VPC) string {
	label := "VPC " + v.ID
	if v.Name != "" {
		label = fmt.Sprintf("VPC %s (%s)", v.Name, v.ID)
	}
	if v.IsDefault {
		label += " [default]"
	}
	return label + "\n" + v.CIDRBlock
}

func subnetLabel(s entity.Subnet) string {
	name := s.ID
	if s.Name != "" {
		name = fmt.Sprintf("%s (%s)", s.Name, s.ID)
	}
	return fmt.Sprintf("Subnet %s\n%s | %s", name, s.CIDRBlock, s.AvailabilityZone)
}

func instanceLabel(i entity.Instance) string {
	name := i.ID
	if i.Name != "" {
		name = fmt.Sprintf("%s\n%s", i.Name, i.ID)
	}
	return fmt.Sprintf("EC2 %s\n%s | %s", name, i.Type, i.State)
}

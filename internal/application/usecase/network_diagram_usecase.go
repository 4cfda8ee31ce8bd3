package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
)

// Diagram enrichments selectable through DIAGRAM_INCLUDE.
const (
	IncludeELB    = "elb"
	IncludeWAF    = "waf"
	IncludeLambda = "lambda"
	IncludeRDS    = "rds"
)

// SupportedDiagramFormat reports whether dot can be asked for format.
func SupportedDiagramFormat(format string) bool {
	switch strings.ToLower(format) {
	case "png", "svg":
		return true
	}
	return false
}

// DiagramContentType devolve o MIME do formato de saída.
func DiagramContentType(format string) string {
	if strings.EqualFold(format, "svg") {
		return "image/svg+xml"
	}
	return "image/png"
}

// DiagramKey ajusta a extensão da chave ao formato quando ela é .png ou .svg.
func DiagramKey(key, format string) string {
	ext := path.Ext(key)
	if ext != ".png" && ext != ".svg" {
		return key
	}
	return strings.TrimSuffix(key, ext) + "." + strings.ToLower(format)
}

// NetworkDiagramUseCase desenha a topologia de rede da região.
type NetworkDiagramUseCase struct {
	networkRepo repository.NetworkRepository
	renderer    repository.DiagramRenderer
	publisher   *Publisher
	console     types.ConsoleInterface
}

// NewNetworkDiagramUseCase creates a new network diagram use case.
func NewNetworkDiagramUseCase(
	networkRepo repository.NetworkRepository,
	renderer repository.DiagramRenderer,
	publisher *Publisher,
	console types.ConsoleInterface,
) *NetworkDiagramUseCase {
	return &NetworkDiagramUseCase{
		networkRepo: networkRepo,
		renderer:    renderer,
		publisher:   publisher,
		console:     console,
	}
}

// GatherTopology lê VPCs, subnets e instâncias (falhas fatais) e os
// enriquecimentos habilitados (falhas apenas registradas).
func (uc *NetworkDiagramUseCase) GatherTopology(ctx context.Context, cfg types.NetworkDiagramConfig) (entity.NetworkTopology, error) {
	topology := entity.NetworkTopology{Region: cfg.Region}

	status := uc.console.Status("Describing VPCs")
	defer status.Stop()

	var err error
	if topology.VPCs, err = uc.networkRepo.GetVPCs(ctx); err != nil {
		return entity.NetworkTopology{}, err
	}
	status.Update("Describing subnets")
	if topology.Subnets, err = uc.networkRepo.GetSubnets(ctx); err != nil {
		return entity.NetworkTopology{}, err
	}
	status.Update("Describing instances")
	if topology.Instances, err = uc.networkRepo.GetInstances(ctx); err != nil {
		return entity.NetworkTopology{}, err
	}

	if cfg.Includes(IncludeELB) {
		status.Update("Describing load balancers")
		if topology.LoadBalancers, err = uc.networkRepo.GetLoadBalancers(ctx); err != nil {
			uc.console.LogWarning("Skipping load balancers: %s", err)
		}
	}
	if cfg.Includes(IncludeWAF) {
		status.Update("Listing web ACLs")
		if topology.WebACLs, err = uc.networkRepo.GetWebACLs(ctx); err != nil {
			uc.console.LogWarning("Skipping web ACLs: %s", err)
		}
	}
	if cfg.Includes(IncludeLambda) {
		status.Update("Listing Lambda functions")
		if topology.Functions, err = uc.networkRepo.GetFunctions(ctx); err != nil {
			uc.console.LogWarning("Skipping Lambda functions: %s", err)
		}
	}
	if cfg.Includes(IncludeRDS) {
		status.Update("Describing DB instances")
		if topology.DBInstances, err = uc.networkRepo.GetDBInstances(ctx); err != nil {
			uc.console.LogWarning("Skipping DB instances: %s", err)
		}
	}

	return topology, nil
}

// Run desenha o diagrama e o publica no bucket.
func (uc *NetworkDiagramUseCase) Run(ctx context.Context, cfg types.NetworkDiagramConfig) (types.HandlerResponse, error) {
	if cfg.Bucket == "" {
		return missingBucket(uc.console, "S3_BUCKET"), nil
	}
	if !SupportedDiagramFormat(cfg.Format) {
		return types.HandlerResponse{}, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, cfg.Format)
	}

	topology, err := uc.GatherTopology(ctx, cfg)
	if err != nil {
		return types.HandlerResponse{}, fmt.Errorf("error describing network: %w", err)
	}
	uc.console.LogInfo("Found %d VPCs, %d subnets and %d instances in %s",
		len(topology.VPCs), len(topology.Subnets), len(topology.Instances), cfg.Region)

	image, err := uc.renderer.Render(ctx, topology, cfg.Format)
	if err != nil {
		return types.HandlerResponse{}, fmt.Errorf("error rendering diagram: %w", err)
	}

	key := DiagramKey(cfg.Key, cfg.Format)
	if _, err := uc.publisher.Publish(ctx, cfg.Bucket, key, image, DiagramContentType(cfg.Format), "AWS Network Diagram "+cfg.Region); err != nil {
		return types.HandlerResponse{}, err
	}
	return types.HandlerResponse{Status: "diagram generated and uploaded", S3Key: key}, nil
}

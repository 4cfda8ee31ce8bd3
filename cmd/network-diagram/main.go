package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/config"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driving/handler"
)

func main() {
	cfg := config.LoadNetworkDiagramConfig()
	rt := handler.NewRuntime(cfg.Region)
	lambda.Start(handler.NetworkDiagram(rt, cfg))
}

package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/config"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driving/handler"
)

func main() {
	rt := handler.NewRuntime("")
	lambda.Start(handler.BackupStatus(rt, config.LoadBackupStatusConfig()))
}

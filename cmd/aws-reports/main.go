package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/config"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/export"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driving/cli"
	"github.com/diillson/aws-report-lambdas/pkg/console"
	"github.com/diillson/aws-report-lambdas/pkg/version"
)

func main() {
	app := cli.NewCLIApp(
		version.Version,
		config.NewConfigRepository(),
		export.NewExportRepository(),
		console.NewConsole(),
	)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

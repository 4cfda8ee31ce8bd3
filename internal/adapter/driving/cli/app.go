package cli

import (
	"context"
	"path/filepath"

	awsadapter "github.com/diillson/aws-report-lambdas/internal/adapter/driven/aws"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/config"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/diagram"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/storage"
	"github.com/diillson/aws-report-lambdas/internal/application/usecase"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/diillson/aws-report-lambdas/pkg/console"
	"github.com/diillson/aws-report-lambdas/pkg/version"
	"github.com/spf13/cobra"
)

// localBucket é usado quando os artefatos vão para um diretório local.
const localBucket = "local"

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	exportRepo repository.ExportRepository
	console    *console.Console
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(
	versionStr string,
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	c *console.Console,
) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		exportRepo: exportRepo,
		console:    c,
		version:    versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "aws-reports",
		Short:         "Run the AWS report handlers from a workstation",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			displayWelcomeBanner(app.version)
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Reports version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS shared config profile")
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region")
	rootCmd.PersistentFlags().StringP("bucket", "b", "", "S3 bucket for the generated artifacts")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Write artifacts to this directory instead of S3")

	rootCmd.AddCommand(
		&cobra.Command{Use: "cost", Short: "Cost Explorer report grouped by tag and usage type", Args: cobra.NoArgs, RunE: app.runCost},
		&cobra.Command{Use: "compliance", Short: "AWS Config compliance report", Args: cobra.NoArgs, RunE: app.runCompliance},
		&cobra.Command{Use: "backup", Short: "AWS Backup vault inventory report", Args: cobra.NoArgs, RunE: app.runBackup},
		&cobra.Command{Use: "backup-status", Short: "AWS Backup job status report", Args: cobra.NoArgs, RunE: app.runBackupStatus},
		&cobra.Command{Use: "network-diagram", Short: "VPC network diagram rendered with Graphviz", Args: cobra.NoArgs, RunE: app.runNetworkDiagram},
		&cobra.Command{Use: "config-snapshot <file-or-key>", Short: "Format an AWS Config snapshot and build its summary", Args: cobra.ExactArgs(1), RunE: app.runConfigSnapshot},
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs lê as flags persistentes.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	profile, _ := cmd.Flags().GetString("profile")
	region, _ := cmd.Flags().GetString("region")
	bucket, _ := cmd.Flags().GetString("bucket")
	dir, _ := cmd.Flags().GetString("dir")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Profile:    profile,
		Region:     region,
		Bucket:     bucket,
		Dir:        dir,
	}, nil
}

// session reúne o que cada subcomando precisa: overrides, provider e destino.
type session struct {
	args      *types.CLIArgs
	overrides config.Overrides
	provider  *awsadapter.ClientProvider
	store     repository.ObjectStore
}

func (app *CLIApp) newSession(cmd *cobra.Command) (*session, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, err
	}

	overrides := config.Overrides{Bucket: args.Bucket, Region: args.Region}
	if args.ConfigFile != "" {
		file, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		overrides.File = file
		app.console.LogInfo("Loaded configuration from %s", args.ConfigFile)
		if args.Profile == "" {
			args.Profile = file.Profile
		}
		if args.Dir == "" && file.Dir != "" {
			if args.Dir, err = filepath.Abs(file.Dir); err != nil {
				return nil, err
			}
		}
	}

	provider := awsadapter.NewClientProvider(args.Profile, overrides.RegionOr(""))

	var store repository.ObjectStore
	if args.LocalOutput() {
		if store, err = storage.NewLocalStorage(args.Dir); err != nil {
			return nil, err
		}
		overrides.Bucket = localBucket
	} else {
		store = awsadapter.NewS3Storage(provider)
	}

	return &session{args: args, overrides: overrides, provider: provider, store: store}, nil
}

func (app *CLIApp) publisher(s *session, topicARN string) *usecase.Publisher {
	var notifier repository.Notifier = awsadapter.NopNotifier{}
	if !s.args.LocalOutput() {
		notifier = awsadapter.NewNotifier(s.provider, topicARN)
	}
	return usecase.NewPublisher(s.store, notifier, app.console)
}

func (app *CLIApp) printResult(report string, resp types.HandlerResponse) {
	table := console.NewTable("Report", "Status", "Key / Body")
	detail := resp.S3Key
	if detail == "" {
		detail = resp.Body
	}
	table.AddRow(console.BrightCyan(report), resultStatus(resp), detail)
	app.console.Println(table.Render())
}

// resultStatus colore o status: verde para sucesso, amarelo para 4xx, vermelho para 5xx.
func resultStatus(resp types.HandlerResponse) string {
	switch {
	case resp.Status != "":
		return console.BrightGreen(resp.Status)
	case resp.StatusCode >= 500:
		return console.BrightRed(resp.StatusCode)
	case resp.StatusCode >= 400:
		return console.BrightYellow(resp.StatusCode)
	default:
		return console.BrightGreen(resp.StatusCode)
	}
}

func (app *CLIApp) runCost(cmd *cobra.Command, _ []string) error {
	s, err := app.newSession(cmd)
	if err != nil {
		return err
	}
	cfg := config.LoadCostReportConfig()
	s.overrides.ApplyCost(&cfg)

	uc := usecase.NewCostReportUseCase(
		awsadapter.NewIdentityRepository(s.provider),
		awsadapter.NewCostRepository(s.provider),
		app.exportRepo,
		app.publisher(s, cfg.SNSTopicARN),
		app.console,
	)
	resp, err := uc.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	app.printResult("cost", resp)
	return nil
}

func (app *CLIApp) runCompliance(cmd *cobra.Command, _ []string) error {
	s, err := app.newSession(cmd)
	if err != nil {
		return err
	}
	cfg := config.LoadComplianceReportConfig()
	s.overrides.ApplyCompliance(&cfg)

	uc := usecase.NewComplianceReportUseCase(
		awsadapter.NewIdentityRepository(s.provider),
		awsadapter.NewComplianceRepository(s.provider),
		app.exportRepo,
		app.publisher(s, cfg.SNSTopicARN),
		app.console,
	)
	resp, err := uc.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	app.printResult("compliance", resp)
	return nil
}

func (app *CLIApp) runBackup(cmd *cobra.Command, _ []string) error {
	s, err := app.newSession(cmd)
	if err != nil {
		return err
	}
	cfg := config.LoadBackupReportConfig()
	s.overrides.ApplyBackup(&cfg)

	uc := usecase.NewBackupInventoryUseCase(
		awsadapter.NewIdentityRepository(s.provider),
		awsadapter.NewBackupRepository(s.provider),
		app.exportRepo,
		app.publisher(s, cfg.SNSTopicARN),
		app.console,
	)
	resp, err := uc.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	app.printResult("backup", resp)
	return nil
}

func (app *CLIApp) runBackupStatus(cmd *cobra.Command, _ []string) error {
	s, err := app.newSession(cmd)
	if err != nil {
		return err
	}
	cfg := config.LoadBackupStatusConfig()
	s.overrides.ApplyBackupStatus(&cfg)

	uc := usecase.NewBackupStatusUseCase(
		awsadapter.NewIdentityRepository(s.provider),
		awsadapter.NewBackupRepository(s.provider),
		app.exportRepo,
		app.publisher(s, cfg.SNSTopicARN),
		app.console,
	)
	resp, err := uc.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	app.printResult("backup-status", resp)
	return nil
}

func (app *CLIApp) runNetworkDiagram(cmd *cobra.Command, _ []string) error {
	s, err := app.newSession(cmd)
	if err != nil {
		return err
	}
	cfg := config.LoadNetworkDiagramConfig()
	s.overrides.ApplyNetworkDiagram(&cfg)
	if s.args.Region == "" && (s.overrides.File == nil || s.overrides.File.Region == "") {
		// O provider segue a região do diagrama (AWS_REGION ou padrão).
		s.provider = awsadapter.NewClientProvider(s.args.Profile, cfg.Region)
		if !s.args.LocalOutput() {
			s.store = awsadapter.NewS3Storage(s.provider)
		}
	}

	uc := usecase.NewNetworkDiagramUseCase(
		awsadapter.NewNetworkRepository(s.provider),
		diagram.NewGraphvizRenderer(cfg.DotBinary, cfg.RenderTime),
		app.publisher(s, ""),
		app.console,
	)
	resp, err := uc.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	app.printResult("network-diagram", resp)
	return nil
}

// runConfigSnapshot lê do S3 quando --bucket é informado; senão trata o argumento
// como arquivo local e grava os derivados ao lado dele.
func (app *CLIApp) runConfigSnapshot(cmd *cobra.Command, args []string) error {
	s, err := app.newSession(cmd)
	if err != nil {
		return err
	}
	cfg := config.LoadSnapshotConfig()

	object := usecase.SnapshotObject{Bucket: s.args.Bucket, Key: args[0]}
	store := s.store
	if s.args.Bucket == "" {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if store, err = storage.NewLocalStorage(filepath.Dir(path)); err != nil {
			return err
		}
		object = usecase.SnapshotObject{Bucket: localBucket, Key: filepath.Base(path)}
	}

	uc := usecase.NewConfigSnapshotUseCase(store, app.exportRepo, app.console)
	resp, err := uc.Process(context.Background(), cfg, []usecase.SnapshotObject{object})
	if err != nil {
		return err
	}
	app.printResult("config-snapshot", resp)
	return nil
}

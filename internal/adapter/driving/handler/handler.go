package handler

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	awsadapter "github.com/diillson/aws-report-lambdas/internal/adapter/driven/aws"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/diagram"
	"github.com/diillson/aws-report-lambdas/internal/adapter/driven/export"
	"github.com/diillson/aws-report-lambdas/internal/application/usecase"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/diillson/aws-report-lambdas/pkg/console"
	"github.com/diillson/aws-report-lambdas/pkg/version"
	"github.com/google/uuid"
)

// Runtime agrupa as dependências reaproveitadas entre invocações (clientes AWS em cache).
type Runtime struct {
	Provider *awsadapter.ClientProvider
	Store    repository.ObjectStore
	Export   repository.ExportRepository
	Console  *console.Structured
}

// NewRuntime usa a cadeia padrão de credenciais da Lambda; region vazia usa AWS_REGION.
func NewRuntime(region string) *Runtime {
	provider := awsadapter.NewClientProvider("", region)
	return &Runtime{
		Provider: provider,
		Store:    awsadapter.NewS3Storage(provider),
		Export:   export.NewExportRepository(),
		Console:  console.NewStructuredFromEnv().With("version", version.Current().Version),
	}
}

// InvocationConsole marca os logs com o request id da Lambda ou um uuid local.
func (rt *Runtime) InvocationConsole(ctx context.Context, handlerName string) *console.Structured {
	requestID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return rt.Console.With("handler", handlerName, "request_id", requestID)
}

func (rt *Runtime) publisher(topicARN string, c types.ConsoleInterface) *usecase.Publisher {
	return usecase.NewPublisher(rt.Store, awsadapter.NewNotifier(rt.Provider, topicARN), c)
}

// finish registra a duração e o resultado da invocação.
func finish(c types.ConsoleInterface, started time.Time, resp types.HandlerResponse, err error) (types.HandlerResponse, error) {
	if err != nil {
		c.LogError("Invocation failed after %s: %s", time.Since(started).Round(time.Millisecond), err)
		return resp, err
	}
	c.LogInfo("Invocation finished in %s", time.Since(started).Round(time.Millisecond))
	return resp, nil
}

// CostReport devolve o handler agendado do relatório de custos.
func CostReport(rt *Runtime, cfg types.CostReportConfig) func(context.Context, json.RawMessage) (types.HandlerResponse, error) {
	return func(ctx context.Context, _ json.RawMessage) (types.HandlerResponse, error) {
		started := time.Now()
		c := rt.InvocationConsole(ctx, "cost-reporter")
		uc := usecase.NewCostReportUseCase(
			awsadapter.NewIdentityRepository(rt.Provider),
			awsadapter.NewCostRepository(rt.Provider),
			rt.Export,
			rt.publisher(cfg.SNSTopicARN, c),
			c,
		)
		resp, err := uc.Run(ctx, cfg)
		return finish(c, started, resp, err)
	}
}

// ComplianceReport devolve o handler do relatório de conformidade.
func ComplianceReport(rt *Runtime, cfg types.ComplianceReportConfig) func(context.Context, json.RawMessage) (types.HandlerResponse, error) {
	return func(ctx context.Context, _ json.RawMessage) (types.HandlerResponse, error) {
		started := time.Now()
		c := rt.InvocationConsole(ctx, "compliance-reporter")
		uc := usecase.NewComplianceReportUseCase(
			awsadapter.NewIdentityRepository(rt.Provider),
			awsadapter.NewComplianceRepository(rt.Provider),
			rt.Export,
			rt.publisher(cfg.SNSTopicARN, c),
			c,
		)
		resp, err := uc.Run(ctx, cfg)
		return finish(c, started, resp, err)
	}
}

// ConfigSnapshot devolve o handler da notificação S3 de snapshots do Config.
func ConfigSnapshot(rt *Runtime, cfg types.SnapshotConfig) func(context.Context, events.S3Event) (types.HandlerResponse, error) {
	return func(ctx context.Context, event events.S3Event) (types.HandlerResponse, error) {
		started := time.Now()
		c := rt.InvocationConsole(ctx, "config-processor")
		uc := usecase.NewConfigSnapshotUseCase(rt.Store, rt.Export, c)
		resp, err := uc.Process(ctx, cfg, SnapshotObjects(event))
		return finish(c, started, resp, err)
	}
}

// SnapshotObjects extrai bucket e chave (decodificada) de cada registro.
func SnapshotObjects(event events.S3Event) []usecase.SnapshotObject {
	objects := make([]usecase.SnapshotObject, 0, len(event.Records))
	for _, record := range event.Records {
		key := record.S3.Object.Key
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		objects = append(objects, usecase.SnapshotObject{Bucket: record.S3.Bucket.Name, Key: key})
	}
	return objects
}

// BackupInventory devolve o handler do inventário de vaults.
func BackupInventory(rt *Runtime, cfg types.BackupReportConfig) func(context.Context, json.RawMessage) (types.HandlerResponse, error) {
	return func(ctx context.Context, _ json.RawMessage) (types.HandlerResponse, error) {
		started := time.Now()
		c := rt.InvocationConsole(ctx, "backup-reporter")
		uc := usecase.NewBackupInventoryUseCase(
			awsadapter.NewIdentityRepository(rt.Provider),
			awsadapter.NewBackupRepository(rt.Provider),
			rt.Export,
			rt.publisher(cfg.SNSTopicARN, c),
			c,
		)
		resp, err := uc.Run(ctx, cfg)
		return finish(c, started, resp, err)
	}
}

// BackupStatus devolve o handler do relatório de status de backup.
func BackupStatus(rt *Runtime, cfg types.BackupStatusConfig) func(context.Context, json.RawMessage) (types.HandlerResponse, error) {
	return func(ctx context.Context, _ json.RawMessage) (types.HandlerResponse, error) {
		started := time.Now()
		c := rt.InvocationConsole(ctx, "backup-status-reporter")
		uc := usecase.NewBackupStatusUseCase(
			awsadapter.NewIdentityRepository(rt.Provider),
			awsadapter.NewBackupRepository(rt.Provider),
			rt.Export,
			rt.publisher(cfg.SNSTopicARN, c),
			c,
		)
		resp, err := uc.Run(ctx, cfg)
		return finish(c, started, resp, err)
	}
}

// NetworkDiagram devolve o handler do gerador de diagrama.
func NetworkDiagram(rt *Runtime, cfg types.NetworkDiagramConfig) func(context.Context, json.RawMessage) (types.HandlerResponse, error) {
	return func(ctx context.Context, _ json.RawMessage) (types.HandlerResponse, error) {
		started := time.Now()
		c := rt.InvocationConsole(ctx, "network-diagram")
		uc := usecase.NewNetworkDiagramUseCase(
			awsadapter.NewNetworkRepository(rt.Provider),
			diagram.NewGraphvizRenderer(cfg.DotBinary, cfg.RenderTime),
			rt.publisher("", c),
			c,
		)
		resp, err := uc.Run(ctx, cfg)
		return finish(c, started, resp, err)
	}
}

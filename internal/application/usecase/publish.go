package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
)

// ContentTypePDF is the content type of every PDF report.
const ContentTypePDF = "application/pdf"

// Publisher grava um artefato no ObjectStore e anuncia o resultado.
type Publisher struct {
	store    repository.ObjectStore
	notifier repository.Notifier
	console  types.ConsoleInterface
}

// NewPublisher creates a publisher; notifier may be nil.
func NewPublisher(store repository.ObjectStore, notifier repository.Notifier, console types.ConsoleInterface) *Publisher {
	return &Publisher{store: store, notifier: notifier, console: console}
}

// Publish envia body para bucket/key. Falha na notificação só gera aviso.
func (p *Publisher) Publish(ctx context.Context, bucket, key string, body []byte, contentType, subject string) (string, error) {
	location, err := p.store.PutObject(ctx, bucket, key, body, contentType)
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", key, err)
	}
	p.console.LogSuccess("Report uploaded to %s", location)

	if p.notifier != nil {
		if err := p.notifier.Notify(ctx, subject, fmt.Sprintf("%s is available at %s", subject, location)); err != nil {
			p.console.LogWarning("Failed to send notification: %s", err)
		}
	}
	return location, nil
}

// missingBucket registra a variável ausente e devolve a resposta 500.
func missingBucket(console types.ConsoleInterface, envVar string) types.HandlerResponse {
	console.LogError("%s: %s environment variable not set", types.ErrMissingBucket, envVar)
	return types.HandlerResponse{StatusCode: 500, Body: envVar + " not configured."}
}

// CustomerSlug normaliza o identificador do cliente para uso em chaves S3.
func CustomerSlug(customer string) string {
	slug := strings.ToLower(customer)
	slug = strings.NewReplacer(" ", "-", "_", "-", ".", "", "/", "", "\\", "").Replace(slug)
	return slug
}

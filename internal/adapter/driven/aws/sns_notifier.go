package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

// SNS limita o assunto a 100 caracteres.
const maxSubjectLen = 100

type notifierClients interface {
	SNS(ctx context.Context) (SNSAPI, error)
}

// SNSNotifierImpl publica um aviso em um tópico SNS.
type SNSNotifierImpl struct {
	clients  notifierClients
	topicARN string
}

// NewNotifier devolve um notifier SNS, ou um no-op quando o tópico não está configurado.
func NewNotifier(p *ClientProvider, topicARN string) repository.Notifier {
	if topicARN == "" {
		return NopNotifier{}
	}
	return &SNSNotifierImpl{clients: p, topicARN: topicARN}
}

func (n *SNSNotifierImpl) Notify(ctx context.Context, subject, message string) error {
	client, err := n.clients.SNS(ctx)
	if err != nil {
		return err
	}

	if r := []rune(subject); len(r) > maxSubjectLen {
		subject = string(r[:maxSubjectLen])
	}
	_, err = client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("error publishing to %s: %s: %w", n.topicARN, describeError(err), err)
	}
	return nil
}

// NopNotifier descarta as notificações.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string) error { return nil }

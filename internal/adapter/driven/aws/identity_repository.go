package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

type identityClients interface {
	STS(ctx context.Context) (STSAPI, error)
}

// IdentityRepositoryImpl implementa o IdentityRepository via STS.
type IdentityRepositoryImpl struct {
	clients identityClients
}

// NewIdentityRepository cria uma nova implementação do IdentityRepository.
func NewIdentityRepository(p *ClientProvider) repository.IdentityRepository {
	return &IdentityRepositoryImpl{clients: p}
}

func (r *IdentityRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	client, err := r.clients.STS(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %s: %w", describeError(err), err)
	}
	return aws.ToString(result.Account), nil
}

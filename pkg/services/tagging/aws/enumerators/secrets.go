package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type secretsEnumerator struct {
	client secretsmanager.ListSecretsAPIClient
}

func NewSecrets(cfg awssdk.Config) *secretsEnumerator {
	return &secretsEnumerator{client: secretsmanager.NewFromConfig(cfg)}
}

func (e *secretsEnumerator) Service() string {
	return "secretsmanager"
}

func (e *secretsEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := secretsmanager.NewListSecretsPaginator(e.client, &secretsmanager.ListSecretsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list secrets: %w", err)
		}
		for _, secret := range page.SecretList {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindSecret,
				ARN:  awssdk.ToString(secret.ARN),
				Name: awssdk.ToString(secret.Name),
			})
		}
	}

	return enum, nil
}

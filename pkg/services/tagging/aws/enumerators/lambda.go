package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type lambdaEnumerator struct {
	client lambda.ListFunctionsAPIClient
}

func NewLambda(cfg awssdk.Config) *lambdaEnumerator {
	return &lambdaEnumerator{client: lambda.NewFromConfig(cfg)}
}

func (e *lambdaEnumerator) Service() string {
	return "lambda"
}

func (e *lambdaEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := lambda.NewListFunctionsPaginator(e.client, &lambda.ListFunctionsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list functions: %w", err)
		}
		for _, fn := range page.Functions {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindLambdaFunction,
				ARN:  awssdk.ToString(fn.FunctionArn),
				Name: awssdk.ToString(fn.FunctionName),
			})
		}
	}

	return enum, nil
}

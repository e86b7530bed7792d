package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type sfnEnumerator struct {
	client sfn.ListStateMachinesAPIClient
}

func NewStepFunctions(cfg awssdk.Config) *sfnEnumerator {
	return &sfnEnumerator{client: sfn.NewFromConfig(cfg)}
}

func (e *sfnEnumerator) Service() string {
	return "stepfunctions"
}

func (e *sfnEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := sfn.NewListStateMachinesPaginator(e.client, &sfn.ListStateMachinesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list state machines: %w", err)
		}
		for _, sm := range page.StateMachines {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindStateMachine,
				ARN:  awssdk.ToString(sm.StateMachineArn),
				Name: awssdk.ToString(sm.Name),
			})
		}
	}

	return enum, nil
}

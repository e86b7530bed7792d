package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type sqsAPI interface {
	sqs.ListQueuesAPIClient
	GetQueueAttributes(
		ctx context.Context,
		params *sqs.GetQueueAttributesInput,
		optFns ...func(*sqs.Options),
	) (*sqs.GetQueueAttributesOutput, error)
}

// sqsEnumerator lists queue URLs and resolves each queue's ARN through its
// attributes; a queue whose lookup fails is isolated.
type sqsEnumerator struct {
	client sqsAPI
}

func NewSQS(cfg awssdk.Config) *sqsEnumerator {
	return &sqsEnumerator{client: sqs.NewFromConfig(cfg)}
}

func (e *sqsEnumerator) Service() string {
	return "sqs"
}

func (e *sqsEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := sqs.NewListQueuesPaginator(e.client, &sqs.ListQueuesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list queues: %w", err)
		}

		for _, queueURL := range page.QueueUrls {
			name := arnSuffix(queueURL)

			attrs, err := e.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
				QueueUrl:       awssdk.String(queueURL),
				AttributeNames: []sqstypes.QueueAttributeName{sqstypes.QueueAttributeNameQueueArn},
			})
			if err != nil {
				enum.Failures = append(enum.Failures, fmt.Sprintf("queue %s: %v", name, err))
				continue
			}

			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindSQSQueue,
				ARN:  attrs.Attributes[string(sqstypes.QueueAttributeNameQueueArn)],
				Name: name,
			})
		}
	}

	return enum, nil
}

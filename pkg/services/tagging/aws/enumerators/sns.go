package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type snsEnumerator struct {
	client sns.ListTopicsAPIClient
}

func NewSNS(cfg awssdk.Config) *snsEnumerator {
	return &snsEnumerator{client: sns.NewFromConfig(cfg)}
}

func (e *snsEnumerator) Service() string {
	return "sns"
}

func (e *snsEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := sns.NewListTopicsPaginator(e.client, &sns.ListTopicsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list topics: %w", err)
		}
		for _, topic := range page.Topics {
			arn := awssdk.ToString(topic.TopicArn)
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindSNSTopic,
				ARN:  arn,
				Name: arnSuffix(arn),
			})
		}
	}

	return enum, nil
}

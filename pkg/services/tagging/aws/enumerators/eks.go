package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type eksAPI interface {
	eks.ListClustersAPIClient
	DescribeCluster(
		ctx context.Context,
		params *eks.DescribeClusterInput,
		optFns ...func(*eks.Options),
	) (*eks.DescribeClusterOutput, error)
}

type eksEnumerator struct {
	client eksAPI
}

func NewEKS(cfg awssdk.Config) *eksEnumerator {
	return &eksEnumerator{client: eks.NewFromConfig(cfg)}
}

func (e *eksEnumerator) Service() string {
	return "eks"
}

func (e *eksEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := eks.NewListClustersPaginator(e.client, &eks.ListClustersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list clusters: %w", err)
		}

		for _, name := range page.Clusters {
			cluster, err := e.client.DescribeCluster(ctx, &eks.DescribeClusterInput{
				Name: awssdk.String(name),
			})
			if err != nil {
				enum.Failures = append(enum.Failures, fmt.Sprintf("cluster %s: %v", name, err))
				continue
			}
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindEKSCluster,
				ARN:  awssdk.ToString(cluster.Cluster.Arn),
				Name: name,
			})
		}
	}

	return enum, nil
}

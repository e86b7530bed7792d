package enumerators

import (
	"context"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type ecsAPI interface {
	ecs.ListClustersAPIClient
	ecs.ListServicesAPIClient
}

// ecsEnumerator walks clusters and then the services inside each cluster.
// A cluster whose service listing fails still yields its own ref; the
// failure is isolated to that parent.
type ecsEnumerator struct {
	client ecsAPI
}

func NewECS(cfg awssdk.Config) *ecsEnumerator {
	return &ecsEnumerator{client: ecs.NewFromConfig(cfg)}
}

func (e *ecsEnumerator) Service() string {
	return "ecs"
}

func (e *ecsEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := ecs.NewListClustersPaginator(e.client, &ecs.ListClustersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list clusters: %w", err)
		}

		for _, clusterARN := range page.ClusterArns {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindECSCluster,
				ARN:  clusterARN,
				Name: arnSuffix(clusterARN),
			})

			if err := e.services(ctx, clusterARN, &enum); err != nil {
				enum.Failures = append(enum.Failures,
					fmt.Sprintf("cluster %s services: %v", arnSuffix(clusterARN), err))
			}
		}
	}

	return enum, nil
}

func (e *ecsEnumerator) services(ctx context.Context, clusterARN string, enum *tagging.Enumeration) error {
	p := ecs.NewListServicesPaginator(e.client, &ecs.ListServicesInput{
		Cluster: awssdk.String(clusterARN),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, serviceARN := range page.ServiceArns {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindECSService,
				ARN:  serviceARN,
				Name: arnSuffix(serviceARN),
			})
		}
	}
	return nil
}

// arnSuffix returns the resource name portion of an ARN, the part after
// the last slash or colon.
func arnSuffix(arn string) string {
	if i := strings.LastIndexAny(arn, "/:"); i >= 0 {
		return arn[i+1:]
	}
	return arn
}

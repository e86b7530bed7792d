package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type elasticacheAPI interface {
	elasticache.DescribeCacheClustersAPIClient
	elasticache.DescribeReplicationGroupsAPIClient
}

// elasticacheEnumerator covers cache clusters and replication groups.
// Entries without an ARN cannot be tagged through the generic API and are
// skipped without counting.
type elasticacheEnumerator struct {
	client elasticacheAPI
}

func NewElastiCache(cfg awssdk.Config) *elasticacheEnumerator {
	return &elasticacheEnumerator{client: elasticache.NewFromConfig(cfg)}
}

func (e *elasticacheEnumerator) Service() string {
	return "elasticache"
}

func (e *elasticacheEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	if err := e.cacheClusters(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe cache clusters: %v", err))
	}
	if err := e.replicationGroups(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe replication groups: %v", err))
	}

	return enum, nil
}

func (e *elasticacheEnumerator) cacheClusters(ctx context.Context, enum *tagging.Enumeration) error {
	p := elasticache.NewDescribeCacheClustersPaginator(e.client, &elasticache.DescribeCacheClustersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, cluster := range page.CacheClusters {
			if cluster.ARN == nil {
				continue
			}
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindElastiCacheCluster,
				ARN:  awssdk.ToString(cluster.ARN),
				Name: awssdk.ToString(cluster.CacheClusterId),
			})
		}
	}
	return nil
}

func (e *elasticacheEnumerator) replicationGroups(ctx context.Context, enum *tagging.Enumeration) error {
	p := elasticache.NewDescribeReplicationGroupsPaginator(e.client, &elasticache.DescribeReplicationGroupsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, group := range page.ReplicationGroups {
			if group.ARN == nil {
				continue
			}
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindElastiCacheGroup,
				ARN:  awssdk.ToString(group.ARN),
				Name: awssdk.ToString(group.ReplicationGroupId),
			})
		}
	}
	return nil
}

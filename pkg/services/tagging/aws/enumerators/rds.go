package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type rdsAPI interface {
	rds.DescribeDBInstancesAPIClient
	rds.DescribeDBClustersAPIClient
}

// rdsEnumerator covers DB instances and DB clusters; the two scans are
// isolated from each other.
type rdsEnumerator struct {
	client rdsAPI
}

func NewRDS(cfg awssdk.Config) *rdsEnumerator {
	return &rdsEnumerator{client: rds.NewFromConfig(cfg)}
}

func (e *rdsEnumerator) Service() string {
	return "rds"
}

func (e *rdsEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	if err := e.instances(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe db instances: %v", err))
	}
	if err := e.clusters(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe db clusters: %v", err))
	}

	return enum, nil
}

func (e *rdsEnumerator) instances(ctx context.Context, enum *tagging.Enumeration) error {
	p := rds.NewDescribeDBInstancesPaginator(e.client, &rds.DescribeDBInstancesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, db := range page.DBInstances {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindRDSInstance,
				ARN:  awssdk.ToString(db.DBInstanceArn),
				Name: awssdk.ToString(db.DBInstanceIdentifier),
			})
		}
	}
	return nil
}

func (e *rdsEnumerator) clusters(ctx context.Context, enum *tagging.Enumeration) error {
	p := rds.NewDescribeDBClustersPaginator(e.client, &rds.DescribeDBClustersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, cluster := range page.DBClusters {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindRDSCluster,
				ARN:  awssdk.ToString(cluster.DBClusterArn),
				Name: awssdk.ToString(cluster.DBClusterIdentifier),
			})
		}
	}
	return nil
}

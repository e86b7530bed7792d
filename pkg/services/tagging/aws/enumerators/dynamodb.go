package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type dynamoAPI interface {
	dynamodb.ListTablesAPIClient
	DescribeTable(
		ctx context.Context,
		params *dynamodb.DescribeTableInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.DescribeTableOutput, error)
}

// dynamoEnumerator lists tables and describes each one for its ARN; a
// table that fails to describe is isolated.
type dynamoEnumerator struct {
	client dynamoAPI
}

func NewDynamoDB(cfg awssdk.Config) *dynamoEnumerator {
	return &dynamoEnumerator{client: dynamodb.NewFromConfig(cfg)}
}

func (e *dynamoEnumerator) Service() string {
	return "dynamodb"
}

func (e *dynamoEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	p := dynamodb.NewListTablesPaginator(e.client, &dynamodb.ListTablesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to list tables: %w", err)
		}

		for _, name := range page.TableNames {
			table, err := e.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
				TableName: awssdk.String(name),
			})
			if err != nil {
				enum.Failures = append(enum.Failures, fmt.Sprintf("table %s: %v", name, err))
				continue
			}
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindDynamoDBTable,
				ARN:  awssdk.ToString(table.Table.TableArn),
				Name: name,
			})
		}
	}

	return enum, nil
}

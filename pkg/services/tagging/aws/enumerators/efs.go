package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/efs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type efsAPI interface {
	efs.DescribeFileSystemsAPIClient
}

type callerIdentityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// efsEnumerator lists file systems. DescribeFileSystems does not return an
// ARN, so one is built from the region and the caller's account ID; the
// account lookup happens once per enumerator and is cached.
type efsEnumerator struct {
	client    efsAPI
	sts       callerIdentityAPI
	region    string
	accountID string
}

func NewEFS(cfg awssdk.Config, region string) *efsEnumerator {
	return &efsEnumerator{
		client: efs.NewFromConfig(cfg),
		sts:    sts.NewFromConfig(cfg),
		region: region,
	}
}

func (e *efsEnumerator) Service() string {
	return "efs"
}

func (e *efsEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	if e.accountID == "" {
		identity, err := e.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to resolve account: %w", err)
		}
		e.accountID = awssdk.ToString(identity.Account)
	}

	var enum tagging.Enumeration

	p := efs.NewDescribeFileSystemsPaginator(e.client, &efs.DescribeFileSystemsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return tagging.Enumeration{}, fmt.Errorf("failed to describe file systems: %w", err)
		}
		for _, fs := range page.FileSystems {
			id := awssdk.ToString(fs.FileSystemId)
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindEFSFileSystem,
				ARN:  e.fileSystemARN(id),
				Name: id,
			})
		}
	}

	return enum, nil
}

func (e *efsEnumerator) fileSystemARN(id string) string {
	return arn.ARN{
		Partition: "aws",
		Service:   "elasticfilesystem",
		Region:    e.region,
		AccountID: e.accountID,
		Resource:  "file-system/" + id,
	}.String()
}

package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

// locationDefaultRegion is what an empty LocationConstraint means.
const locationDefaultRegion = "us-east-1"

type s3API interface {
	ListBuckets(
		ctx context.Context,
		params *s3.ListBucketsInput,
		optFns ...func(*s3.Options),
	) (*s3.ListBucketsOutput, error)
	GetBucketLocation(
		ctx context.Context,
		params *s3.GetBucketLocationInput,
		optFns ...func(*s3.Options),
	) (*s3.GetBucketLocationOutput, error)
}

// s3Enumerator lists buckets and keeps only the ones homed in the region
// being processed. The bucket namespace is global, so without this filter
// a multi-region run would handle the same bucket once per region.
type s3Enumerator struct {
	client s3API
	region string
}

func NewS3(cfg awssdk.Config, region string) *s3Enumerator {
	return &s3Enumerator{client: s3.NewFromConfig(cfg), region: region}
}

func (e *s3Enumerator) Service() string {
	return "s3"
}

func (e *s3Enumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	resp, err := e.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return tagging.Enumeration{}, fmt.Errorf("failed to list buckets: %w", err)
	}

	var enum tagging.Enumeration
	for _, bucket := range resp.Buckets {
		name := awssdk.ToString(bucket.Name)

		loc, err := e.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
			Bucket: bucket.Name,
		})
		if err != nil {
			enum.Failures = append(enum.Failures, fmt.Sprintf("bucket %s location: %v", name, err))
			continue
		}

		bucketRegion := string(loc.LocationConstraint)
		if bucketRegion == "" {
			bucketRegion = locationDefaultRegion
		}
		if bucketRegion != e.region {
			continue
		}

		enum.Refs = append(enum.Refs, domain.ResourceRef{
			Kind: domain.KindS3Bucket,
			ID:   name,
			Name: name,
		})
	}

	return enum, nil
}

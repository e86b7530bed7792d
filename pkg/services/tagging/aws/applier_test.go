package aws

import (
	"context"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	rgtatypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaggingAPI struct {
	calls []resourcegroupstaggingapi.TagResourcesInput
	out   *resourcegroupstaggingapi.TagResourcesOutput
	err   error
}

func (f *fakeTaggingAPI) TagResources(
	_ context.Context,
	in *resourcegroupstaggingapi.TagResourcesInput,
	_ ...func(*resourcegroupstaggingapi.Options),
) (*resourcegroupstaggingapi.TagResourcesOutput, error) {
	f.calls = append(f.calls, *in)
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return &resourcegroupstaggingapi.TagResourcesOutput{}, nil
}

type fakeEC2API struct {
	calls []ec2.CreateTagsInput
	err   error
}

func (f *fakeEC2API) CreateTags(
	_ context.Context,
	in *ec2.CreateTagsInput,
	_ ...func(*ec2.Options),
) (*ec2.CreateTagsOutput, error) {
	f.calls = append(f.calls, *in)
	return &ec2.CreateTagsOutput{}, f.err
}

type fakeELBAPI struct {
	calls []elb.AddTagsInput
	err   error
}

func (f *fakeELBAPI) AddTags(
	_ context.Context,
	in *elb.AddTagsInput,
	_ ...func(*elb.Options),
) (*elb.AddTagsOutput, error) {
	f.calls = append(f.calls, *in)
	return &elb.AddTagsOutput{}, f.err
}

// fakeBucketAPI behaves like the real bucket tagging API: reads return the
// stored set or NoSuchTagSet, writes replace the full set.
type fakeBucketAPI struct {
	tagSet []s3types.Tag
	puts   int
}

func (f *fakeBucketAPI) GetBucketTagging(
	_ context.Context,
	_ *s3.GetBucketTaggingInput,
	_ ...func(*s3.Options),
) (*s3.GetBucketTaggingOutput, error) {
	if f.tagSet == nil {
		return nil, &smithy.GenericAPIError{Code: "NoSuchTagSet", Message: "no tags"}
	}
	return &s3.GetBucketTaggingOutput{TagSet: f.tagSet}, nil
}

func (f *fakeBucketAPI) PutBucketTagging(
	_ context.Context,
	in *s3.PutBucketTaggingInput,
	_ ...func(*s3.Options),
) (*s3.PutBucketTaggingOutput, error) {
	f.puts++
	f.tagSet = in.Tagging.TagSet
	return &s3.PutBucketTaggingOutput{}, nil
}

func newTestApplier(dryRun bool) (*applier, *fakeTaggingAPI, *fakeEC2API, *fakeELBAPI, *fakeBucketAPI) {
	tags := &fakeTaggingAPI{}
	ec2API := &fakeEC2API{}
	elbAPI := &fakeELBAPI{}
	bucketAPI := &fakeBucketAPI{}
	a := &applier{
		tag:    domain.Tag{Key: "aws-apn-id", Value: "pc:test"},
		dryRun: dryRun,
		tags:   tags,
		ec2:    ec2API,
		elb:    elbAPI,
		bucket: bucketAPI,
	}
	return a, tags, ec2API, elbAPI, bucketAPI
}

func TestApplier_DryRunNeverMutates(t *testing.T) {
	a, tags, ec2API, elbAPI, bucketAPI := newTestApplier(true)

	refs := []domain.ResourceRef{
		{Kind: domain.KindEC2Instance, ID: "i-1", Name: "i-1"},
		{Kind: domain.KindS3Bucket, ID: "logs", Name: "logs"},
		{Kind: domain.KindClassicLB, ID: "legacy-lb", Name: "legacy-lb"},
		{Kind: domain.KindLambdaFunction, ARN: "arn:aws:lambda:us-east-1:123456789012:function:fn", Name: "fn"},
	}

	for _, ref := range refs {
		outcome := a.Apply(context.Background(), ref)
		assert.Equal(t, domain.OutcomeSkipped, outcome.Status)
	}

	assert.Empty(t, tags.calls)
	assert.Empty(t, ec2API.calls)
	assert.Empty(t, elbAPI.calls)
	assert.Zero(t, bucketAPI.puts)
}

func TestApplier_RoutesByKind(t *testing.T) {
	a, tags, ec2API, elbAPI, bucketAPI := newTestApplier(false)

	outcome := a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindEBSVolume, ID: "vol-1", Name: "vol-1",
	})
	assert.Equal(t, domain.OutcomeTagged, outcome.Status)
	require.Len(t, ec2API.calls, 1)
	assert.Equal(t, []string{"vol-1"}, ec2API.calls[0].Resources)

	outcome = a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindClassicLB, ID: "legacy-lb", Name: "legacy-lb",
	})
	assert.Equal(t, domain.OutcomeTagged, outcome.Status)
	require.Len(t, elbAPI.calls, 1)
	assert.Equal(t, []string{"legacy-lb"}, elbAPI.calls[0].LoadBalancerNames)

	arn := "arn:aws:sns:us-east-1:123456789012:alerts"
	outcome = a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindSNSTopic, ARN: arn, Name: "alerts",
	})
	assert.Equal(t, domain.OutcomeTagged, outcome.Status)
	require.Len(t, tags.calls, 1)
	assert.Equal(t, []string{arn}, tags.calls[0].ResourceARNList)
	assert.Equal(t, map[string]string{"aws-apn-id": "pc:test"}, tags.calls[0].Tags)

	assert.Zero(t, bucketAPI.puts)
}

func TestApplier_MissingARNFails(t *testing.T) {
	a, tags, _, _, _ := newTestApplier(false)

	outcome := a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindSNSTopic, Name: "alerts",
	})

	assert.Equal(t, domain.OutcomeFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "no ARN")
	assert.Empty(t, tags.calls)
}

func TestApplier_TaggingAPIRejectionFails(t *testing.T) {
	arn := "arn:aws:lambda:us-east-1:123456789012:function:fn"
	a, tags, _, _, _ := newTestApplier(false)
	tags.out = &resourcegroupstaggingapi.TagResourcesOutput{
		FailedResourcesMap: map[string]rgtatypes.FailureInfo{
			arn: {ErrorMessage: awssdk.String("resource not found")},
		},
	}

	outcome := a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindLambdaFunction, ARN: arn, Name: "fn",
	})

	assert.Equal(t, domain.OutcomeFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "resource not found")
}

func TestApplier_ClientErrorBecomesFailedOutcome(t *testing.T) {
	a, tags, _, _, _ := newTestApplier(false)
	tags.err = &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not allowed"}

	outcome := a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindSecret, ARN: "arn:aws:secretsmanager:us-east-1:123456789012:secret:db", Name: "db",
	})

	assert.Equal(t, domain.OutcomeFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "not allowed")
}

func TestApplier_BucketTaggingMergesExistingTags(t *testing.T) {
	a, _, _, _, bucketAPI := newTestApplier(false)
	bucketAPI.tagSet = []s3types.Tag{
		{Key: awssdk.String("team"), Value: awssdk.String("data")},
		{Key: awssdk.String("env"), Value: awssdk.String("prod")},
	}

	outcome := a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindS3Bucket, ID: "logs", Name: "logs",
	})

	assert.Equal(t, domain.OutcomeTagged, outcome.Status)
	require.Len(t, bucketAPI.tagSet, 3)
	assert.Equal(t, "team", awssdk.ToString(bucketAPI.tagSet[0].Key))
	assert.Equal(t, "env", awssdk.ToString(bucketAPI.tagSet[1].Key))
	assert.Equal(t, "aws-apn-id", awssdk.ToString(bucketAPI.tagSet[2].Key))
}

func TestApplier_BucketTaggingUpdatesExistingKey(t *testing.T) {
	a, _, _, _, bucketAPI := newTestApplier(false)
	bucketAPI.tagSet = []s3types.Tag{
		{Key: awssdk.String("aws-apn-id"), Value: awssdk.String("pc:stale")},
		{Key: awssdk.String("env"), Value: awssdk.String("prod")},
	}

	outcome := a.Apply(context.Background(), domain.ResourceRef{
		Kind: domain.KindS3Bucket, ID: "logs", Name: "logs",
	})

	assert.Equal(t, domain.OutcomeTagged, outcome.Status)
	require.Len(t, bucketAPI.tagSet, 2)
	assert.Equal(t, "pc:test", awssdk.ToString(bucketAPI.tagSet[0].Value))
}

func TestApplier_BucketTaggingIsIdempotent(t *testing.T) {
	a, _, _, _, bucketAPI := newTestApplier(false)

	ref := domain.ResourceRef{Kind: domain.KindS3Bucket, ID: "logs", Name: "logs"}

	first := a.Apply(context.Background(), ref)
	second := a.Apply(context.Background(), ref)

	assert.Equal(t, domain.OutcomeTagged, first.Status)
	assert.Equal(t, domain.OutcomeTagged, second.Status)
	require.Len(t, bucketAPI.tagSet, 1)
	assert.Equal(t, "aws-apn-id", awssdk.ToString(bucketAPI.tagSet[0].Key))
	assert.Equal(t, "pc:test", awssdk.ToString(bucketAPI.tagSet[0].Value))
	assert.Equal(t, 2, bucketAPI.puts)
}

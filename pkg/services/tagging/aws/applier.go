package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/rs/zerolog"
)

// noTagSetCode is returned by GetBucketTagging for buckets without tags.
const noTagSetCode = "NoSuchTagSet"

type taggingAPI interface {
	TagResources(
		ctx context.Context,
		params *resourcegroupstaggingapi.TagResourcesInput,
		optFns ...func(*resourcegroupstaggingapi.Options),
	) (*resourcegroupstaggingapi.TagResourcesOutput, error)
}

type ec2TagAPI interface {
	CreateTags(
		ctx context.Context,
		params *ec2.CreateTagsInput,
		optFns ...func(*ec2.Options),
	) (*ec2.CreateTagsOutput, error)
}

type elbTagAPI interface {
	AddTags(
		ctx context.Context,
		params *elb.AddTagsInput,
		optFns ...func(*elb.Options),
	) (*elb.AddTagsOutput, error)
}

type bucketTagAPI interface {
	GetBucketTagging(
		ctx context.Context,
		params *s3.GetBucketTaggingInput,
		optFns ...func(*s3.Options),
	) (*s3.GetBucketTaggingOutput, error)
	PutBucketTagging(
		ctx context.Context,
		params *s3.PutBucketTaggingInput,
		optFns ...func(*s3.Options),
	) (*s3.PutBucketTaggingOutput, error)
}

// applier attaches one tag to a resource, routing each kind to the tag
// call it supports. The generic tagging API covers every kind that exposes
// an ARN; EC2 resources, classic load balancers and S3 buckets each need a
// kind-specific path.
type applier struct {
	tag    domain.Tag
	dryRun bool

	tags   taggingAPI
	ec2    ec2TagAPI
	elb    elbTagAPI
	bucket bucketTagAPI
}

func NewApplier(cfg awssdk.Config, tag domain.Tag, dryRun bool) *applier {
	return &applier{
		tag:    tag,
		dryRun: dryRun,
		tags:   resourcegroupstaggingapi.NewFromConfig(cfg),
		ec2:    ec2.NewFromConfig(cfg),
		elb:    elb.NewFromConfig(cfg),
		bucket: s3.NewFromConfig(cfg),
	}
}

func (a *applier) Apply(ctx context.Context, ref domain.ResourceRef) domain.Outcome {
	logger := zerolog.Ctx(ctx)

	if a.dryRun {
		logger.Info().Stringer("resource", ref).Msg("dry run, would tag")
		return domain.Outcome{Ref: ref, Status: domain.OutcomeSkipped}
	}

	var err error
	switch ref.Kind {
	case domain.KindEC2Instance, domain.KindEBSVolume, domain.KindEBSSnapshot, domain.KindTransitGateway:
		err = a.tagEC2Resource(ctx, ref)
	case domain.KindClassicLB:
		err = a.tagClassicLB(ctx, ref)
	case domain.KindS3Bucket:
		err = a.tagBucket(ctx, ref)
	default:
		err = a.tagByARN(ctx, ref)
	}

	if err != nil {
		evt := logger.Error().Err(err).Stringer("resource", ref)
		if code, ok := clientErrorCode(err); ok {
			evt = evt.Str("error_code", code)
		}
		evt.Msg("failed to tag resource")
		return domain.Outcome{Ref: ref, Status: domain.OutcomeFailed, Reason: err.Error()}
	}

	logger.Info().Stringer("resource", ref).Msg("tagged")
	return domain.Outcome{Ref: ref, Status: domain.OutcomeTagged}
}

func (a *applier) tagByARN(ctx context.Context, ref domain.ResourceRef) error {
	if ref.ARN == "" {
		return fmt.Errorf("resource %s has no ARN", ref)
	}

	out, err := a.tags.TagResources(ctx, &resourcegroupstaggingapi.TagResourcesInput{
		ResourceARNList: []string{ref.ARN},
		Tags:            map[string]string{a.tag.Key: a.tag.Value},
	})
	if err != nil {
		return err
	}
	if failed, ok := out.FailedResourcesMap[ref.ARN]; ok {
		return fmt.Errorf("tagging API rejected %s: %s", ref.ARN, awssdk.ToString(failed.ErrorMessage))
	}
	return nil
}

func (a *applier) tagEC2Resource(ctx context.Context, ref domain.ResourceRef) error {
	_, err := a.ec2.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{ref.ID},
		Tags: []ec2types.Tag{
			{Key: awssdk.String(a.tag.Key), Value: awssdk.String(a.tag.Value)},
		},
	})
	return err
}

func (a *applier) tagClassicLB(ctx context.Context, ref domain.ResourceRef) error {
	_, err := a.elb.AddTags(ctx, &elb.AddTagsInput{
		LoadBalancerNames: []string{ref.ID},
		Tags: []elbtypes.Tag{
			{Key: awssdk.String(a.tag.Key), Value: awssdk.String(a.tag.Value)},
		},
	})
	return err
}

// tagBucket merges the tag into the bucket's existing tag set before
// writing. PutBucketTagging replaces the full set, so a plain write would
// drop every unrelated tag on the bucket.
func (a *applier) tagBucket(ctx context.Context, ref domain.ResourceRef) error {
	var tagSet []s3types.Tag

	existing, err := a.bucket.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: awssdk.String(ref.ID),
	})
	switch {
	case err == nil:
		tagSet = existing.TagSet
	default:
		code, ok := clientErrorCode(err)
		if !ok || code != noTagSetCode {
			return fmt.Errorf("failed to read bucket tags: %w", err)
		}
	}

	updated := false
	for i := range tagSet {
		if awssdk.ToString(tagSet[i].Key) == a.tag.Key {
			tagSet[i].Value = awssdk.String(a.tag.Value)
			updated = true
			break
		}
	}
	if !updated {
		tagSet = append(tagSet, s3types.Tag{
			Key:   awssdk.String(a.tag.Key),
			Value: awssdk.String(a.tag.Value),
		})
	}

	_, err = a.bucket.PutBucketTagging(ctx, &s3.PutBucketTaggingInput{
		Bucket:  awssdk.String(ref.ID),
		Tagging: &s3types.Tagging{TagSet: tagSet},
	})
	return err
}

package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

type ec2API interface {
	ec2.DescribeInstancesAPIClient
	ec2.DescribeVolumesAPIClient
	ec2.DescribeSnapshotsAPIClient
	ec2.DescribeTransitGatewaysAPIClient
}

// ec2Enumerator covers the EC2 resource families that are tagged by native
// ID: instances, EBS volumes, self-owned snapshots and transit gateways.
// Each family scan is isolated, so one failing describe call does not hide
// the other families.
type ec2Enumerator struct {
	client ec2API
}

func NewEC2(cfg awssdk.Config) *ec2Enumerator {
	return &ec2Enumerator{client: ec2.NewFromConfig(cfg)}
}

func (e *ec2Enumerator) Service() string {
	return "ec2"
}

func (e *ec2Enumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	if err := e.instances(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe instances: %v", err))
	}
	if err := e.volumes(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe volumes: %v", err))
	}
	if err := e.snapshots(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe snapshots: %v", err))
	}
	if err := e.transitGateways(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe transit gateways: %v", err))
	}

	return enum, nil
}

func (e *ec2Enumerator) instances(ctx context.Context, enum *tagging.Enumeration) error {
	p := ec2.NewDescribeInstancesPaginator(e.client, &ec2.DescribeInstancesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				id := awssdk.ToString(instance.InstanceId)
				enum.Refs = append(enum.Refs, domain.ResourceRef{
					Kind: domain.KindEC2Instance,
					ID:   id,
					Name: id,
				})
			}
		}
	}
	return nil
}

func (e *ec2Enumerator) volumes(ctx context.Context, enum *tagging.Enumeration) error {
	p := ec2.NewDescribeVolumesPaginator(e.client, &ec2.DescribeVolumesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, volume := range page.Volumes {
			id := awssdk.ToString(volume.VolumeId)
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindEBSVolume,
				ID:   id,
				Name: id,
			})
		}
	}
	return nil
}

func (e *ec2Enumerator) snapshots(ctx context.Context, enum *tagging.Enumeration) error {
	p := ec2.NewDescribeSnapshotsPaginator(e.client, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, snapshot := range page.Snapshots {
			id := awssdk.ToString(snapshot.SnapshotId)
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindEBSSnapshot,
				ID:   id,
				Name: id,
			})
		}
	}
	return nil
}

func (e *ec2Enumerator) transitGateways(ctx context.Context, enum *tagging.Enumeration) error {
	p := ec2.NewDescribeTransitGatewaysPaginator(e.client, &ec2.DescribeTransitGatewaysInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, tgw := range page.TransitGateways {
			id := awssdk.ToString(tgw.TransitGatewayId)
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindTransitGateway,
				ID:   id,
				Name: id,
			})
		}
	}
	return nil
}

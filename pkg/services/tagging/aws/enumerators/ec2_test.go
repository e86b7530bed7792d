package enumerators

import (
	"context"
	"fmt"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEC2Client struct {
	instances    []ec2types.Instance
	volumes      []ec2types.Volume
	snapshots    []ec2types.Snapshot
	gateways     []ec2types.TransitGateway
	volumesErr   error
	snapshotsErr error
}

func (f *fakeEC2Client) DescribeInstances(
	_ context.Context,
	_ *ec2.DescribeInstancesInput,
	_ ...func(*ec2.Options),
) (*ec2.DescribeInstancesOutput, error) {
	return &ec2.DescribeInstancesOutput{
		Reservations: []ec2types.Reservation{{Instances: f.instances}},
	}, nil
}

func (f *fakeEC2Client) DescribeVolumes(
	_ context.Context,
	_ *ec2.DescribeVolumesInput,
	_ ...func(*ec2.Options),
) (*ec2.DescribeVolumesOutput, error) {
	if f.volumesErr != nil {
		return nil, f.volumesErr
	}
	return &ec2.DescribeVolumesOutput{Volumes: f.volumes}, nil
}

func (f *fakeEC2Client) DescribeSnapshots(
	_ context.Context,
	in *ec2.DescribeSnapshotsInput,
	_ ...func(*ec2.Options),
) (*ec2.DescribeSnapshotsOutput, error) {
	if f.snapshotsErr != nil {
		return nil, f.snapshotsErr
	}
	if len(in.OwnerIds) != 1 || in.OwnerIds[0] != "self" {
		return nil, fmt.Errorf("expected a self-owned snapshot scan, got %v", in.OwnerIds)
	}
	return &ec2.DescribeSnapshotsOutput{Snapshots: f.snapshots}, nil
}

func (f *fakeEC2Client) DescribeTransitGateways(
	_ context.Context,
	_ *ec2.DescribeTransitGatewaysInput,
	_ ...func(*ec2.Options),
) (*ec2.DescribeTransitGatewaysOutput, error) {
	return &ec2.DescribeTransitGatewaysOutput{TransitGateways: f.gateways}, nil
}

func TestEC2Enumerator_CoversAllFamilies(t *testing.T) {
	e := &ec2Enumerator{client: &fakeEC2Client{
		instances: []ec2types.Instance{{InstanceId: awssdk.String("i-1")}},
		volumes:   []ec2types.Volume{{VolumeId: awssdk.String("vol-1")}},
		snapshots: []ec2types.Snapshot{{SnapshotId: awssdk.String("snap-1")}},
		gateways:  []ec2types.TransitGateway{{TransitGatewayId: awssdk.String("tgw-1")}},
	}}

	enum, err := e.Enumerate(context.Background())
	require.NoError(t, err)

	require.Len(t, enum.Refs, 4)
	assert.Empty(t, enum.Failures)

	kinds := make([]domain.ResourceKind, 0, len(enum.Refs))
	for _, ref := range enum.Refs {
		kinds = append(kinds, ref.Kind)
	}
	assert.Equal(t, []domain.ResourceKind{
		domain.KindEC2Instance,
		domain.KindEBSVolume,
		domain.KindEBSSnapshot,
		domain.KindTransitGateway,
	}, kinds)
}

func TestEC2Enumerator_FamilyFailuresAreIsolated(t *testing.T) {
	e := &ec2Enumerator{client: &fakeEC2Client{
		instances:    []ec2types.Instance{{InstanceId: awssdk.String("i-1")}},
		gateways:     []ec2types.TransitGateway{{TransitGatewayId: awssdk.String("tgw-1")}},
		volumesErr:   fmt.Errorf("throttled"),
		snapshotsErr: fmt.Errorf("access denied"),
	}}

	enum, err := e.Enumerate(context.Background())
	require.NoError(t, err)

	assert.Len(t, enum.Refs, 2)
	require.Len(t, enum.Failures, 2)
	assert.Contains(t, enum.Failures[0], "describe volumes")
	assert.Contains(t, enum.Failures[1], "describe snapshots")
}

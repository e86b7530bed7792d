package domain

import "fmt"

// ResourceKind identifies a category of taggable AWS resource.
type ResourceKind string

const (
	KindEC2Instance        ResourceKind = "ec2-instance"
	KindEBSVolume          ResourceKind = "ebs-volume"
	KindEBSSnapshot        ResourceKind = "ebs-snapshot"
	KindTransitGateway     ResourceKind = "transit-gateway"
	KindS3Bucket           ResourceKind = "s3-bucket"
	KindLambdaFunction     ResourceKind = "lambda-function"
	KindRDSInstance        ResourceKind = "rds-instance"
	KindRDSCluster         ResourceKind = "rds-cluster"
	KindDynamoDBTable      ResourceKind = "dynamodb-table"
	KindECSCluster         ResourceKind = "ecs-cluster"
	KindECSService         ResourceKind = "ecs-service"
	KindEKSCluster         ResourceKind = "eks-cluster"
	KindElastiCacheCluster ResourceKind = "elasticache-cluster"
	KindElastiCacheGroup   ResourceKind = "elasticache-replication-group"
	KindLoadBalancer       ResourceKind = "load-balancer"
	KindClassicLB          ResourceKind = "classic-load-balancer"
	KindSNSTopic           ResourceKind = "sns-topic"
	KindSQSQueue           ResourceKind = "sqs-queue"
	KindStateMachine       ResourceKind = "state-machine"
	KindSecret             ResourceKind = "secret"
	KindEFSFileSystem      ResourceKind = "efs-file-system"
)

// Tag is the single key/value pair applied to every discovered resource.
type Tag struct {
	Key   string
	Value string
}

func (t Tag) String() string {
	return fmt.Sprintf("%s=%s", t.Key, t.Value)
}

// ResourceRef identifies one taggable resource. ARN is set whenever the
// resource can be tagged through the generic tagging API; ID carries the
// native identifier for kinds that use a kind-specific tag call
// (EC2 resources, classic load balancers, S3 buckets).
type ResourceRef struct {
	Kind ResourceKind
	ID   string
	ARN  string
	Name string
}

func (r ResourceRef) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.Name)
}

// OutcomeStatus is the result of one tag application attempt.
type OutcomeStatus string

const (
	OutcomeTagged  OutcomeStatus = "tagged"
	OutcomeSkipped OutcomeStatus = "skipped" // dry run, would tag
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome records what happened to a single resource.
type Outcome struct {
	Ref    ResourceRef
	Status OutcomeStatus
	Reason string // set when Status is OutcomeFailed
}

// Statistics counts resources considered during a run. The invariant
// Total == Tagged + Failed + Skipped holds at every aggregation level:
// every considered unit increments Total exactly once, dry-run units land
// in Skipped, real mutations in Tagged, and every failure (per resource,
// per kind, or per region) in Failed.
type Statistics struct {
	Total   int
	Tagged  int
	Failed  int
	Skipped int
}

// Record counts a single outcome.
func (s *Statistics) Record(status OutcomeStatus) {
	s.Total++
	switch status {
	case OutcomeTagged:
		s.Tagged++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other Statistics) {
	s.Total += other.Total
	s.Tagged += other.Tagged
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}

// RegionResult holds everything produced by one region pass. Err is set
// only when the region task failed outright; Resources then stays empty
// and Stats carries a single failed unit.
type RegionResult struct {
	Region    string
	Resources map[ResourceKind][]ResourceRef
	Stats     Statistics
	Err       string
}

// RunRequest describes one tagging invocation. Zero values fall back to
// process-wide defaults resolved by the coordinator.
type RunRequest struct {
	DryRun   *bool
	TagKey   string
	TagValue string
	Regions  []string
	Services []string
}

// RunSummary is the aggregate outcome of a full invocation.
type RunSummary struct {
	DryRun  bool
	Tag     Tag
	Regions []string
	Results []RegionResult
	Stats   Statistics
}

package tagging

import (
	"context"

	"github.com/de-tools/apn-tagger/pkg/models/domain"
)

// Enumeration is the outcome of one service scan within a region.
type Enumeration struct {
	// Refs lists the discovered resources in provider order.
	Refs []domain.ResourceRef
	// Failures holds per-resource errors that were isolated during the
	// scan (a child listing that errored, a describe call that failed).
	// Each one is counted as a failed unit without aborting the scan.
	Failures []string
}

// Enumerator discovers the taggable resources of one service within a
// single region. A fresh call re-queries the provider. A non-nil error
// means the scan itself failed and the whole service counts as one failed
// unit for the region.
type Enumerator interface {
	// Service returns the filter name the enumerator is registered under,
	// e.g. "ec2" or "stepfunctions".
	Service() string
	Enumerate(ctx context.Context) (Enumeration, error)
}

// Applier attaches the run's tag to a single resource. Provider client
// errors are folded into a failed Outcome, never returned; in dry-run mode
// no mutating call is made and the outcome is always skipped.
type Applier interface {
	Apply(ctx context.Context, ref domain.ResourceRef) domain.Outcome
}

// Controller runs the enumerators of one region sequentially and merges
// their results. When services is non-empty, only the named ones run;
// unknown names are ignored.
type Controller interface {
	SupportedServices() []string
	Run(ctx context.Context, services []string) domain.RegionResult
}

// ControllerFactory builds the per-region controller. Each region owns its
// own client set and statistics, so region tasks share no mutable state.
type ControllerFactory func(ctx context.Context, region string, tag domain.Tag, dryRun bool) (Controller, error)

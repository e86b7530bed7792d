package aws

import (
	"context"
	"fmt"

	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
	"github.com/de-tools/apn-tagger/pkg/services/tagging/aws/enumerators"
	"github.com/rs/zerolog"
)

// controller runs a region's enumerators sequentially; rate limits are per
// account and region, so there is nothing to gain from per-service
// parallelism inside one region.
type controller struct {
	region      string
	applier     tagging.Applier
	order       []string
	enumerators map[string]tagging.Enumerator
}

// ControllerFactory builds the controller for one region with the full
// enumerator set. It satisfies tagging.ControllerFactory.
func ControllerFactory(
	ctx context.Context,
	region string,
	tag domain.Tag,
	dryRun bool,
) (tagging.Controller, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("region %s: %w", region, err)
	}

	return NewController(region, NewApplier(*cfg, tag, dryRun),
		enumerators.NewEC2(*cfg),
		enumerators.NewS3(*cfg, region),
		enumerators.NewLambda(*cfg),
		enumerators.NewRDS(*cfg),
		enumerators.NewDynamoDB(*cfg),
		enumerators.NewECS(*cfg),
		enumerators.NewEKS(*cfg),
		enumerators.NewElastiCache(*cfg),
		enumerators.NewLoadBalancers(*cfg),
		enumerators.NewSNS(*cfg),
		enumerators.NewSQS(*cfg),
		enumerators.NewStepFunctions(*cfg),
		enumerators.NewSecrets(*cfg),
		enumerators.NewEFS(*cfg, region),
	)
}

func NewController(
	region string,
	applier tagging.Applier,
	enums ...tagging.Enumerator,
) (tagging.Controller, error) {
	ctrl := &controller{
		region:      region,
		applier:     applier,
		enumerators: make(map[string]tagging.Enumerator),
	}

	for _, e := range enums {
		service := e.Service()
		if _, exists := ctrl.enumerators[service]; exists {
			return nil, fmt.Errorf("duplicate enumerator for service: %s", service)
		}
		ctrl.enumerators[service] = e
		ctrl.order = append(ctrl.order, service)
	}

	if len(ctrl.enumerators) == 0 {
		return nil, fmt.Errorf("at least one enumerator must be provided")
	}

	return ctrl, nil
}

func (c *controller) SupportedServices() []string {
	services := make([]string, len(c.order))
	copy(services, c.order)
	return services
}

// Run scans the selected services and tags every discovered resource.
// Unknown service names in the filter are ignored. A service whose scan
// fails counts as one failed unit and does not stop the remaining
// services.
func (c *controller) Run(ctx context.Context, services []string) domain.RegionResult {
	logger := zerolog.Ctx(ctx)

	selected := c.selectServices(services)
	result := domain.RegionResult{
		Region:    c.region,
		Resources: make(map[domain.ResourceKind][]domain.ResourceRef),
	}

	for _, service := range selected {
		logger.Info().Str("service", service).Msg("scanning service")

		enum, err := c.enumerators[service].Enumerate(ctx)
		if err != nil {
			logger.Error().Err(err).Str("service", service).Msg("service scan failed")
			result.Stats.Record(domain.OutcomeFailed)
			continue
		}

		for _, failure := range enum.Failures {
			logger.Error().Str("service", service).Str("cause", failure).Msg("resource scan failed")
			result.Stats.Record(domain.OutcomeFailed)
		}

		for _, ref := range enum.Refs {
			outcome := c.applier.Apply(ctx, ref)
			result.Stats.Record(outcome.Status)
			if outcome.Status != domain.OutcomeFailed {
				result.Resources[ref.Kind] = append(result.Resources[ref.Kind], ref)
			}
		}
	}

	return result
}

func (c *controller) selectServices(requested []string) []string {
	if len(requested) == 0 {
		return c.order
	}

	want := make(map[string]bool, len(requested))
	for _, s := range requested {
		want[s] = true
	}

	var selected []string
	for _, service := range c.order {
		if want[service] {
			selected = append(selected, service)
		}
	}
	return selected
}

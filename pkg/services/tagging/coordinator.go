package tagging

import (
	"context"
	"fmt"

	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/config"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxRegionConcurrency caps how many region tasks run at once. Provider
// throttling is per account and region, so a small bound is enough.
const maxRegionConcurrency = 5

// Coordinator fans one tagging pass out across regions with bounded
// parallelism and folds the per-region results into a single summary.
type Coordinator struct {
	factory  ControllerFactory
	defaults *config.Defaults
}

func NewCoordinator(factory ControllerFactory, defaults *config.Defaults) *Coordinator {
	return &Coordinator{
		factory:  factory,
		defaults: defaults,
	}
}

// Run executes one full tagging pass. It never returns an error: a region
// task that fails outright is reported as a degraded RegionResult and the
// remaining regions are unaffected.
func (c *Coordinator) Run(ctx context.Context, req domain.RunRequest) domain.RunSummary {
	logger := zerolog.Ctx(ctx)

	dryRun := c.defaults.DryRun
	if req.DryRun != nil {
		dryRun = *req.DryRun
	}

	tag := c.defaults.Tag()
	if req.TagKey != "" {
		tag.Key = req.TagKey
	}
	if req.TagValue != "" {
		tag.Value = req.TagValue
	}

	regions := req.Regions
	if len(regions) == 0 {
		regions = c.defaults.Regions()
	}

	logger.Info().
		Strs("regions", regions).
		Str("tag", tag.String()).
		Bool("dry_run", dryRun).
		Msg("starting tagging run")

	limit := len(regions)
	if limit > maxRegionConcurrency {
		limit = maxRegionConcurrency
	}

	// Indexed writes keep the output in request order without locking.
	results := make([]domain.RegionResult, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, region := range regions {
		g.Go(func() error {
			results[i] = c.runRegion(gctx, region, tag, dryRun, req.Services)
			return nil
		})
	}
	_ = g.Wait()

	summary := domain.RunSummary{
		DryRun:  dryRun,
		Tag:     tag,
		Regions: regions,
		Results: results,
	}
	for _, r := range results {
		summary.Stats.Merge(r.Stats)
	}

	logger.Info().
		Int("total", summary.Stats.Total).
		Int("tagged", summary.Stats.Tagged).
		Int("failed", summary.Stats.Failed).
		Int("skipped", summary.Stats.Skipped).
		Msg("tagging run completed")

	return summary
}

func (c *Coordinator) runRegion(
	ctx context.Context,
	region string,
	tag domain.Tag,
	dryRun bool,
	services []string,
) (result domain.RegionResult) {
	logger := zerolog.Ctx(ctx).With().Str("region", region).Logger()

	// A region task must never take down its siblings, whatever goes
	// wrong inside the provider calls.
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("region task panicked")
			result = degradedResult(region, r)
		}
	}()

	ctrl, err := c.factory(ctx, region, tag, dryRun)
	if err != nil {
		logger.Error().Err(err).Msg("failed to set up region")
		return degradedResult(region, err)
	}

	result = ctrl.Run(logger.WithContext(ctx), services)
	logger.Info().
		Int("total", result.Stats.Total).
		Int("failed", result.Stats.Failed).
		Msg("region completed")
	return result
}

func degradedResult(region string, cause any) domain.RegionResult {
	result := domain.RegionResult{
		Region: region,
		Err:    errText(cause),
	}
	result.Stats.Record(domain.OutcomeFailed)
	return result
}

func errText(cause any) string {
	if err, ok := cause.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(cause)
}

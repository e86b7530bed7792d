package adapters

import (
	"github.com/de-tools/apn-tagger/pkg/models/api"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
)

func MapRunRequestApiToDomain(req api.RunRequest) domain.RunRequest {
	return domain.RunRequest{
		DryRun:   req.DryRun,
		TagKey:   req.TagKey,
		TagValue: req.TagValue,
		Regions:  req.Regions,
		Services: req.Services,
	}
}

func MapStatisticsDomainToApi(s domain.Statistics) api.Statistics {
	return api.Statistics{
		Total:   s.Total,
		Tagged:  s.Tagged,
		Failed:  s.Failed,
		Skipped: s.Skipped,
	}
}

func MapRegionResultDomainToApi(r domain.RegionResult) api.RegionDetail {
	detail := api.RegionDetail{
		Region:     r.Region,
		Statistics: MapStatisticsDomainToApi(r.Stats),
		Error:      r.Err,
	}

	if len(r.Resources) > 0 {
		detail.Resources = make(map[string][]string, len(r.Resources))
		for kind, refs := range r.Resources {
			ids := make([]string, 0, len(refs))
			for _, ref := range refs {
				ids = append(ids, ref.Name)
			}
			detail.Resources[string(kind)] = ids
		}
	}

	return detail
}

func MapRunSummaryDomainToApi(s domain.RunSummary) api.RunResponse {
	details := make([]api.RegionDetail, 0, len(s.Results))
	for _, r := range s.Results {
		details = append(details, MapRegionResultDomainToApi(r))
	}

	return api.RunResponse{
		Message:          "tagging run completed",
		DryRun:           s.DryRun,
		TagKey:           s.Tag.Key,
		RegionsProcessed: len(s.Regions),
		Statistics:       MapStatisticsDomainToApi(s.Stats),
		RegionDetails:    details,
	}
}

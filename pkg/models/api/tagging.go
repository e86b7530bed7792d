package api

// RunRequest is the invocation payload. Every field is optional; absent
// fields fall back to process-wide defaults.
type RunRequest struct {
	DryRun   *bool    `json:"dry_run,omitempty"`
	TagKey   string   `json:"tag_key,omitempty"`
	TagValue string   `json:"tag_value,omitempty"`
	Regions  []string `json:"regions,omitempty"`
	Services []string `json:"services,omitempty"`
}

type Statistics struct {
	Total   int `json:"total"`
	Tagged  int `json:"tagged"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// RegionDetail reports one region pass. Resources maps a resource kind to
// the identifiers that were tagged (or would be tagged in dry-run mode).
// Error is set only when the whole region task failed.
type RegionDetail struct {
	Region     string              `json:"region"`
	Resources  map[string][]string `json:"resources,omitempty"`
	Statistics Statistics          `json:"statistics"`
	Error      string              `json:"error,omitempty"`
}

type RunResponse struct {
	Message          string         `json:"message"`
	DryRun           bool           `json:"dry_run"`
	TagKey           string         `json:"tag_key"`
	RegionsProcessed int            `json:"regions_processed"`
	Statistics       Statistics     `json:"statistics"`
	RegionDetails    []RegionDetail `json:"region_details"`
}

type ServiceList struct {
	Services []string `json:"services"`
}

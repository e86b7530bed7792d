package commands

import (
	"encoding/json"

	"github.com/de-tools/apn-tagger/pkg/adapters"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
	"github.com/spf13/cobra"
)

type RunCmd struct {
	coordinator *tagging.Coordinator
	dryRun      bool
	tagKey      string
	tagValue    string
	regions     []string
	services    []string
}

func NewRunCmd(coordinator *tagging.Coordinator) *cobra.Command {
	rc := &RunCmd{coordinator: coordinator}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tag every discoverable resource in the target regions",
		RunE:  rc.run,
	}

	cmd.Flags().BoolVar(&rc.dryRun, "dry-run", false, "Log what would be tagged without applying tags")
	cmd.Flags().StringVar(&rc.tagKey, "tag-key", "", "Override the configured tag key")
	cmd.Flags().StringVar(&rc.tagValue, "tag-value", "", "Override the configured tag value")
	cmd.Flags().StringSliceVar(&rc.regions, "regions", nil, "Regions to process (default from TARGET_REGIONS or the ambient region)")
	cmd.Flags().StringSliceVar(&rc.services, "services", nil, "Limit the run to specific services (e.g. ec2,s3,lambda)")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, _ []string) error {
	req := domain.RunRequest{
		TagKey:   rc.tagKey,
		TagValue: rc.tagValue,
		Regions:  rc.regions,
		Services: rc.services,
	}
	// Distinguish "flag not given" from an explicit --dry-run=false so the
	// process-wide default still applies when the flag is absent.
	if cmd.Flags().Changed("dry-run") {
		req.DryRun = &rc.dryRun
	}

	summary := rc.coordinator.Run(cmd.Context(), req)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(adapters.MapRunSummaryDomainToApi(summary))
}

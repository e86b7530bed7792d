package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewServicesCmd(services []string) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the services the tagger can scan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Supported services:\n%s\n",
				strings.Join(services, "\n"))
			return nil
		},
	}
}

package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/apn-tagger/pkg/runtime/terminal/commands"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	coordinator *tagging.Coordinator
	services    []string
	logger      zerolog.Logger
	rootCmd     *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Coordinator *tagging.Coordinator
	Services    []string
	Logger      zerolog.Logger
	Output      io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		coordinator: opts.Coordinator,
		services:    opts.Services,
		logger:      opts.Logger,
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	ctx := cli.logger.WithContext(context.Background())
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd(output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagger",
		Short: "Partner tag sweeper for AWS resources",
	}
	cmd.SetOut(output)

	cmd.AddCommand(commands.NewRunCmd(cli.coordinator))
	cmd.AddCommand(commands.NewServicesCmd(cli.services))

	return cmd
}

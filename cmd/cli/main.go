package main

import (
	"fmt"
	"os"

	"github.com/de-tools/apn-tagger/pkg/runtime/terminal"
	"github.com/de-tools/apn-tagger/pkg/services/config"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
	"github.com/de-tools/apn-tagger/pkg/services/tagging/aws"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	defaults, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Coordinator: tagging.NewCoordinator(aws.ControllerFactory, defaults),
		Services:    aws.SupportedServices(),
		Logger:      logger,
		Output:      os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/apn-tagger/pkg/server"
	"github.com/de-tools/apn-tagger/pkg/services/config"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
	"github.com/de-tools/apn-tagger/pkg/services/tagging/aws"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the partner tag sweeper",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	defaults, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	logger.Info().
		Str("tag", defaults.Tag().String()).
		Bool("dry_run", defaults.DryRun).
		Strs("regions", defaults.Regions()).
		Msg("defaults loaded")

	coordinator := tagging.NewCoordinator(aws.ControllerFactory, defaults)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Runner:   coordinator,
			Services: aws.SupportedServices(),
		},
	})

	return api.Start()
}

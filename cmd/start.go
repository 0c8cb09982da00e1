package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pxbridge/pxbridge/internal/api"
	"github.com/pxbridge/pxbridge/internal/config"
	"github.com/pxbridge/pxbridge/internal/service/pxweb"
	"github.com/pxbridge/pxbridge/internal/telemetry"
	"github.com/pxbridge/pxbridge/internal/upstream"
	"github.com/pxbridge/pxbridge/pkg/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	BindPortEnvVar = "PORT"

	UpstreamURLEnvVar = "PXWEB_URL"

	TelemetryEnabledEnvVar = "OTEL_ENABLED"
)

var (
	startServerCmdBindPort   string
	startServerCmdBaseURL    string
	startServerCmdConfigFile string
)

var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pxbridge MCP server",
	Long: "Starts the pxbridge HTTP server, exposing the PxWeb tools over the MCP\n" +
		"streamable HTTP transport at /mcp and a health check at /health.\n\n" +
		"The upstream PxWeb v2 base URL defaults to Statistics Norway\n" +
		"(" + config.DefaultBaseURL + ") and can be overridden with --url\n" +
		"or the " + UpstreamURLEnvVar + " environment variable.\n\n" +
		"Set " + TelemetryEnabledEnvVar + "=true to enable OpenTelemetry metrics; they are\n" +
		"exported in prometheus format at /metrics.",
	RunE: runStartServer,
}

func init() {
	startServerCmd.Flags().StringVar(
		&startServerCmdBindPort,
		"port",
		"",
		fmt.Sprintf("port to bind the HTTP server to (overrides env var %s, default %s)", BindPortEnvVar, config.DefaultPort),
	)
	startServerCmd.Flags().StringVar(
		&startServerCmdBaseURL,
		"url",
		"",
		fmt.Sprintf("upstream PxWeb v2 API base URL (overrides env var %s)", UpstreamURLEnvVar),
	)
	startServerCmd.Flags().StringVar(
		&startServerCmdConfigFile,
		"config",
		"",
		"path to an optional YAML configuration file",
	)

	rootCmd.AddCommand(startServerCmd)
}

// resolveConfig builds the effective server configuration.
// Precedence: command line flag > environment variable > config file > default.
func resolveConfig(fs afero.Fs) (*config.Config, error) {
	cfg := config.Default()

	if startServerCmdConfigFile != "" {
		fileCfg, err := config.LoadFile(fs, startServerCmdConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if port := os.Getenv(BindPortEnvVar); port != "" {
		cfg.Port = port
	}
	if u := os.Getenv(UpstreamURLEnvVar); u != "" {
		cfg.BaseURL = u
	}
	telemetryEnabled, err := isTelemetryEnabled(cfg.TelemetryEnabled)
	if err != nil {
		return nil, err
	}
	cfg.TelemetryEnabled = telemetryEnabled

	if startServerCmdBindPort != "" {
		cfg.Port = startServerCmdBindPort
	}
	if startServerCmdBaseURL != "" {
		cfg.BaseURL = startServerCmdBaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isTelemetryEnabled returns true if telemetry should be enabled.
// If the env var is specified, it takes precedence over the given default.
func isTelemetryEnabled(defaultEnabled bool) (bool, error) {
	envTelemetryEnabled := os.Getenv(TelemetryEnabledEnvVar)
	if envTelemetryEnabled == "" {
		return defaultEnabled, nil
	}

	switch strings.ToLower(envTelemetryEnabled) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf(
			"invalid value for %s environment variable: '%s', valid values are 'true' or 'false'",
			TelemetryEnabledEnvVar, envTelemetryEnabled,
		)
	}
}

func runStartServer(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := resolveConfig(afero.NewOsFs())
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	otelConfig := &telemetry.Config{
		ServiceName: "pxbridge",
		Enabled:     cfg.TelemetryEnabled,
	}
	otelProviders, err := telemetry.Init(cmd.Context(), otelConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize Opentelemetry providers: %v", err)
	}
	defer func() {
		if err := otelProviders.Shutdown(cmd.Context()); err != nil {
			cmd.Printf("Warning: failed to shutdown opentelemetry providers: %v\n", err)
		}
	}()

	// By default, a no-op metrics implementation is used so call sites
	// never need to check whether metrics are enabled.
	metrics := telemetry.NewNoopCustomMetrics()
	if otelProviders.IsEnabled() {
		metrics, err = telemetry.NewOtelCustomMetrics(otelProviders.Meter)
		if err != nil {
			return fmt.Errorf("failed to create tool call metrics: %v", err)
		}
	}

	mcpServer := server.NewMCPServer(
		"pxbridge PxWeb MCP Server",
		version.GetVersion(),
		server.WithToolCapabilities(true),
	)

	upstreamClient := upstream.NewClient(cfg.BaseURL, logger)

	serviceConfig := &pxweb.ServiceConfig{
		Client:    upstreamClient,
		McpServer: mcpServer,
		Metrics:   metrics,
		Logger:    logger,
	}
	if _, err := pxweb.NewPxWebService(serviceConfig); err != nil {
		return fmt.Errorf("failed to create PxWeb service: %v", err)
	}

	opts := &api.ServerOptions{
		Port:          cfg.Port,
		McpServer:     mcpServer,
		OtelProviders: otelProviders,
		Logger:        logger,
	}
	s, err := api.NewServer(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %v", err)
	}

	cmd.Printf("pxbridge MCP server listening on :%s (upstream: %s)\n", cfg.Port, cfg.BaseURL)
	if err := s.Start(); err != nil {
		return fmt.Errorf("failed to run the server: %v", err)
	}

	return nil
}

// Package api provides the HTTP transport for the pxbridge server.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pxbridge/pxbridge/internal/telemetry"
	"github.com/pxbridge/pxbridge/pkg/types"
	"github.com/pxbridge/pxbridge/pkg/version"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// ServerOptions holds everything needed to construct the pxbridge HTTP server.
type ServerOptions struct {
	// Port is the HTTP port to bind the server to
	Port string

	// McpServer is the MCP server instance carrying the PxWeb tools.
	// It is exposed over the streamable HTTP transport at /mcp.
	McpServer *server.MCPServer

	OtelProviders *telemetry.Providers

	Logger *zap.Logger
}

// Server is the pxbridge HTTP server. It exposes the MCP endpoint,
// a health check, and (when telemetry is enabled) prometheus metrics.
type Server struct {
	port   string
	router *gin.Engine

	mcpServer     *server.MCPServer
	otelProviders *telemetry.Providers
	logger        *zap.Logger
}

// NewServer initializes a new Gin server for the pxbridge MCP endpoint.
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts.McpServer == nil {
		return nil, fmt.Errorf("mcp server is required")
	}

	s := &Server{
		port:          opts.Port,
		mcpServer:     opts.McpServer,
		otelProviders: opts.OtelProviders,
		logger:        opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.router = s.setupRouter()

	return s, nil
}

// Start runs the Gin server (blocking call)
func (s *Server) Start() error {
	if err := s.router.Run(":" + s.port); err != nil {
		return fmt.Errorf("failed to run the server: %w", err)
	}
	return nil
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter sets up the Gin router with the MCP endpoint and the
// supporting HTTP endpoints.
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(requestIDMiddleware())
	r.Use(requestLogger(s.logger))
	r.Use(recoveryMiddleware(s.logger))

	// if otel is enabled, setup the prometheus metrics endpoint
	if s.otelProviders != nil && s.otelProviders.IsEnabled() {
		r.Use(otelgin.Middleware(s.otelProviders.ServiceName()))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.Any(
		"/health",
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		},
	)

	r.GET(
		"/metadata",
		func(c *gin.Context) {
			m := &types.ServerMetadata{
				Version: version.GetVersion(),
			}
			c.JSON(http.StatusOK, m)
		},
	)

	// The MCP endpoint. The streamable HTTP transport manages a session id
	// per logical connection and multiplexes tool calls onto the MCP server.
	streamableHTTPServer := server.NewStreamableHTTPServer(s.mcpServer)
	r.Any("/mcp", gin.WrapH(streamableHTTPServer))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}

// Package pxweb exposes the PxWeb v2 statistical API as a set of MCP tools.
package pxweb

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pxbridge/pxbridge/internal/telemetry"
	"github.com/pxbridge/pxbridge/internal/upstream"
	"go.uber.org/zap"
)

// ServiceConfig holds the configuration parameters for initializing the PxWebService.
type ServiceConfig struct {
	// Client is the upstream HTTP client used for all PxWeb API calls.
	Client *upstream.Client

	// McpServer is the MCP server instance the tools are registered on.
	McpServer *server.MCPServer

	Metrics telemetry.CustomMetrics

	Logger *zap.Logger
}

// PxWebService builds upstream requests for each MCP tool call and maps
// the results back into tool responses. Handlers share no mutable state,
// so concurrent invocations never interfere with each other.
type PxWebService struct {
	client  *upstream.Client
	metrics telemetry.CustomMetrics
	logger  *zap.Logger
}

// NewPxWebService creates a new instance of PxWebService and registers
// all PxWeb tools on the MCP server.
func NewPxWebService(c *ServiceConfig) (*PxWebService, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("upstream client is required")
	}
	if c.McpServer == nil {
		return nil, fmt.Errorf("mcp server is required")
	}

	s := &PxWebService{
		client:  c.Client,
		metrics: c.Metrics,
		logger:  c.Logger,
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewNoopCustomMetrics()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.registerTools(c.McpServer)

	return s, nil
}

// registerTools registers all PxWeb tools on the MCP server, wiring each
// to a handler that calls the upstream API.
func (s *PxWebService) registerTools(m *server.MCPServer) {
	m.AddTool(searchTablesTool(), s.instrumented("search_tables", s.handleSearchTables()))
	m.AddTool(getTableInfoTool(), s.instrumented("get_table_info", s.handleGetTableInfo()))
	m.AddTool(fetchMetadataTool(), s.instrumented("fetch_metadata", s.handleFetchMetadata()))
	m.AddTool(queryTableTool(), s.instrumented("query_table", s.handleQueryTable()))
	m.AddTool(getCodeListTool(), s.instrumented("get_code_list", s.handleGetCodeList()))
	m.AddTool(listRecentTablesTool(), s.instrumented("list_recent_tables", s.handleListRecentTables()))
}

// instrumented wraps a tool handler so that every invocation is recorded
// with its outcome and duration. A result carrying IsError counts as an
// error outcome even though the handler returned it as data.
func (s *PxWebService) instrumented(tool string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		started := time.Now()

		result, err := h(ctx, request)

		outcome := telemetry.ToolCallOutcomeSuccess
		if err != nil || (result != nil && result.IsError) {
			outcome = telemetry.ToolCallOutcomeError
		}
		s.metrics.RecordToolCall(ctx, tool, outcome, time.Since(started))

		return result, err
	}
}

package pxweb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pxbridge/pxbridge/pkg/types"
)

// Handlers never return a Go error for upstream or validation faults.
// Every failure is converted into an error-shaped tool result so the
// transport layer always receives a well-formed response.

func (s *PxWebService) handleSearchTables() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := requireTrimmedString(request, "query")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error searching tables: %v", err)), nil
		}

		q, err := languageQuery(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error searching tables: %v", err)), nil
		}
		q.Set("query", query)
		if request.GetBool("include_discontinued", false) {
			q.Set("includeDiscontinued", "true")
		}

		body, err := s.client.Get(ctx, "/tables", q)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error searching tables: %v", err)), nil
		}

		var list types.TableListResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error searching tables: failed to parse upstream response: %v", err)), nil
		}
		if len(list.Tables) == 0 {
			return mcp.NewToolResultText("No tables found for your query."), nil
		}

		return mcp.NewToolResultText(formatTableList(list.Tables, false)), nil
	}
}

func (s *PxWebService) handleGetTableInfo() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tableID, err := requireTrimmedString(request, "table_id")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting table info: %v", err)), nil
		}

		q, err := languageQuery(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting table info: %v", err)), nil
		}

		body, err := s.client.Get(ctx, "/tables/"+url.PathEscape(tableID), q)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting table info: %v", err)), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func (s *PxWebService) handleFetchMetadata() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tableID, err := requireTrimmedString(request, "table_id")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching table metadata: %v", err)), nil
		}

		q, err := languageQuery(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching table metadata: %v", err)), nil
		}

		body, err := s.client.Get(ctx, "/tables/"+url.PathEscape(tableID)+"/metadata", q)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching table metadata: %v", err)), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func (s *PxWebService) handleQueryTable() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tableID, err := requireTrimmedString(request, "table_id")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error querying table data: %v", err)), nil
		}

		format, err := types.ValidateOutputFormat(strings.TrimSpace(request.GetString("output_format", "")))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error querying table data: %v", err)), nil
		}

		valueCodes, err := getStringMap(request, "value_codes")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error querying table data: %v", err)), nil
		}
		codeList, err := getStringMap(request, "code_list")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error querying table data: %v", err)), nil
		}
		outputValues, err := getStringMap(request, "output_values")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error querying table data: %v", err)), nil
		}

		q, err := languageQuery(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error querying table data: %v", err)), nil
		}
		q.Set("outputFormat", string(format))
		appendMapParams(q, "valueCodes", valueCodes)
		appendMapParams(q, "codelist", codeList)
		appendMapParams(q, "outputValues", outputValues)

		body, err := s.client.Get(ctx, "/tables/"+url.PathEscape(tableID)+"/data", q)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error querying table data: %v", err)), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func (s *PxWebService) handleGetCodeList() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		codeListID, err := requireTrimmedString(request, "code_list_id")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting code list: %v", err)), nil
		}

		q, err := languageQuery(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting code list: %v", err)), nil
		}

		body, err := s.client.Get(ctx, "/codeLists/"+url.PathEscape(codeListID), q)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting code list: %v", err)), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func (s *PxWebService) handleListRecentTables() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days, err := request.RequireInt("days")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing recent tables: %v", err)), nil
		}
		// Range-checked before any network call.
		if days < 1 || days > 365 {
			return mcp.NewToolResultError(
				fmt.Sprintf("Error listing recent tables: days must be between 1 and 365, got %d", days),
			), nil
		}

		q, err := languageQuery(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing recent tables: %v", err)), nil
		}
		q.Set("pastdays", strconv.Itoa(days))

		body, err := s.client.Get(ctx, "/tables", q)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing recent tables: %v", err)), nil
		}

		var list types.TableListResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing recent tables: failed to parse upstream response: %v", err)), nil
		}
		if len(list.Tables) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No tables updated in the past %d days.", days)), nil
		}

		return mcp.NewToolResultText(formatTableList(list.Tables, true)), nil
	}
}

package pxweb

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pxbridge/pxbridge/pkg/types"
)

// stringMapSchema is the JSON schema fragment for open-ended
// string-to-string parameter objects (value_codes, code_list, output_values).
var stringMapSchema = map[string]any{"type": "string"}

func searchTablesTool() mcp.Tool {
	return mcp.NewTool("search_tables",
		mcp.WithDescription(
			"Search for statistical tables in the PxWeb API by free-text query. "+
				"Returns one line per match in the form '<table id>: <label>'.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text, e.g. 'befolkning' or 'population*'. Supports the upstream's wildcard syntax."),
		),
		mcp.WithBoolean("include_discontinued",
			mcp.Description("Include discontinued tables in the results (default: false)"),
		),
		mcp.WithString("language",
			mcp.Description("Response language: 'en' or 'no' (default: 'no')"),
			mcp.Enum(string(types.LanguageEnglish), string(types.LanguageNorwegian)),
		),
	)
}

func getTableInfoTool() mcp.Tool {
	return mcp.NewTool("get_table_info",
		mcp.WithDescription(
			"Get basic information about a statistical table: label, time span, variables and update timestamps. "+
				"Returns the upstream JSON verbatim.",
		),
		mcp.WithString("table_id",
			mcp.Required(),
			mcp.Description("Table identifier, e.g. '07459'"),
		),
		mcp.WithString("language",
			mcp.Description("Response language: 'en' or 'no' (default: 'no')"),
			mcp.Enum(string(types.LanguageEnglish), string(types.LanguageNorwegian)),
		),
	)
}

func fetchMetadataTool() mcp.Tool {
	return mcp.NewTool("fetch_metadata",
		mcp.WithDescription(
			"Fetch the full metadata for a statistical table, including every variable and its value codes. "+
				"Use this before query_table to discover which value codes a table accepts.",
		),
		mcp.WithString("table_id",
			mcp.Required(),
			mcp.Description("Table identifier, e.g. '07459'"),
		),
		mcp.WithString("language",
			mcp.Description("Response language: 'en' or 'no' (default: 'no')"),
			mcp.Enum(string(types.LanguageEnglish), string(types.LanguageNorwegian)),
		),
	)
}

func queryTableTool() mcp.Tool {
	return mcp.NewTool("query_table",
		mcp.WithDescription(
			"Query a statistical table for data. Selection is expressed per variable via value_codes, "+
				"e.g. {\"Region\": \"0301\", \"Tid\": \"top(5)\"}. Value selection supports the upstream's "+
				"expression grammar (top(n), from(x), wildcards, comma-separated code lists).",
		),
		mcp.WithString("table_id",
			mcp.Required(),
			mcp.Description("Table identifier, e.g. '07459'"),
		),
		mcp.WithObject("value_codes",
			mcp.Description("Mapping from variable code to value selection, e.g. {\"Tid\": \"top(5)\"}"),
			mcp.AdditionalProperties(stringMapSchema),
		),
		mcp.WithObject("code_list",
			mcp.Description("Mapping from variable code to an alternative code list id, e.g. {\"Region\": \"agg_Fylker2024\"}"),
			mcp.AdditionalProperties(stringMapSchema),
		),
		mcp.WithObject("output_values",
			mcp.Description("Mapping from variable code to 'aggregated' or 'single', used together with code_list"),
			mcp.AdditionalProperties(stringMapSchema),
		),
		mcp.WithString("output_format",
			mcp.Description("Data output format (default: 'json-stat2')"),
			mcp.Enum(
				string(types.OutputFormatJSONStat2),
				string(types.OutputFormatCSV),
				string(types.OutputFormatXLSX),
				string(types.OutputFormatHTML),
				string(types.OutputFormatPX),
				string(types.OutputFormatJSONPX),
			),
		),
		mcp.WithString("language",
			mcp.Description("Response language: 'en' or 'no' (default: 'no')"),
			mcp.Enum(string(types.LanguageEnglish), string(types.LanguageNorwegian)),
		),
	)
}

func getCodeListTool() mcp.Tool {
	return mcp.NewTool("get_code_list",
		mcp.WithDescription(
			"Get a code list (valueset or aggregation grouping) by id. "+
				"Code list ids appear in table metadata, e.g. 'agg_Fylker2024'.",
		),
		mcp.WithString("code_list_id",
			mcp.Required(),
			mcp.Description("Code list identifier, e.g. 'vs_Fylker' or 'agg_Fylker2024'"),
		),
		mcp.WithString("language",
			mcp.Description("Response language: 'en' or 'no' (default: 'no')"),
			mcp.Enum(string(types.LanguageEnglish), string(types.LanguageNorwegian)),
		),
	)
}

func listRecentTablesTool() mcp.Tool {
	return mcp.NewTool("list_recent_tables",
		mcp.WithDescription(
			"List tables updated within the past N days. "+
				"Returns one line per table: '<table id>: <label> (updated: <date>)'.",
		),
		mcp.WithNumber("days",
			mcp.Required(),
			mcp.Min(1),
			mcp.Max(365),
			mcp.Description("Number of past days to look back, between 1 and 365"),
		),
		mcp.WithString("language",
			mcp.Description("Response language: 'en' or 'no' (default: 'no')"),
			mcp.Enum(string(types.LanguageEnglish), string(types.LanguageNorwegian)),
		),
	)
}

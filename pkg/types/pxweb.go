// Package types contains the wire-level data structures shared between
// pxbridge and the upstream PxWeb v2 API.
package types

import "fmt"

// Language represents the language requested from the upstream PxWeb API.
// Every upstream request carries a `lang` query parameter of this type.
type Language string

const (
	// LanguageNorwegian is the upstream's default language.
	LanguageNorwegian Language = "no"
	LanguageEnglish   Language = "en"
)

// OutputFormat represents the data output format requested from the
// upstream's /tables/{id}/data endpoint.
type OutputFormat string

const (
	// OutputFormatJSONStat2 is the default output format.
	OutputFormatJSONStat2 OutputFormat = "json-stat2"
	OutputFormatCSV       OutputFormat = "csv"
	OutputFormatXLSX      OutputFormat = "xlsx"
	OutputFormatHTML      OutputFormat = "html"
	OutputFormatPX        OutputFormat = "px"
	OutputFormatJSONPX    OutputFormat = "json-px"
)

// TableSummary is one entry of the upstream's table listing response.
// Only the fields pxbridge reduces into text summaries are decoded;
// everything else in the upstream payload is ignored.
type TableSummary struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Updated string `json:"updated,omitempty"`
}

// TableListResponse is the upstream's response shape for GET /tables.
// A missing `tables` key decodes to a nil slice, which pxbridge treats
// the same as an empty result list.
type TableListResponse struct {
	Tables []TableSummary `json:"tables"`
}

// ServerMetadata represents the server metadata response
type ServerMetadata struct {
	Version string `json:"version"`
}

// ValidateLanguage validates the input string and returns the corresponding Language.
// If the input is empty, it returns the upstream default LanguageNorwegian.
func ValidateLanguage(input string) (Language, error) {
	switch input {
	case string(LanguageEnglish):
		return LanguageEnglish, nil
	case string(LanguageNorwegian), "":
		return LanguageNorwegian, nil
	default:
		return "", fmt.Errorf(
			"unsupported language: %s (acceptable values: '%s', '%s')",
			input, LanguageNorwegian, LanguageEnglish,
		)
	}
}

// ValidateOutputFormat validates the input string and returns the corresponding OutputFormat.
// If the input is empty, it returns the default OutputFormatJSONStat2.
func ValidateOutputFormat(input string) (OutputFormat, error) {
	switch input {
	case string(OutputFormatJSONStat2), "":
		return OutputFormatJSONStat2, nil
	case string(OutputFormatCSV):
		return OutputFormatCSV, nil
	case string(OutputFormatXLSX):
		return OutputFormatXLSX, nil
	case string(OutputFormatHTML):
		return OutputFormatHTML, nil
	case string(OutputFormatPX):
		return OutputFormatPX, nil
	case string(OutputFormatJSONPX):
		return OutputFormatJSONPX, nil
	default:
		return "", fmt.Errorf(
			"unsupported output format: %s (acceptable values: '%s', '%s', '%s', '%s', '%s', '%s')",
			input, OutputFormatJSONStat2, OutputFormatCSV, OutputFormatXLSX,
			OutputFormatHTML, OutputFormatPX, OutputFormatJSONPX,
		)
	}
}

package pxweb

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pxbridge/pxbridge/pkg/types"
)

// languageQuery reads the optional language parameter off the request,
// validates it, and returns a fresh query value set with `lang` applied.
// Every upstream request starts from this.
func languageQuery(request mcp.CallToolRequest) (url.Values, error) {
	lang, err := types.ValidateLanguage(strings.TrimSpace(request.GetString("language", "")))
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("lang", string(lang))
	return q, nil
}

// requireTrimmedString fetches a required string parameter and trims
// surrounding whitespace. An all-whitespace value is rejected.
func requireTrimmedString(request mcp.CallToolRequest, key string) (string, error) {
	v, err := request.RequireString(key)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return v, nil
}

// getStringMap extracts an open-ended string-to-string object parameter.
// A missing parameter yields a nil map without an error.
func getStringMap(request mcp.CallToolRequest, key string) (map[string]string, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object mapping variable codes to strings", key)
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%s] must be a string", key, k)
		}
		out[k] = s
	}
	return out, nil
}

// appendMapParams emits one query parameter per map entry, keyed as
// `<param>[<variable>]`. url.Values.Encode percent-encodes the brackets
// and the value, so the exact key/value pairs survive a decode round-trip.
// The upstream grammar is not order-sensitive, so map iteration order is fine.
func appendMapParams(q url.Values, param string, m map[string]string) {
	for k, v := range m {
		q.Set(fmt.Sprintf("%s[%s]", param, k), v)
	}
}

// formatTableList reduces a table listing to one line of text per entry.
func formatTableList(tables []types.TableSummary, withUpdated bool) string {
	lines := make([]string, 0, len(tables))
	for _, t := range tables {
		line := fmt.Sprintf("%s: %s", t.ID, t.Label)
		if withUpdated && t.Updated != "" {
			line += fmt.Sprintf(" (updated: %s)", t.Updated)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

type ExportData struct {
	Timestamp   string `json:"timestamp"`
	RequestType string `json:"request_type"`
	Endpoint    string `json:"endpoint"`
	Status      int    `json:"status"`
	Data        any    `json:"data"`
}

func sanitizeString(s string) string {
	if !utf8.ValidString(s) {
		return strings.ToValidUTF8(s, "?")
	}
	return s
}

func decodeUTF8(data any) any {
	switch v := data.(type) {
	case string:
		return sanitizeString(v)
	case map[string]any:
		result := make(map[string]any)
		for key, value := range v {
			result[sanitizeString(key)] = decodeUTF8(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, value := range v {
			result[i] = decodeUTF8(value)
		}
		return result
	default:
		return v
	}
}

// ExportToJSON writes data wrapped in an ExportData envelope to
// exportDir/filename and returns the written path. Thai text is written as-is,
// not \u-escaped.
func ExportToJSON(exportDir, filename string, data any, requestType, endpoint string, status int) (string, error) {
	if filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid export file name '%s'", filename)
	}
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}

	path := filepath.Join(exportDir, filename)

	exportData := ExportData{
		Timestamp:   time.Now().Format(time.RFC3339),
		RequestType: requestType,
		Endpoint:    endpoint,
		Status:      status,
		Data:        decodeUTF8(data),
	}

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(exportData); err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, []byte(strings.TrimSpace(buf.String())), 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	PrintSuccess(fmt.Sprintf("JSON exported successfully: %s", path))
	return path, nil
}

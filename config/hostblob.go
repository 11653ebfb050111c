package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeHostBlob decodes a configuration blob supplied by the host page.
// The host's template engine emits these blobs with single quotes in place
// of double quotes, so the substitution is reversed before JSON decoding.
// A blob that still fails to decode is fatal to initialization: the map
// cannot render without its configuration.
func DecodeHostBlob(blob string, v any) error {
	normalized := strings.ReplaceAll(blob, "'", `"`)
	if err := json.Unmarshal([]byte(normalized), v); err != nil {
		return fmt.Errorf("decoding host config blob: %w", err)
	}
	return nil
}

package inspector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/naturalcap/geoviewer/tileurl"
)

type pointResponse struct {
	Values []float64 `json:"values"`
}

// pointValue asks the tile service for the pixel values under a coordinate.
// Single attempt, no retries; the caller treats any error as "no value".
func (ins *Inspector) pointValue(ctx context.Context, lng, lat float64, layerURL string) ([]float64, error) {
	queryURL := tileurl.PointQuery(ins.TitilerURL, lng, lat, layerURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building point query: %w", err)
	}
	resp, err := ins.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("point query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("point query: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading point response: %w", err)
	}

	var parsed pointResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing point response: %w", err)
	}
	return parsed.Values, nil
}

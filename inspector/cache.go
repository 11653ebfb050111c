package inspector

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/paulmach/orb/geojson"
)

// FeatureCache fetches and caches vector layers' GeoJSON so repeated clicks
// do not refetch the same collection.
type FeatureCache struct {
	cache  *ristretto.Cache
	client *http.Client
}

const featureTTL = 10 * time.Minute

func NewFeatureCache(client *http.Client) *FeatureCache {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,     // number of keys to track frequency of (10M)
		MaxCost:     1 << 30, // maximum cost of cache (1GB)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &FeatureCache{cache: cache, client: client}
}

// FeatureCollection returns the parsed features behind a layer URL, fetching
// on a cache miss.
func (fc *FeatureCache) FeatureCollection(ctx context.Context, url string) (*geojson.FeatureCollection, error) {
	if cached, found := fc.cache.Get(url); found {
		if collection, ok := cached.(*geojson.FeatureCollection); ok {
			return collection, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feature request: %w", err)
	}
	resp, err := fc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching features from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching features from %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading features from %s: %w", url, err)
	}
	collection, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("parsing features from %s: %w", url, err)
	}

	fc.cache.SetWithTTL(url, collection, 1, featureTTL)
	fc.cache.Wait()

	return collection, nil
}

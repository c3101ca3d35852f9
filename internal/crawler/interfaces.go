package crawler

import (
	"context"

	"github.com/samvad-hq/headline-harvester/internal/domain"
	"github.com/samvad-hq/headline-harvester/internal/state"
	"github.com/samvad-hq/headline-harvester/pkg/providers"
	"github.com/samvad-hq/headline-harvester/pkg/publishers"
)

// ObjectStore reads and writes objects in the harvester bucket.
type ObjectStore interface {
	Bucket() string
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// PageSource downloads a provider's homepage.
type PageSource interface {
	Fetch(ctx context.Context, cfg providers.Provider) ([]byte, error)
}

// HeadlineExtractor identifies newspapers and extracts their headlines.
type HeadlineExtractor interface {
	Identify(name string) (providers.Profile, bool)
	Extract(html, baseURL, siteID string) []domain.Headline
}

// ProcessedLedger remembers which snapshots were already converted.
type ProcessedLedger interface {
	Lookup(sourceKey string) (state.Entry, bool, error)
	Mark(entry state.Entry) error
	Forget(sourceKey string) error
}

// EventPublisher announces written headline files downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) error
}

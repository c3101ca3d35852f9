package publishers

import (
	"context"
	"time"

	"github.com/samvad-hq/headline-harvester/internal/logger"
)

// Logger is the structured logger publishers report through.
type Logger = logger.Logger

// Event announces that a headline CSV was written for one newspaper snapshot.
type Event struct {
	SiteID      string    `json:"site_id"`
	Bucket      string    `json:"bucket"`
	SourceKey   string    `json:"source_key"`
	OutputKey   string    `json:"output_key"`
	Headlines   int       `json:"headlines"`
	Year        string    `json:"year"`
	Month       string    `json:"month"`
	Day         string    `json:"day"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Publisher delivers events to one downstream sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

func ensureLogger(log Logger) Logger {
	return logger.Ensure(log)
}

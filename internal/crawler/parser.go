package crawler

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/samvad-hq/headline-harvester/internal/domain"
	"github.com/samvad-hq/headline-harvester/internal/logger"
	"github.com/samvad-hq/headline-harvester/internal/state"
	"github.com/samvad-hq/headline-harvester/internal/storage"
	"github.com/samvad-hq/headline-harvester/pkg/publishers"
)

var (
	// ErrNotEligible marks keys that are not raw HTML snapshots.
	ErrNotEligible = errors.New("object is not a raw html snapshot")
	// ErrUnknownSite marks snapshots whose filename names no known newspaper.
	ErrUnknownSite = errors.New("unknown newspaper")
)

// Result describes what happened to one snapshot.
type Result struct {
	SiteID    string
	SourceKey string
	OutputKey string
	Headlines int
	Partition domain.Partition
	// Skipped is set when the ledger already had the snapshot.
	Skipped bool
	// Empty is set when no headline was found and no CSV was written.
	Empty bool
}

// Parser converts raw homepage snapshots into partitioned headline CSV files.
type Parser struct {
	store     ObjectStore
	extractor HeadlineExtractor
	ledger    ProcessedLedger
	publisher EventPublisher
	layout    Layout
	log       logger.Logger
	now       func() time.Time
}

// ParserOption customizes a Parser.
type ParserOption func(*Parser)

// WithLedger skips snapshots already recorded in l and records new ones.
func WithLedger(l ProcessedLedger) ParserOption {
	return func(p *Parser) { p.ledger = l }
}

// WithPublisher announces every written CSV through pub.
func WithPublisher(pub EventPublisher) ParserOption {
	return func(p *Parser) { p.publisher = pub }
}

// WithClock replaces time.Now, used when a filename carries no date.
func WithClock(now func() time.Time) ParserOption {
	return func(p *Parser) { p.now = now }
}

// NewParser creates a Parser.
func NewParser(store ObjectStore, extractor HeadlineExtractor, layout Layout, log logger.Logger, opts ...ParserOption) *Parser {
	p := &Parser{
		store:     store,
		extractor: extractor,
		layout:    layout,
		log:       logger.Ensure(log),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle converts the snapshot at bucket/key. An empty bucket means the store's
// default bucket.
func (p *Parser) Handle(ctx context.Context, bucket, key string) (Result, error) {
	res := Result{SourceKey: key}
	if !p.layout.Eligible(key) {
		return res, fmt.Errorf("%s: %w", key, ErrNotEligible)
	}

	if p.ledger != nil {
		entry, done, err := p.ledger.Lookup(key)
		if err != nil {
			return res, err
		}
		if done {
			p.log.InfoObj("snapshot already processed", "parse_skip", map[string]any{
				"key":        key,
				"output_key": entry.OutputKey,
			})
			res.OutputKey = entry.OutputKey
			res.Headlines = entry.Headlines
			res.Skipped = true
			return res, nil
		}
	}

	profile, ok := p.extractor.Identify(sitePrefix(key))
	if !ok {
		return res, fmt.Errorf("%s: %w", path.Base(key), ErrUnknownSite)
	}
	res.SiteID = profile.ID

	body, err := p.store.Get(ctx, bucket, key)
	if err != nil {
		return res, fmt.Errorf("download snapshot: %w", err)
	}

	p.log.InfoObj("parsing snapshot", "parse_start", map[string]any{
		"site_id": profile.ID,
		"bucket":  bucket,
		"key":     key,
		"bytes":   len(body),
	})

	headlines := p.extractor.Extract(string(body), profile.BaseURL, profile.ID)
	res.Headlines = len(headlines)

	if len(headlines) == 0 {
		p.log.WarnObj("no headlines extracted, skipping csv", "parse_empty", map[string]any{
			"site_id": profile.ID,
			"key":     key,
		})
		res.Empty = true
		return res, p.mark(state.Entry{SourceKey: key})
	}

	partition, dated := partitionFromKey(key, p.now())
	if !dated {
		p.log.WarnObj("snapshot name has no valid date, using current date", "parse_date_fallback", map[string]any{
			"key": key,
		})
	}
	res.Partition = partition
	res.OutputKey = p.layout.FinalKey(profile.ID, partition)

	payload, err := EncodeCSV(headlines)
	if err != nil {
		return res, err
	}
	if err := p.store.Put(ctx, res.OutputKey, payload, storage.ContentTypeCSV); err != nil {
		return res, fmt.Errorf("upload headlines csv: %w", err)
	}

	if err := p.mark(state.Entry{SourceKey: key, OutputKey: res.OutputKey, Headlines: res.Headlines}); err != nil {
		return res, err
	}
	p.announce(ctx, res)

	p.log.InfoObj("headlines written", "parse_done", map[string]any{
		"site_id":    profile.ID,
		"key":        key,
		"output_key": res.OutputKey,
		"headlines":  res.Headlines,
	})
	return res, nil
}

// Forget drops key from the ledger so the next Handle converts it again.
func (p *Parser) Forget(key string) error {
	if p.ledger == nil {
		return nil
	}
	return p.ledger.Forget(key)
}

func (p *Parser) mark(entry state.Entry) error {
	if p.ledger == nil {
		return nil
	}
	if err := p.ledger.Mark(entry); err != nil {
		return fmt.Errorf("record processed snapshot: %w", err)
	}
	return nil
}

// announce publishes the result. Delivery failures are logged only: the CSV is
// already written and downstream consumers can still discover it by listing.
func (p *Parser) announce(ctx context.Context, res Result) {
	if p.publisher == nil {
		return
	}

	evt := publishers.Event{
		SiteID:      res.SiteID,
		Bucket:      p.store.Bucket(),
		SourceKey:   res.SourceKey,
		OutputKey:   res.OutputKey,
		Headlines:   res.Headlines,
		Year:        res.Partition.Year,
		Month:       res.Partition.Month,
		Day:         res.Partition.Day,
		ProcessedAt: p.now().UTC(),
	}
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.log.WarnObj("headlines event not delivered", "parse_publish_error", map[string]any{
			"site_id":    res.SiteID,
			"output_key": res.OutputKey,
			"error":      err.Error(),
		})
	}
}

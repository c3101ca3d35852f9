package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ObjectRef points at one object named in a storage notification.
type ObjectRef struct {
	Bucket string
	Key    string
}

// s3Notification is the subset of an S3 event notification the parser reads.
type s3Notification struct {
	Records []struct {
		EventName string `json:"eventName"`
		S3        struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// ParseNotification decodes an S3 event notification. Object keys arrive
// URL-encoded and are decoded here. A test event without records yields no refs.
func ParseNotification(payload []byte) ([]ObjectRef, error) {
	var n s3Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("decode s3 notification: %w", err)
	}

	refs := make([]ObjectRef, 0, len(n.Records))
	for _, rec := range n.Records {
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return nil, fmt.Errorf("decode object key %q: %w", rec.S3.Object.Key, err)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		refs = append(refs, ObjectRef{Bucket: rec.S3.Bucket.Name, Key: key})
	}
	return refs, nil
}

// BatchResult summarizes a notification run.
type BatchResult struct {
	Results []Result
	Failed  int
}

// HandleNotification parses the notification and runs p for every object in it.
// A failing object is logged and counted; the rest of the batch still runs.
// Objects outside the raw prefix are skipped without counting as failures.
func HandleNotification(ctx context.Context, p *Parser, payload []byte) (BatchResult, error) {
	refs, err := ParseNotification(payload)
	if err != nil {
		return BatchResult{}, err
	}

	var batch BatchResult
	for _, ref := range refs {
		res, err := p.Handle(ctx, ref.Bucket, ref.Key)
		switch {
		case errors.Is(err, ErrNotEligible):
			p.log.InfoObj("object not eligible for parsing", "parse_ineligible", map[string]any{
				"bucket": ref.Bucket,
				"key":    ref.Key,
			})
		case err != nil:
			batch.Failed++
			p.log.ErrorObj("object parsing failed", "parse_error", map[string]any{
				"bucket": ref.Bucket,
				"key":    ref.Key,
				"error":  err.Error(),
			})
		default:
			batch.Results = append(batch.Results, res)
		}
	}

	if batch.Failed > 0 {
		return batch, fmt.Errorf("%d of %d objects failed", batch.Failed, len(refs))
	}
	return batch, nil
}

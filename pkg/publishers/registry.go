package publishers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Builder creates a Publisher from a config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Registry maps publisher types to builders.
type Registry interface {
	Register(typ string, builder Builder)
	PublisherFor(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)
}

type registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with optional pre-registered builders.
func NewRegistry(builders map[string]Builder) Registry {
	r := &registry{builders: make(map[string]Builder)}
	for typ, b := range builders {
		r.Register(typ, b)
	}
	return r
}

// Register associates a builder with a publisher type.
func (r *registry) Register(typ string, builder Builder) {
	if typ = strings.TrimSpace(strings.ToLower(typ)); typ == "" || builder == nil {
		return
	}

	r.mu.Lock()
	r.builders[typ] = builder
	r.mu.Unlock()
}

// PublisherFor returns the publisher built for the provided config.
func (r *registry) PublisherFor(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	r.mu.RLock()
	builder := r.builders[strings.ToLower(cfg.Type)]
	r.mu.RUnlock()

	if builder == nil {
		return nil, fmt.Errorf("no publisher registered for type %q", cfg.Type)
	}
	return builder(ctx, cfg, log)
}

// DefaultRegistry wires up the built-in publisher types.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Builder{
		TypeHTTP:  newHTTPPublisher,
		TypeQueue: newQueuePublisher,
	})
}

// Fanout publishes every event to all of its publishers.
type Fanout struct {
	pubs []Publisher
	log  Logger
}

// BuildAll instantiates publishers for cfgs and wraps them in a Fanout.
func BuildAll(ctx context.Context, reg Registry, cfgs []PublisherConfig, log Logger) (*Fanout, error) {
	out := &Fanout{log: ensureLogger(log)}
	if reg == nil {
		return out, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for _, cfg := range cfgs {
		pub, err := reg.PublisherFor(ctx, cfg, out.log)
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		out.pubs = append(out.pubs, pub)
	}
	return out, nil
}

// NewFanout wraps already built publishers.
func NewFanout(log Logger, pubs ...Publisher) *Fanout {
	return &Fanout{pubs: pubs, log: ensureLogger(log)}
}

// Len reports how many publishers the fanout delivers to.
func (f *Fanout) Len() int { return len(f.pubs) }

// Publish delivers evt to every publisher. All publishers are attempted; the
// returned error joins the individual failures.
func (f *Fanout) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, p := range f.pubs {
		if err := p.Publish(ctx, evt); err != nil {
			f.log.WarnObj("publisher failed", "publisher_error", map[string]any{
				"publisher_id": p.ID(),
				"type":         p.Type(),
				"site_id":      evt.SiteID,
				"error":        err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s: %w", p.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// Close releases publishers that hold resources.
func (f *Fanout) Close() error {
	var errs []error
	for _, p := range f.pubs {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

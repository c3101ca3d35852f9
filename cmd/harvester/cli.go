package main

import (
	"context"
	"io"

	"github.com/samvad-hq/headline-harvester/internal/catalog"
	"github.com/samvad-hq/headline-harvester/internal/config"
	"github.com/samvad-hq/headline-harvester/internal/crawler"
	"github.com/samvad-hq/headline-harvester/internal/listener"
	"github.com/samvad-hq/headline-harvester/internal/logger"
	"github.com/samvad-hq/headline-harvester/pkg/providers"
)

// CrawlStarter starts catalog crawls.
type CrawlStarter interface {
	Start(ctx context.Context, name string) (catalog.Outcome, error)
}

// NotificationSource delivers object notification payloads until ctx ends.
type NotificationSource interface {
	Run(ctx context.Context, handle listener.Handler) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Config        config.Config
	Log           logger.Logger
	Registry      *providers.Registry
	Snapshotter   *crawler.Snapshotter
	Parser        *crawler.Parser
	Notifications NotificationSource
	Trigger       CrawlStarter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" env:"HEADLINES_CONFIG" type:"path" help:"Optional YAML or JSON config file"`

	Snapshot SnapshotCmd `cmd:"" help:"Download configured homepages into the raw prefix"`
	Parse    ParseCmd    `cmd:"" help:"Turn raw snapshots into headline CSV files"`
	Listen   ListenCmd   `cmd:"" help:"Parse snapshots announced on the notification queue"`
	Crawl    CrawlCmd    `cmd:"" help:"Start the catalog crawler over the headline files"`
	Extract  ExtractCmd  `cmd:"" help:"Print the headlines of a local HTML file as CSV"`
}

// SnapshotCmd is the "snapshot" subcommand.
type SnapshotCmd struct{}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Keys      []string `arg:"" optional:"" help:"Raw snapshot object keys"`
	EventFile string   `name:"event-file" type:"existingfile" help:"S3 event notification JSON to process instead of keys"`
	Force     bool     `short:"f" help:"Convert keys again even if the ledger has them"`
}

// ListenCmd is the "listen" subcommand.
type ListenCmd struct{}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Name string `arg:"" optional:"" help:"Crawler name (defaults to crawler_name)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File    string `arg:"" type:"existingfile" help:"Saved homepage HTML"`
	Site    string `short:"s" required:"" help:"Newspaper id, for example eltiempo"`
	BaseURL string `name:"base-url" help:"Base URL for relative links (defaults to the newspaper homepage)"`
}

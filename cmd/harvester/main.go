package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/samvad-hq/headline-harvester/internal/awsclient"
	"github.com/samvad-hq/headline-harvester/internal/catalog"
	"github.com/samvad-hq/headline-harvester/internal/config"
	"github.com/samvad-hq/headline-harvester/internal/crawler"
	"github.com/samvad-hq/headline-harvester/internal/listener"
	"github.com/samvad-hq/headline-harvester/internal/logger"
	"github.com/samvad-hq/headline-harvester/internal/state"
	"github.com/samvad-hq/headline-harvester/internal/storage"
	"github.com/samvad-hq/headline-harvester/pkg/httpclient"
	"github.com/samvad-hq/headline-harvester/pkg/providers"
	"github.com/samvad-hq/headline-harvester/pkg/publishers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Resources opened while wiring a command, released by Close.
	Log    logger.Logger
	Ledger *state.Ledger
	Fanout *publishers.Fanout
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases everything Run opened.
func (m *Main) Close() error {
	var errs []error
	if m.Fanout != nil {
		errs = append(errs, m.Fanout.Close())
	}
	if m.Ledger != nil {
		errs = append(errs, m.Ledger.Close())
	}
	if m.Log != nil {
		// Syncing stderr fails on some terminals; nothing is lost.
		_ = m.Log.Sync()
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvester"),
		kong.Description("Snapshot newspaper homepages and turn them into headline CSV files."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvester --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	m.Log = log
	defer m.Close()

	deps.Config = cfg
	deps.Log = log
	deps.Registry = providers.DefaultRegistry(log)

	// extract works on local files only.
	if cmd == "extract" {
		return kongCtx.Run(deps)
	}

	if err := cfg.Validate(deps.Registry.IDs()); err != nil {
		fmt.Fprintln(stderr, "Hint: settings come from HEADLINES_* environment variables or --config")
		return fmt.Errorf("invalid configuration: %w", err)
	}

	awsCfg, err := awsclient.Load(ctx, awsclient.Options{
		Region:          cfg.Region,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		return err
	}

	if err := m.wire(ctx, cmd, cfg, awsCfg, deps); err != nil {
		return err
	}
	return kongCtx.Run(deps)
}

// wire builds the services cmd needs.
func (m *Main) wire(ctx context.Context, cmd string, cfg config.Config, awsCfg aws.Config, deps *Dependencies) error {
	layout := crawler.Layout{RawPrefix: cfg.RawPrefix, FinalPrefix: cfg.FinalPrefix}

	switch cmd {
	case "crawl":
		deps.Trigger = catalog.NewTrigger(awsCfg, deps.Log)
		return nil
	case "snapshot", "parse", "listen":
	default:
		return nil
	}

	store, err := storage.NewS3Store(awsCfg, cfg.Bucket, deps.Log)
	if err != nil {
		return err
	}

	if cmd == "snapshot" {
		fetcher := providers.NewPageFetcher(httpclient.NewRestyClient(cfg.HTTPTimeout))
		deps.Snapshotter = crawler.NewSnapshotter(fetcher, store, layout, cfg.Workers, deps.Log)
		return nil
	}

	var opts []crawler.ParserOption
	if cfg.StatePath != "" {
		ledger, err := state.Open(cfg.StatePath)
		if err != nil {
			return err
		}
		m.Ledger = ledger
		opts = append(opts, crawler.WithLedger(ledger))
	}
	if cfg.PublishersFile != "" {
		sinks, err := publishers.LoadRegistry(cfg.PublishersFile)
		if err != nil {
			return err
		}
		fanout, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), sinks.Enabled(), deps.Log)
		if err != nil {
			return err
		}
		m.Fanout = fanout
		if fanout.Len() > 0 {
			opts = append(opts, crawler.WithPublisher(fanout))
		}
	}
	deps.Parser = crawler.NewParser(store, deps.Registry, layout, deps.Log, opts...)

	if cmd == "listen" {
		if cfg.QueueURL == "" {
			return fmt.Errorf("listen needs queue_url (HEADLINES_QUEUE_URL)")
		}
		l, err := listener.NewSQSListener(awsCfg, cfg.QueueURL, deps.Log)
		if err != nil {
			return err
		}
		deps.Notifications = l
	}
	return nil
}

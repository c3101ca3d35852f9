package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/samvad-hq/headline-harvester/internal/logger"
)

// Outcome describes how a crawl start request ended.
type Outcome string

const (
	OutcomeStarted        Outcome = "started"
	OutcomeAlreadyRunning Outcome = "already_running"
)

// glueClient defines the minimal subset of the Glue client used by the trigger.
type glueClient interface {
	StartCrawler(ctx context.Context, params *glue.StartCrawlerInput, optFns ...func(*glue.Options)) (*glue.StartCrawlerOutput, error)
}

// Trigger starts metadata catalog crawls.
type Trigger struct {
	client glueClient
	log    logger.Logger
}

// NewTrigger builds a Glue crawl trigger from an AWS config.
func NewTrigger(cfg aws.Config, log logger.Logger) *Trigger {
	return newTrigger(glue.NewFromConfig(cfg), log)
}

func newTrigger(client glueClient, log logger.Logger) *Trigger {
	return &Trigger{client: client, log: logger.Ensure(log)}
}

// Start asks Glue to run the named crawler. A crawler that is already running
// counts as success.
func (t *Trigger) Start(ctx context.Context, name string) (Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("crawler name is empty")
	}

	_, err := t.client.StartCrawler(ctx, &glue.StartCrawlerInput{Name: aws.String(name)})
	if err == nil {
		t.log.InfoObj("crawler started", "catalog_crawl_started", map[string]any{
			"crawler": name,
		})
		return OutcomeStarted, nil
	}

	var running *types.CrawlerRunningException
	if errors.As(err, &running) {
		t.log.InfoObj("crawler already running", "catalog_crawl_running", map[string]any{
			"crawler": name,
		})
		return OutcomeAlreadyRunning, nil
	}

	t.log.ErrorObj("crawler start failed", "catalog_crawl_error", map[string]any{
		"crawler": name,
		"error":   err.Error(),
	})
	return "", fmt.Errorf("start crawler %q: %w", name, err)
}

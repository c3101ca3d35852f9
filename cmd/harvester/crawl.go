package main

import (
	"fmt"

	"github.com/samvad-hq/headline-harvester/internal/catalog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	name := c.Name
	if name == "" {
		name = deps.Config.CrawlerName
	}

	outcome, err := deps.Trigger.Start(deps.Ctx, name)
	if err != nil {
		return err
	}

	switch outcome {
	case catalog.OutcomeAlreadyRunning:
		fmt.Fprintf(deps.Stdout, "crawler %s is already running\n", name)
	default:
		fmt.Fprintf(deps.Stdout, "crawler %s started\n", name)
	}
	return nil
}

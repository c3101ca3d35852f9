package main

import (
	"fmt"
	"os"

	"github.com/samvad-hq/headline-harvester/internal/crawler"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	profile, ok := deps.Registry.Identify(c.Site)
	if !ok {
		return fmt.Errorf("unknown newspaper %q, known: %v", c.Site, deps.Registry.IDs())
	}

	html, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read html: %w", err)
	}

	headlines := deps.Registry.Extract(string(html), c.BaseURL, profile.ID)
	out, err := crawler.EncodeCSV(headlines)
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(out)
	return err
}

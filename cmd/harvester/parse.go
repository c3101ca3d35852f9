package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/headline-harvester/internal/crawler"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if c.EventFile == "" && len(c.Keys) == 0 {
		return errors.New("give one or more snapshot keys or --event-file")
	}

	var errs []error
	if c.EventFile != "" {
		payload, err := os.ReadFile(c.EventFile)
		if err != nil {
			return fmt.Errorf("read event file: %w", err)
		}
		batch, err := crawler.HandleNotification(deps.Ctx, deps.Parser, payload)
		for _, res := range batch.Results {
			printResult(deps.Stdout, res)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, key := range c.Keys {
		if c.Force {
			if err := deps.Parser.Forget(key); err != nil {
				return err
			}
		}
		res, err := deps.Parser.Handle(deps.Ctx, "", key)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%s  failed: %s\n", key, err)
			errs = append(errs, err)
			continue
		}
		printResult(deps.Stdout, res)
	}
	return errors.Join(errs...)
}

func printResult(w io.Writer, res crawler.Result) {
	switch {
	case res.Skipped:
		fmt.Fprintf(w, "%s  already processed  %s\n", res.SourceKey, res.OutputKey)
	case res.Empty:
		fmt.Fprintf(w, "%s  no headlines\n", res.SourceKey)
	default:
		fmt.Fprintf(w, "%s  %s  %d headlines\n", res.SourceKey, res.OutputKey, res.Headlines)
	}
}

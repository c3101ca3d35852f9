package main

import (
	"context"

	"github.com/samvad-hq/headline-harvester/internal/crawler"
)

// Run executes the listen command. A notification with any failed object stays
// on the queue; the ledger skips the objects that already succeeded when it is
// redelivered.
func (c *ListenCmd) Run(deps *Dependencies) error {
	return deps.Notifications.Run(deps.Ctx, func(ctx context.Context, body []byte) error {
		_, err := crawler.HandleNotification(ctx, deps.Parser, body)
		return err
	})
}

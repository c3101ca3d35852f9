package main

import "fmt"

// Run executes the snapshot command.
func (c *SnapshotCmd) Run(deps *Dependencies) error {
	results, err := deps.Snapshotter.Run(deps.Ctx, deps.Config.Providers)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stdout, "%s  failed: %s\n", r.ProviderID, r.Err)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d bytes\n", r.ProviderID, r.Key, r.Bytes)
	}
	return err
}

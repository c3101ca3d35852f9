package config_test

import "github.com/samvad-hq/headline-harvester/pkg/providers"

func providerFor(id string) providers.Provider {
	return providers.Provider{ID: id, SourceURL: "https://" + id + ".example/"}
}

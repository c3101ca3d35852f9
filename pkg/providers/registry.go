package providers

import (
	"sort"
	"strings"

	"github.com/samvad-hq/headline-harvester/internal/domain"
	"github.com/samvad-hq/headline-harvester/internal/logger"
)

// Registry maps site identifiers to their extraction profiles. It is built once and
// only read afterwards, so concurrent Extract calls need no locking.
type Registry struct {
	profiles map[string]Profile
	ids      []string
	log      logger.Logger
}

// NewRegistry builds a registry for the given profiles. Identifiers are matched
// case-insensitively; a later profile with the same id replaces an earlier one.
func NewRegistry(log logger.Logger, profiles ...Profile) *Registry {
	reg := &Registry{
		profiles: make(map[string]Profile, len(profiles)),
		log:      logger.Ensure(log),
	}

	for _, p := range profiles {
		key := normalizeID(p.ID)
		if key == "" {
			continue
		}
		p.ID = key
		reg.profiles[key] = p
	}

	reg.ids = make([]string, 0, len(reg.profiles))
	for id := range reg.profiles {
		reg.ids = append(reg.ids, id)
	}
	sort.Strings(reg.ids)

	return reg
}

// DefaultRegistry wires up the known newspaper profiles.
func DefaultRegistry(log logger.Logger) *Registry {
	return NewRegistry(log,
		ElTiempoProfile(),
		ElEspectadorProfile(),
		PublimetroProfile(),
	)
}

// Profile returns the profile registered for id.
func (r *Registry) Profile(id string) (Profile, bool) {
	p, ok := r.profiles[normalizeID(id)]
	return p, ok
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Identify finds the profile whose id occurs in name, for example the site prefix
// of a snapshot filename. Identifiers are checked in sorted order.
func (r *Registry) Identify(name string) (Profile, bool) {
	name = strings.ToLower(name)
	for _, id := range r.ids {
		if strings.Contains(name, id) {
			return r.profiles[id], true
		}
	}
	return Profile{}, false
}

// Extract returns the headlines found in html for siteID. Relative links are
// resolved against baseURL, or against the profile's base URL when baseURL is
// empty. An unknown siteID yields an empty result rather than an error.
func (r *Registry) Extract(html, baseURL, siteID string) []domain.Headline {
	p, ok := r.Profile(siteID)
	if !ok {
		r.log.WarnObj("no extraction profile for site", "extract_unknown_site", map[string]any{
			"site_id": siteID,
		})
		return []domain.Headline{}
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = p.BaseURL
	}

	headlines := extractProfile(p, html, baseURL)

	for _, h := range headlines {
		r.log.DebugObj("headline extracted", "extract_headline", map[string]any{
			"site_id":  p.ID,
			"category": h.Category,
			"title":    h.Title,
			"link":     h.Link,
		})
	}
	r.log.InfoObj("headline extraction finished", "extract_done", map[string]any{
		"site_id":    p.ID,
		"strategies": len(p.Strategies),
		"headlines":  len(headlines),
	})

	return headlines
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

package providers

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/headline-harvester/internal/domain"
)

// assembler accumulates accepted headlines in discovery order. The seen set lives
// only as long as one extraction call.
type assembler struct {
	seen map[string]struct{}
	out  []domain.Headline
}

func newAssembler() *assembler {
	return &assembler{
		seen: make(map[string]struct{}),
		out:  make([]domain.Headline, 0),
	}
}

// add appends h unless its link was already emitted.
func (a *assembler) add(h domain.Headline) bool {
	if _, dup := a.seen[h.Link]; dup {
		return false
	}
	a.seen[h.Link] = struct{}{}
	a.out = append(a.out, h)
	return true
}

// extractProfile runs every strategy of p over html and returns the deduplicated
// headlines. It never fails: unparseable markup or missing elements just produce
// fewer headlines.
func extractProfile(p Profile, html, baseURL string) []domain.Headline {
	asm := newAssembler()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return asm.out
	}

	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		base = nil
	}

	for _, s := range p.Strategies {
		s.collect(doc, base, asm)
	}
	return asm.out
}

// collect evaluates the strategy against every matching container in document order.
func (s Strategy) collect(doc *goquery.Document, base *url.URL, asm *assembler) {
	doc.Find(s.Selector).Each(func(_ int, card *goquery.Selection) {
		title, href, ok := s.locateTitle(card)
		if !ok {
			return
		}

		category := s.locateCategory(card)
		if category == "" {
			category = domain.UncategorizedLabel
		}

		link, ok := resolveAgainst(base, href)
		if !ok {
			return
		}

		asm.add(domain.Headline{
			Category: category,
			Title:    title,
			Link:     link,
		})
	})
}

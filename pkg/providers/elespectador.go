package providers

const (
	elEspectadorProviderID = "elespectador"
	elEspectadorBaseURL    = "https://www.elespectador.com/"
)

// elEspectadorCards lists the card layouts seen on El Espectador's homepage over
// time. Generic containers (card bodies, *-container and *-item blocks) also get
// the link-scan fallback because their markup rarely wraps titles in headings.
var elEspectadorCards = []struct {
	selector string
	scan     bool
}{
	{selector: "div.CardLayout-Container"},
	{selector: "div.Card"},
	{selector: "div.Teaser-container", scan: true},
	{selector: "article.Content"},
	{selector: "div.card-body", scan: true},
	{selector: "div[data-pf-type='BlockArticle']"},
	{selector: "div[data-pf-type='BlockPromo']"},
	{selector: "div.promo-container", scan: true},
	{selector: "div.article-container", scan: true},
	{selector: "div.news-item", scan: true},
	{selector: "div.story-card"},
	{selector: "div.headline-card"},
	{selector: "section.main-content article"},
	{selector: "div.section-body .row .col-md-4"},
	{selector: "div.listing-item", scan: true},
	{selector: "div.news-card"},
}

// ElEspectadorProfile extracts El Espectador headlines from its card layouts.
func ElEspectadorProfile() Profile {
	categories := []CategoryLocator{
		TextCategory("div.Card-SectionContainer h4.Card-Section a"),
		TextCategory("h4.Card-Section a"),
		TextCategory("span.section-name"),
		AttrCategory("data-category"),
	}

	strategies := make([]Strategy, 0, len(elEspectadorCards))
	for _, card := range elEspectadorCards {
		titles := []TitleLocator{
			FirstAnchor("h2[class*='Card-Title'] a[href], h2[class*='Promo-title'] a[href]"),
			HeadingAnchor(),
		}
		if card.scan {
			titles = append(titles, ProminentLink())
		}
		strategies = append(strategies, Strategy{
			Name:       card.selector,
			Selector:   card.selector,
			Titles:     titles,
			Categories: categories,
		})
	}

	return Profile{
		ID:         elEspectadorProviderID,
		BaseURL:    elEspectadorBaseURL,
		Strategies: strategies,
	}
}

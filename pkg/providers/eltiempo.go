package providers

const (
	elTiempoProviderID = "eltiempo"
	elTiempoBaseURL    = "https://www.eltiempo.com/"
)

// ElTiempoProfile extracts El Tiempo headlines. Three independent passes cover
// category-tagged articles, article blocks and main-section cards.
func ElTiempoProfile() Profile {
	return Profile{
		ID:      elTiempoProviderID,
		BaseURL: elTiempoBaseURL,
		Strategies: []Strategy{
			{
				Name:     "tagged-articles",
				Selector: "article[data-category]",
				Titles: []TitleLocator{
					FirstAnchor("a.c-articulo__titulo__txt[href]"),
					FirstAnchor("a.c-article-block__title-link[href]"),
					FirstAnchor("a.c-main-section__card__title[href]"),
				},
				Categories: []CategoryLocator{
					AttrCategory("data-category"),
				},
			},
			{
				Name:     "article-blocks",
				Selector: "div.c-article-block__content",
				Titles: []TitleLocator{
					FirstAnchor("a.c-article-block__title-link[href]"),
				},
				Categories: []CategoryLocator{
					TextCategory("span.c-article-block__section"),
				},
			},
			{
				Name:     "main-section-cards",
				Selector: "div.c-main-section__cards__item",
				Titles: []TitleLocator{
					FirstAnchor("a.c-main-section__card__title[href]"),
				},
				Categories: []CategoryLocator{
					TextCategory("span.c-main-section__card__section"),
				},
			},
		},
	}
}

package providers

import "github.com/PuerkitoBio/goquery"

// TitleLocator looks for the headline of a single container. It reports the
// visible title text and the raw href, and ok is false when the container does not
// hold a usable pair for this rule.
type TitleLocator func(card *goquery.Selection) (title, href string, ok bool)

// CategoryLocator returns the category text of a container, or "" when the rule
// does not apply.
type CategoryLocator func(card *goquery.Selection) string

// Strategy is one container selector with its title and category rule chains.
// Rules are evaluated in order and the first match wins.
type Strategy struct {
	Name       string
	Selector   string
	Titles     []TitleLocator
	Categories []CategoryLocator
}

// Profile describes how headlines are pulled out of one newspaper's homepage.
type Profile struct {
	ID         string
	BaseURL    string
	Strategies []Strategy
}

func (s Strategy) locateTitle(card *goquery.Selection) (string, string, bool) {
	for _, loc := range s.Titles {
		if title, href, ok := loc(card); ok {
			return title, href, true
		}
	}
	return "", "", false
}

func (s Strategy) locateCategory(card *goquery.Selection) string {
	for _, loc := range s.Categories {
		if category := loc(card); category != "" {
			return category
		}
	}
	return ""
}

package providers

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/headline-harvester/internal/domain"
)

// MinFallbackTitleLength is the rune count a link text must exceed before the
// fallback rule treats it as a headline.
const MinFallbackTitleLength = 10

const headingSelector = "h1, h2, h3, h4"

// FirstAnchor matches the first element selected by selector inside the container
// and reads it as a headline anchor.
func FirstAnchor(selector string) TitleLocator {
	return func(card *goquery.Selection) (string, string, bool) {
		a := card.Find(selector).First()
		if a.Length() == 0 {
			return "", "", false
		}
		return anchorTitle(a)
	}
}

// HeadingAnchor matches the first link nested in any h1-h4 of the container.
func HeadingAnchor() TitleLocator {
	return FirstAnchor("h1 a[href], h2 a[href], h3 a[href], h4 a[href]")
}

// ProminentLink scans every link of the container. Links with empty, numeric or
// short text are ignored, as are links inside footer or navigation blocks. A link
// nested in a heading wins, then a container's only link, then the first link
// with non-numeric text.
func ProminentLink() TitleLocator {
	return func(card *goquery.Selection) (string, string, bool) {
		links := card.Find("a[href]")
		if links.Length() == 0 {
			return "", "", false
		}

		var picked *goquery.Selection
		links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			text := cleanText(a)
			if utf8.RuneCountInString(text) <= MinFallbackTitleLength || isNumeric(text) || insideChrome(a) {
				return true
			}
			if a.ParentsFiltered(headingSelector).Length() > 0 || links.Length() == 1 {
				picked = a
				return false
			}
			return true
		})

		if picked == nil {
			links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
				if text := cleanText(a); text != "" && !isNumeric(text) {
					picked = a
					return false
				}
				return true
			})
		}
		if picked == nil {
			return "", "", false
		}
		return anchorTitle(picked)
	}
}

// TextCategory reads the text of the first element selected by selector.
func TextCategory(selector string) CategoryLocator {
	return func(card *goquery.Selection) string {
		return cleanText(card.Find(selector).First())
	}
}

// AttrCategory reads a category carried by an attribute of the container itself.
func AttrCategory(attr string) CategoryLocator {
	return func(card *goquery.Selection) string {
		val, ok := card.Attr(attr)
		if !ok {
			return ""
		}
		val = strings.TrimSpace(val)
		if val == domain.UncategorizedLabel {
			return ""
		}
		return val
	}
}

// anchorTitle reads title text and href from a link. Markup that keeps the text on
// the enclosing heading instead of the anchor falls back to the heading's text.
func anchorTitle(a *goquery.Selection) (string, string, bool) {
	href, ok := a.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", "", false
	}

	title := cleanText(a)
	if title == "" {
		if parent := a.Parent(); parent.Is(headingSelector) {
			title = cleanText(parent)
		}
	}
	if title == "" {
		return "", "", false
	}
	return title, href, true
}

// insideChrome reports whether the node sits under an element whose class names
// mention footer or nav.
func insideChrome(s *goquery.Selection) bool {
	chrome := false
	s.Parents().EachWithBreak(func(_ int, p *goquery.Selection) bool {
		class, _ := p.Attr("class")
		for _, c := range strings.Fields(class) {
			if strings.Contains(c, "footer") || strings.Contains(c, "nav") {
				chrome = true
				return false
			}
		}
		return true
	})
	return chrome
}

func cleanText(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(s.Text()), " ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

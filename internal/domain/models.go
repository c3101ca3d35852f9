package domain

// Domain contains core models shared by the extraction engine and its collaborators.

// UncategorizedLabel is the category assigned when no category source matched.
const UncategorizedLabel = "Uncategorized"

// Headline is one extracted homepage headline.
type Headline struct {
	Category string
	Title    string
	Link     string
}

// Partition identifies the year/month/day a headline file belongs to.
// Values keep the textual form found in the source filename.
type Partition struct {
	Year  string
	Month string
	Day   string
}

package crawler

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/headline-harvester/internal/domain"
)

const (
	snapshotExt = ".html"
	dayLayout   = "2006-01-02"
)

// Layout places raw snapshots and headline files inside the bucket.
type Layout struct {
	RawPrefix   string
	FinalPrefix string
}

// RawKey is the object key of the homepage snapshot of siteID taken on day.
func (l Layout) RawKey(siteID string, day time.Time) string {
	return fmt.Sprintf("%s/%s-%s%s", l.RawPrefix, siteID, day.Format(dayLayout), snapshotExt)
}

// Eligible reports whether key is a raw HTML snapshot that should be parsed.
func (l Layout) Eligible(key string) bool {
	return strings.HasPrefix(key, l.RawPrefix+"/") &&
		!strings.HasPrefix(key, l.FinalPrefix+"/") &&
		strings.HasSuffix(key, snapshotExt)
}

// FinalKey is the partitioned object key of the headline CSV for siteID.
func (l Layout) FinalKey(siteID string, p domain.Partition) string {
	return fmt.Sprintf("%s/periodico=%s/year=%s/month=%s/day=%s/%s-headlines-%s-%s-%s.csv",
		l.FinalPrefix, siteID, p.Year, p.Month, p.Day, siteID, p.Year, p.Month, p.Day)
}

// sitePrefix returns the part of the snapshot filename before the first dash.
func sitePrefix(key string) string {
	name := path.Base(key)
	if i := strings.Index(name, "-"); i >= 0 {
		return name[:i]
	}
	return strings.TrimSuffix(name, snapshotExt)
}

// partitionFromKey reads the date of a "<site>-YYYY-MM-DD.html" snapshot name. ok
// is false, and now is used instead, when the name carries no valid date.
func partitionFromKey(key string, now time.Time) (domain.Partition, bool) {
	name := strings.TrimSuffix(path.Base(key), snapshotExt)
	parts := strings.Split(name, "-")
	if len(parts) >= 4 {
		year, month, day := parts[len(parts)-3], parts[len(parts)-2], parts[len(parts)-1]
		if len(year) == 4 && digits(year) && inRange(month, 1, 12) && inRange(day, 1, 31) {
			return domain.Partition{Year: year, Month: month, Day: day}, true
		}
	}

	return domain.Partition{
		Year:  now.Format("2006"),
		Month: now.Format("01"),
		Day:   now.Format("02"),
	}, false
}

func inRange(s string, lo, hi int) bool {
	if !digits(s) {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= lo && n <= hi
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package crawler

import (
	"testing"
	"time"

	"github.com/samvad-hq/headline-harvester/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLayout_RawKey(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, "headlines/raw/eltiempo-2025-05-30.html", testLayout.RawKey("eltiempo", day))
}

func TestLayout_Eligible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want bool
	}{
		{key: "headlines/raw/eltiempo-2025-05-30.html", want: true},
		{key: "headlines/raw/nested/elespectador-2025-05-30.html", want: true},
		{key: "headlines/raw/eltiempo-2025-05-30.csv", want: false},
		{key: "headlines/final/periodico=eltiempo/eltiempo.html", want: false},
		{key: "headlines/rawish/eltiempo-2025-05-30.html", want: false},
		{key: "other/eltiempo-2025-05-30.html", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.key, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, testLayout.Eligible(tc.key))
		})
	}
}

func TestLayout_EligibleFinalInsideRaw(t *testing.T) {
	t.Parallel()

	l := Layout{RawPrefix: "headlines", FinalPrefix: "headlines/final"}

	assert.True(t, l.Eligible("headlines/eltiempo-2025-05-30.html"))
	assert.False(t, l.Eligible("headlines/final/eltiempo-2025-05-30.html"))
}

func TestLayout_FinalKey(t *testing.T) {
	t.Parallel()

	got := testLayout.FinalKey("eltiempo", domain.Partition{Year: "2025", Month: "05", Day: "30"})

	assert.Equal(t, "headlines/final/periodico=eltiempo/year=2025/month=05/day=30/eltiempo-headlines-2025-05-30.csv", got)
}

func TestSitePrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "eltiempo", sitePrefix("headlines/raw/eltiempo-2025-05-30.html"))
	assert.Equal(t, "publimetro", sitePrefix("headlines/raw/publimetro.html"))
	assert.Equal(t, "", sitePrefix("headlines/raw/-2025-05-30.html"))
}

func TestPartitionFromKey(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	today := domain.Partition{Year: "2026", Month: "01", Day: "02"}

	tests := []struct {
		name  string
		key   string
		want  domain.Partition
		dated bool
	}{
		{name: "dated snapshot", key: "headlines/raw/eltiempo-2025-05-30.html", want: domain.Partition{Year: "2025", Month: "05", Day: "30"}, dated: true},
		{name: "unpadded month and day kept as written", key: "headlines/raw/eltiempo-2025-5-3.html", want: domain.Partition{Year: "2025", Month: "5", Day: "3"}, dated: true},
		{name: "month out of range", key: "headlines/raw/eltiempo-2025-13-30.html", want: today},
		{name: "day out of range", key: "headlines/raw/eltiempo-2025-05-32.html", want: today},
		{name: "two digit year", key: "headlines/raw/eltiempo-25-05-30.html", want: today},
		{name: "too few parts", key: "headlines/raw/eltiempo-2025.html", want: today},
		{name: "non numeric", key: "headlines/raw/eltiempo-abcd-ef-gh.html", want: today},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, dated := partitionFromKey(tc.key, now)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.dated, dated)
		})
	}
}

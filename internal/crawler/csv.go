package crawler

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/samvad-hq/headline-harvester/internal/domain"
)

var csvHeader = []string{"category", "title", "link"}

// EncodeCSV renders headlines as a header row plus one row per headline, with
// CRLF line endings.
func EncodeCSV(headlines []domain.Headline) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, h := range headlines {
		if err := w.Write([]string{h.Category, h.Title, h.Link}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

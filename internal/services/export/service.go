package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/mcoot/skyjoscore/internal/model"
)

// Service formats a session's score table as CSV for download: a header of
// player names in setup order, one row per round in ascending order, and a
// final totals row.
type Service struct{}

// New creates a new export Service
func New() *Service {
	return &Service{}
}

// CSV renders the score table. The first column labels each row
// ("Round 1".."Round N", then "Total").
func (s *Service) CSV(session *model.Session) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	names := session.PlayerNames()

	header := append([]string{"Round"}, names...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, round := range session.Rounds {
		row := make([]string, 0, len(names)+1)
		row = append(row, fmt.Sprintf("Round %d", i+1))
		for _, name := range names {
			row = append(row, strconv.Itoa(round[name]))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	totals := make([]string, 0, len(names)+1)
	totals = append(totals, "Total")
	for _, name := range names {
		totals = append(totals, strconv.Itoa(session.Total(name)))
	}
	if err := w.Write(totals); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for an export taken at the given time
func (s *Service) Filename(now time.Time) string {
	return fmt.Sprintf("skyjo_scores_%s.csv", now.Format("20060102_150405"))
}

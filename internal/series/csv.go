package series

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

var csvHeader = []string{"date", "usd_per_ounce", "vnd_per_gram", "vnd_per_tael"}

// MarshalCSV renders the series as the chart-facing CSV artifact.
func MarshalCSV(s core.HistoricalSeries) ([]byte, error) {
	if len(s) == 0 {
		return nil, core.ErrEmptySeries
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, p := range s {
		rec := []string{
			p.Date.Format("2006-01-02"),
			strconv.FormatFloat(p.USDPerOunce, 'f', 2, 64),
			strconv.FormatFloat(p.VNDPerGram, 'f', 0, 64),
			strconv.FormatFloat(p.VNDPerTael, 'f', 0, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// UnmarshalCSV parses a previously persisted series artifact and
// revalidates its ordering invariants.
func UnmarshalCSV(data []byte) (core.HistoricalSeries, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) < 2 {
		return nil, core.ErrEmptySeries
	}

	points := make([]core.HistoricalPoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("malformed row %v", rec)
		}
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", rec[0], err)
		}
		usd, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing usd price %q: %w", rec[1], err)
		}
		gram, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing vnd/gram %q: %w", rec[2], err)
		}
		tael, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing vnd/tael %q: %w", rec[3], err)
		}
		points = append(points, core.HistoricalPoint{
			Date:        date,
			USDPerOunce: usd,
			VNDPerGram:  gram,
			VNDPerTael:  tael,
		})
	}

	return New(points)
}

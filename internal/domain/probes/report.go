package probes

import (
	"bytes"
	"encoding/csv"
	"slices"
	"strconv"
	"time"
)

// Columns is the fixed CSV header order.
var Columns = []string{"service", "deployment", "version", "model_family", "start_time", "duration", "length"}

const (
	StartTimeLayout = "2006-01-02 15:04:05.000000"
	filenameLayout  = "20060102-150405"
)

// Report is the ordered set of probe results produced by one run.
type Report struct {
	rows []ProbeResult
}

func (r *Report) Append(res ProbeResult) { r.rows = append(r.rows, res) }

func (r *Report) Rows() []ProbeResult { return slices.Clone(r.rows) }

func (r *Report) Len() int { return len(r.rows) }

// CSV renders the report, header first. An empty report is header only.
func (r *Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, row := range r.rows {
		record := []string{
			row.Service,
			row.Deployment,
			row.Version,
			row.ModelFamily,
			row.StartTime.UTC().Format(StartTimeLayout),
			strconv.FormatFloat(row.Duration, 'f', -1, 64),
			strconv.Itoa(row.Length),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stats summarises durations of a report.
type Stats struct {
	MaxDuration  float64 `json:"max_duration"`
	MaxService   string  `json:"max_service"`
	MinDuration  float64 `json:"min_duration"`
	MinService   string  `json:"min_service"`
	MeanDuration float64 `json:"mean_duration"`
}

// Stats returns false for an empty report. Ties resolve to the first row.
func (r *Report) Stats() (Stats, bool) {
	if len(r.rows) == 0 {
		return Stats{}, false
	}
	first := r.rows[0]
	s := Stats{
		MaxDuration: first.Duration,
		MaxService:  first.Service,
		MinDuration: first.Duration,
		MinService:  first.Service,
	}
	var sum float64
	for _, row := range r.rows {
		sum += row.Duration
		if row.Duration > s.MaxDuration {
			s.MaxDuration, s.MaxService = row.Duration, row.Service
		}
		if row.Duration < s.MinDuration {
			s.MinDuration, s.MinService = row.Duration, row.Service
		}
	}
	s.MeanDuration = sum / float64(len(r.rows))
	return s, true
}

// LogFilename names the artifact of a run, e.g. call_log20240131-070500.csv.
func LogFilename(t time.Time) string {
	return "call_log" + t.Format(filenameLayout) + ".csv"
}

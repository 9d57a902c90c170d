package probes

import (
	"fmt"
	"strconv"
	"strings"
)

// FamilyTiming is the wall time of one model family run.
type FamilyTiming struct {
	ModelFamily string  `json:"model_family"`
	Seconds     float64 `json:"seconds"`
	Rows        int     `json:"rows"`
	URL         string  `json:"url,omitempty"`
}

type Summary struct {
	Runs []FamilyTiming `json:"runs"`
}

func (s Summary) Total() float64 {
	var total float64
	for _, r := range s.Runs {
		total += r.Seconds
	}
	return total
}

// String renders the plain-text response of the HTTP trigger.
func (s Summary) String() string {
	parts := make([]string, 0, len(s.Runs))
	for _, r := range s.Runs {
		parts = append(parts, fmt.Sprintf("Test for %s took %s seconds", r.ModelFamily, formatSeconds(r.Seconds)))
	}
	return fmt.Sprintf("All tests run successfully: %s. Total duration %s seconds.",
		strings.Join(parts, ", "), formatSeconds(s.Total()))
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

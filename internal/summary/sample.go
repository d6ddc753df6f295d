package summary

import (
	"encoding/json"

	"github.com/renato-web/Profluxo/internal/analytics"
	"github.com/renato-web/Profluxo/internal/domain"
)

// MaxSample caps how many entries are sent to the model.
const MaxSample = 50

// SampleRow is the reduced form of an entry sent to the model.
type SampleRow struct {
	Role      domain.JobTitle `json:"role"`
	TaskCount int             `json:"taskCount"`
	Date      string          `json:"date"`
}

// BuildSample reduces logs to at most MaxSample rows, most recent first.
// The input is not modified. An empty input yields an empty, non-nil slice
// so it encodes as [].
func BuildSample(logs []domain.TaskLog) []SampleRow {
	recent := analytics.SortTable(logs, analytics.SortDesc)
	if len(recent) > MaxSample {
		recent = recent[:MaxSample]
	}
	rows := make([]SampleRow, 0, len(recent))
	for _, l := range recent {
		rows = append(rows, SampleRow{Role: l.Role, TaskCount: l.TaskCount(), Date: l.Date})
	}
	return rows
}

func encodeSample(rows []SampleRow) ([]byte, error) {
	return json.Marshal(rows)
}

package analytics

import (
	"fmt"
	"time"

	"github.com/renato-web/Profluxo/internal/domain"
)

// Period selects the time window of the dashboard.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
)

// ParsePeriod accepts "all" or "today".
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodAll, PeriodToday:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q: expected all or today", s)
}

// Toggle returns the other period.
func (p Period) Toggle() Period {
	if p == PeriodToday {
		return PeriodAll
	}
	return PeriodToday
}

// FilterByPeriod returns logs unchanged for PeriodAll. For PeriodToday it keeps
// entries dated on now's calendar day in now's location. The input slice is
// never modified.
func FilterByPeriod(logs []domain.TaskLog, period Period, now time.Time) []domain.TaskLog {
	if period != PeriodToday {
		return logs
	}
	today := domain.LocalDay(now)
	out := make([]domain.TaskLog, 0, len(logs))
	for _, l := range logs {
		if l.Date == today {
			out = append(out, l)
		}
	}
	return out
}

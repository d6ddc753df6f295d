package analytics

import (
	"time"

	"github.com/renato-web/Profluxo/internal/domain"
)

// Params are the two presentation parameters of the dashboard.
type Params struct {
	Period Period
	Order  SortOrder
}

// DefaultParams matches the dashboard's initial state.
func DefaultParams() Params {
	return Params{Period: PeriodAll, Order: SortDesc}
}

// View is everything the dashboard renders, derived from one log collection.
type View struct {
	Params     Params
	Filtered   []domain.TaskLog
	ByRole     []Point
	ByDate     []Point
	ByUser     []Point
	Table      []domain.TaskLog
	TotalTasks int
	Entries    int
}

// Build derives the dashboard view. It holds no state between calls.
func Build(logs []domain.TaskLog, p Params, now time.Time) View {
	if p.Period == "" {
		p.Period = PeriodAll
	}
	if p.Order == "" {
		p.Order = SortDesc
	}
	filtered := FilterByPeriod(logs, p.Period, now)
	return View{
		Params:     p,
		Filtered:   filtered,
		ByRole:     ByRole(filtered),
		ByDate:     ByDate(filtered),
		ByUser:     ByUser(filtered),
		Table:      SortTable(filtered, p.Order),
		TotalTasks: TotalTasks(filtered),
		Entries:    len(filtered),
	}
}

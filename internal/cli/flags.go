package cli

import (
	"fmt"

	"github.com/renato-web/Profluxo/internal/analytics"
	"github.com/spf13/pflag"
)

// viewMode is the dashboard layout.
type viewMode string

const (
	viewCharts viewMode = "charts"
	viewTable  viewMode = "table"
)

func (v viewMode) toggle() viewMode {
	if v == viewTable {
		return viewCharts
	}
	return viewTable
}

// periodValue adapts analytics.Period to pflag.
type periodValue struct{ p *analytics.Period }

var _ pflag.Value = periodValue{}

func (v periodValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v periodValue) Set(s string) error {
	p, err := analytics.ParsePeriod(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (periodValue) Type() string { return "period" }

// sortValue adapts analytics.SortOrder to pflag.
type sortValue struct{ o *analytics.SortOrder }

var _ pflag.Value = sortValue{}

func (v sortValue) String() string {
	if v.o == nil {
		return ""
	}
	return string(*v.o)
}

func (v sortValue) Set(s string) error {
	o, err := analytics.ParseSortOrder(s)
	if err != nil {
		return err
	}
	*v.o = o
	return nil
}

func (sortValue) Type() string { return "order" }

// viewValue adapts viewMode to pflag.
type viewValue struct{ v *viewMode }

var _ pflag.Value = viewValue{}

func (v viewValue) String() string {
	if v.v == nil {
		return ""
	}
	return string(*v.v)
}

func (v viewValue) Set(s string) error {
	switch viewMode(s) {
	case viewCharts, viewTable:
		*v.v = viewMode(s)
		return nil
	}
	return fmt.Errorf("invalid view %q: expected charts or table", s)
}

func (viewValue) Type() string { return "view" }

// addDashboardFlags registers --period and --sort on fs.
func addDashboardFlags(fs *pflag.FlagSet, p *analytics.Params) {
	fs.Var(periodValue{&p.Period}, "period", "Time window: all or today")
	fs.Var(sortValue{&p.Order}, "sort", "Table order: desc (newest first) or asc")
}

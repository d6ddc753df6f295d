package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/renato-web/Profluxo/internal/domain"
)

// SortOrder is the direction of the table view.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc".
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortAsc, SortDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("invalid sort order %q: expected asc or desc", s)
}

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// SortTable returns a sorted copy of logs: by date, then by numeric id.
// SortDesc reverses both keys.
func SortTable(logs []domain.TaskLog, order SortOrder) []domain.TaskLog {
	out := make([]domain.TaskLog, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		c := compareEntries(out[i], out[j])
		if order == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareEntries(a, b domain.TaskLog) int {
	if a.Date != b.Date {
		if a.Date < b.Date {
			return -1
		}
		return 1
	}
	return compareIDs(a.ID, b.ID)
}

// compareIDs orders numeric ids numerically. Ids that are not integers sort
// after numeric ones and among themselves as strings.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

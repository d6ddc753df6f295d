package analytics

import (
	"sort"

	"github.com/renato-web/Profluxo/internal/domain"
)

// Point is one labelled value of a chart series.
type Point struct {
	Name  string
	Value int
}

// GroupSumByKey maps key(entry) to the summed task count of its entries.
func GroupSumByKey(logs []domain.TaskLog, key func(domain.TaskLog) string) map[string]int {
	sums := make(map[string]int)
	for _, l := range logs {
		sums[key(l)] += l.TaskCount()
	}
	return sums
}

// TotalTasks sums the task count of every entry.
func TotalTasks(logs []domain.TaskLog) int {
	total := 0
	for _, l := range logs {
		total += l.TaskCount()
	}
	return total
}

func byRoleKey(l domain.TaskLog) string { return string(l.Role) }
func byDateKey(l domain.TaskLog) string { return l.Date }
func byUserKey(l domain.TaskLog) string { return l.User }

// ByRole returns task totals per job title, ordered by title.
func ByRole(logs []domain.TaskLog) []Point {
	points := toPoints(GroupSumByKey(logs, byRoleKey))
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points
}

// ByDate returns task totals per day in ascending date order.
func ByDate(logs []domain.TaskLog) []Point {
	points := toPoints(GroupSumByKey(logs, byDateKey))
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points
}

// ByUser returns task totals per user, highest first. Equal totals are
// ordered by user name.
func ByUser(logs []domain.TaskLog) []Point {
	points := toPoints(GroupSumByKey(logs, byUserKey))
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

func toPoints(sums map[string]int) []Point {
	points := make([]Point, 0, len(sums))
	for name, v := range sums {
		points = append(points, Point{Name: name, Value: v})
	}
	return points
}

package analytics

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/renato-web/Profluxo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func entry(id, date, user string, role domain.JobTitle, tasks ...string) domain.TaskLog {
	return domain.TaskLog{ID: id, Date: date, User: user, Role: role, Tasks: tasks, ProductivityScore: 100}
}

func sampleLogs() []domain.TaskLog {
	return []domain.TaskLog{
		entry("4", "2026-10-17", "Renato", domain.JobWebDesigner, "a", "b"),
		entry("3", "2026-10-16", "Brena", domain.JobTrafficManager, "c"),
		entry("2", "2026-10-17", "Everson", domain.JobDesigner, "d", "e", "f"),
		entry("1", "2026-10-15", "Renato", domain.JobWebDesigner, "g"),
	}
}

func TestFilterByPeriod_All_IsIdentity(t *testing.T) {
	logs := sampleLogs()
	got := FilterByPeriod(logs, PeriodAll, time.Now())
	assert.Equal(t, logs, got)
}

func TestFilterByPeriod_Today_UsesLocalCalendarDay(t *testing.T) {
	logs := sampleLogs()
	// 23:30 in Fortaleza is already the 18th in UTC.
	now := time.Date(2026, 10, 17, 23, 30, 0, 0, brt)

	got := FilterByPeriod(logs, PeriodToday, now)

	require.Len(t, got, 2)
	for _, l := range got {
		assert.Equal(t, "2026-10-17", l.Date)
	}
	assert.Empty(t, FilterByPeriod(logs, PeriodToday, now.UTC()))
}

func TestFilterByPeriod_DoesNotMutateInput(t *testing.T) {
	logs := sampleLogs()
	snapshot := append([]domain.TaskLog(nil), logs...)

	_ = FilterByPeriod(logs, PeriodToday, time.Date(2026, 10, 17, 9, 0, 0, 0, brt))
	_ = SortTable(logs, SortAsc)

	if diff := cmp.Diff(snapshot, logs); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestGroupedViews(t *testing.T) {
	logs := sampleLogs()

	wantRole := []Point{
		{Name: string(domain.JobDesigner), Value: 3},
		{Name: string(domain.JobTrafficManager), Value: 1},
		{Name: string(domain.JobWebDesigner), Value: 3},
	}
	if diff := cmp.Diff(wantRole, ByRole(logs)); diff != "" {
		t.Errorf("ByRole (-want +got):\n%s", diff)
	}

	wantDate := []Point{
		{Name: "2026-10-15", Value: 1},
		{Name: "2026-10-16", Value: 1},
		{Name: "2026-10-17", Value: 5},
	}
	if diff := cmp.Diff(wantDate, ByDate(logs)); diff != "" {
		t.Errorf("ByDate (-want +got):\n%s", diff)
	}

	// Everson and Renato tie at 3; the tie is broken by name.
	wantUser := []Point{
		{Name: "Everson", Value: 3},
		{Name: "Renato", Value: 3},
		{Name: "Brena", Value: 1},
	}
	if diff := cmp.Diff(wantUser, ByUser(logs)); diff != "" {
		t.Errorf("ByUser (-want +got):\n%s", diff)
	}
}

func TestGroupedViews_EmptyInput(t *testing.T) {
	assert.Empty(t, ByRole(nil))
	assert.Empty(t, ByDate(nil))
	assert.Empty(t, ByUser(nil))
	assert.Equal(t, 0, TotalTasks(nil))
	assert.Empty(t, GroupSumByKey(nil, byUserKey))
}

func TestSortTable_DateThenNumericID(t *testing.T) {
	logs := []domain.TaskLog{
		entry("10", "2026-10-17", "a", domain.JobDesigner, "x"),
		entry("9", "2026-10-17", "b", domain.JobDesigner, "x"),
		entry("11", "2026-10-16", "c", domain.JobDesigner, "x"),
	}

	asc := SortTable(logs, SortAsc)
	assert.Equal(t, []string{"11", "9", "10"}, ids(asc))

	desc := SortTable(logs, SortDesc)
	assert.Equal(t, []string{"10", "9", "11"}, ids(desc))
}

func TestSortTable_NonNumericIDsAfterNumeric(t *testing.T) {
	logs := []domain.TaskLog{
		entry("b", "2026-10-17", "a", domain.JobDesigner, "x"),
		entry("2", "2026-10-17", "a", domain.JobDesigner, "x"),
		entry("a", "2026-10-17", "a", domain.JobDesigner, "x"),
	}
	assert.Equal(t, []string{"2", "a", "b"}, ids(SortTable(logs, SortAsc)))
}

func TestBuild_DefaultsAndTotals(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, brt)

	v := Build(sampleLogs(), Params{}, now)
	assert.Equal(t, DefaultParams(), v.Params)
	assert.Equal(t, 4, v.Entries)
	assert.Equal(t, 7, v.TotalTasks)
	assert.Equal(t, "4", v.Table[0].ID)

	today := Build(sampleLogs(), Params{Period: PeriodToday, Order: SortAsc}, now)
	assert.Equal(t, 2, today.Entries)
	assert.Equal(t, 5, today.TotalTasks)
	assert.Equal(t, []string{"2", "4"}, ids(today.Table))
	assert.Len(t, today.ByDate, 1)
}

func TestParseParams(t *testing.T) {
	p, err := ParsePeriod("today")
	require.NoError(t, err)
	assert.Equal(t, PeriodToday, p)
	assert.Equal(t, PeriodAll, p.Toggle())

	_, err = ParsePeriod("week")
	assert.Error(t, err)

	o, err := ParseSortOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, o.Toggle())

	_, err = ParseSortOrder("up")
	assert.Error(t, err)
}

// ── property tests ───────────────────────────────────────────────────────────

func randomLogs(rng *rand.Rand, now time.Time) []domain.TaskLog {
	users := []string{"Renato", "Brena", "Everson", "Nayanne"}
	n := rng.Intn(30)
	logs := make([]domain.TaskLog, n)
	for i := range logs {
		day := now.AddDate(0, 0, -rng.Intn(4))
		tasks := make([]string, rng.Intn(5)+1)
		for k := range tasks {
			tasks[k] = fmt.Sprintf("t%d", k)
		}
		logs[i] = domain.TaskLog{
			ID:    strconv.Itoa(rng.Intn(1000)*100 + i),
			Date:  domain.LocalDay(day),
			User:  users[rng.Intn(len(users))],
			Role:  domain.JobTitles[rng.Intn(len(domain.JobTitles))],
			Tasks: tasks,
		}
	}
	return logs
}

func TestProperty_GroupSumsPreserveTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, brt)

	for trial := 0; trial < 200; trial++ {
		logs := randomLogs(rng, now)
		total := TotalTasks(logs)

		for name, key := range map[string]func(domain.TaskLog) string{
			"role": byRoleKey, "date": byDateKey, "user": byUserKey,
		} {
			sum := 0
			for _, v := range GroupSumByKey(logs, key) {
				sum += v
			}
			assert.Equal(t, total, sum, "trial %d: %s grouping lost tasks", trial, name)
		}
	}
}

func TestProperty_TodayIsSubsetOfAll(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	now := time.Date(2026, 10, 17, 0, 15, 0, 0, brt)

	for trial := 0; trial < 200; trial++ {
		logs := randomLogs(rng, now)
		all := FilterByPeriod(logs, PeriodAll, now)
		today := FilterByPeriod(logs, PeriodToday, now)

		assert.LessOrEqual(t, len(today), len(all))
		wantToday := 0
		for _, l := range logs {
			if l.Date == "2026-10-17" {
				wantToday++
			}
		}
		assert.Len(t, today, wantToday, "trial %d", trial)
		for _, l := range today {
			assert.Contains(t, all, l)
			assert.Equal(t, "2026-10-17", l.Date)
		}
	}
}

func TestProperty_SortIdempotentAndReversible(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, brt)

	for trial := 0; trial < 200; trial++ {
		logs := randomLogs(rng, now)

		asc := SortTable(logs, SortAsc)
		desc := SortTable(logs, SortDesc)

		assert.Equal(t, ids(asc), ids(SortTable(asc, SortAsc)), "trial %d: asc not idempotent", trial)
		assert.Equal(t, ids(desc), ids(SortTable(desc, SortDesc)), "trial %d: desc not idempotent", trial)
		assert.Equal(t, ids(asc), reversed(ids(desc)), "trial %d: reverse(desc) != asc", trial)
	}
}

func ids(logs []domain.TaskLog) []string {
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.ID
	}
	return out
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "17/10/2026", FormatDay("2026-10-17"))
	assert.Equal(t, "17/10", ShortDay("2026-10-17"))
	assert.Equal(t, "not-a-day", FormatDay("not-a-day"))
	assert.Equal(t, "", ShortDay(""))
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2026, 10, 17, 23, 30, 0, 0, time.Local)
	assert.Equal(t, "Hoje, 17/10/2026", DayLabel("2026-10-17", now))
	assert.Equal(t, "16/10/2026", DayLabel("2026-10-16", now))
}

func TestTaskPreview(t *testing.T) {
	tests := []struct {
		name  string
		tasks []string
		want  string
	}{
		{"empty", nil, ""},
		{"one", []string{"a"}, "a"},
		{"at limit", []string{"a", "b", "c"}, "a, b, c"},
		{"over limit", []string{"a", "b", "c", "d", "e"}, "a, b, c +2 outras"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(TaskPreview(tt.tasks)))
		})
	}
}

func TestTaskCount(t *testing.T) {
	assert.Equal(t, "0 tarefas", TaskCount(0))
	assert.Equal(t, "1 tarefa", TaskCount(1))
	assert.Equal(t, "4 tarefas", TaskCount(4))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12", stripANSI(TruncID("12")))
	assert.Equal(t, "abcdefgh", stripANSI(TruncID("abcdefghijkl")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Jornalista", Truncate("Jornalista", 20))
	assert.Equal(t, "Jorn…", Truncate("Jornalista", 5))
	assert.Equal(t, "Gestão…", Truncate("Gestão de equipe", 7))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestRenderTableAlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{Bold("long cell"), "x"}, {"s", "y"}},
	))
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, "A          B", lines[0])
	assert.Equal(t, "long cell  x", lines[2])
	assert.Equal(t, "s          y", lines[3])
}

func TestRenderTableNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

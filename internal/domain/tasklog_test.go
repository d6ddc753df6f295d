package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTaskLogValidate(t *testing.T) {
	valid := NewTaskLog{Date: "2026-10-17", User: "Renato", Role: JobWebDesigner, Tasks: []string{"x"}}
	assert.NoError(t, valid.Validate())

	noTasks := valid
	noTasks.Tasks = nil
	assert.ErrorIs(t, noTasks.Validate(), ErrNoTasks)

	noUser := valid
	noUser.User = ""
	assert.ErrorIs(t, noUser.Validate(), ErrUserRequired)

	badDate := valid
	badDate.Date = "17/10/2026"
	assert.ErrorIs(t, badDate.Validate(), ErrInvalidDay)
}

func TestLocalDay_UsesTimeLocation(t *testing.T) {
	fortaleza := time.FixedZone("BRT", -3*60*60)
	lateEvening := time.Date(2026, 10, 17, 23, 30, 0, 0, fortaleza)

	assert.Equal(t, "2026-10-17", LocalDay(lateEvening))
	assert.Equal(t, "2026-10-18", LocalDay(lateEvening.UTC()))
}

func TestTaskCount(t *testing.T) {
	assert.Equal(t, 2, TaskLog{Tasks: []string{"a", "b"}}.TaskCount())
	assert.Equal(t, 0, TaskLog{}.TaskCount())
}

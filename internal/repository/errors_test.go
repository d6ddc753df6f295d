package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		message string
		want    error
	}{
		{"missing relation code", "42P01", "relation \"public.task_logs\" does not exist", ErrSchemaMissing},
		{"missing column code", "42703", "column \"productivityScore\" does not exist", ErrSchemaMissing},
		{"postgrest schema cache", "PGRST204", "Could not find the 'tasks' column of 'task_logs' in the schema cache", ErrSchemaMissing},
		{"sqlite missing table", "", "SQL logic error: no such table: task_logs (1)", ErrSchemaMissing},
		{"rls code", "42501", "new row violates row-level security policy for table \"task_logs\"", ErrPermissionDenied},
		{"policy text only", "", "violates row-level security POLICY", ErrPermissionDenied},
		{"permission on relation", "", "permission denied for relation task_logs", ErrPermissionDenied},
		{"transient", "503", "upstream connect error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("op", tt.code, tt.message)
			if tt.want == nil {
				assert.Nil(t, err.Kind)
				assert.True(t, IsTransient(err))
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, IsTransient(err))
		})
	}
}

func TestError_MessageIncludesCode(t *testing.T) {
	err := Classify("inserting task log", "42501", "denied")
	assert.Equal(t, "inserting task log: denied (code 42501)", err.Error())

	err = Classify("selecting task logs", "", "boom")
	assert.Equal(t, "selecting task logs: boom", err.Error())
}

func TestClassifySQL_PQError(t *testing.T) {
	err := classifySQL("inserting task log", &pq.Error{Code: "42501", Message: "permission denied for table task_logs"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = classifySQL("selecting task logs", fmt.Errorf("wrapped: %w", &pq.Error{Code: "42P01", Message: "relation \"task_logs\" does not exist"}))
	assert.ErrorIs(t, err, ErrSchemaMissing)

	var se *Error
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "42P01", se.Code)
}

func TestIsTransient_NonStoreError(t *testing.T) {
	assert.False(t, IsTransient(errors.New("plain")))
}

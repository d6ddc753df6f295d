package domain

import "time"

// Session is the active identity. Managers carry a job title too, but it is
// never used to pick a task catalog.
type Session struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       UserRole  `json:"role"`
	Job        JobTitle  `json:"job"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// IsManager reports whether the session has the aggregated-view role.
func (s *Session) IsManager() bool {
	return s != nil && s.Role == RoleManager
}

// Draft is the day's task selection on the form.
type Draft struct {
	Date      string   `json:"date"`
	Tasks     []string `json:"tasks"`
	Submitted bool     `json:"submitted"`
}

// Toggle flips membership of task. Order of first selection is preserved.
func (d *Draft) Toggle(task string) (selected bool) {
	for i, t := range d.Tasks {
		if t == task {
			d.Tasks = append(d.Tasks[:i:i], d.Tasks[i+1:]...)
			return false
		}
	}
	d.Tasks = append(d.Tasks, task)
	return true
}

// Has reports whether task is selected.
func (d *Draft) Has(task string) bool {
	for _, t := range d.Tasks {
		if t == task {
			return true
		}
	}
	return false
}

// Reset clears the selection and the submitted flag.
func (d *Draft) Reset() {
	d.Tasks = nil
	d.Submitted = false
}

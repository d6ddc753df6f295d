package domain

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Collaborator is one entry of the login roster.
type Collaborator struct {
	Name string   `yaml:"name"`
	Job  JobTitle `yaml:"job"`
}

type roleTasks struct {
	Job   JobTitle `yaml:"job"`
	Tasks []string `yaml:"tasks"`
}

// Catalog is the static job→tasks table plus the staff roster.
type Catalog struct {
	Roles         []roleTasks    `yaml:"roles"`
	Collaborators []Collaborator `yaml:"collaborators"`
	Manager       Collaborator   `yaml:"manager"`

	byJob map[JobTitle][]string
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog compiled into the binary.
// It panics if the embedded file is malformed, which tests catch.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(catalogYAML)
	})
	if defaultCatalogErr != nil {
		panic(defaultCatalogErr)
	}
	return defaultCatalog
}

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c.byJob = make(map[JobTitle][]string, len(c.Roles))
	for _, r := range c.Roles {
		if !ValidJobTitle(r.Job) {
			return nil, fmt.Errorf("catalog: unknown job title %q", r.Job)
		}
		if len(r.Tasks) == 0 {
			return nil, fmt.Errorf("catalog: job %q has no tasks", r.Job)
		}
		c.byJob[r.Job] = r.Tasks
	}
	for _, col := range c.Collaborators {
		if _, ok := c.byJob[col.Job]; !ok {
			return nil, fmt.Errorf("catalog: collaborator %q has job %q without tasks", col.Name, col.Job)
		}
	}
	if c.Manager.Name == "" {
		return nil, fmt.Errorf("catalog: manager identity is required")
	}
	return &c, nil
}

// TasksFor returns a copy of the checklist for job; nil for unknown jobs.
func (c *Catalog) TasksFor(job JobTitle) []string {
	tasks := c.byJob[job]
	if tasks == nil {
		return nil
	}
	out := make([]string, len(tasks))
	copy(out, tasks)
	return out
}

// HasTask reports whether task belongs to job's checklist.
func (c *Catalog) HasTask(job JobTitle, task string) bool {
	for _, t := range c.byJob[job] {
		if t == task {
			return true
		}
	}
	return false
}

// FindCollaborator looks a roster entry up by name, ignoring case.
func (c *Catalog) FindCollaborator(name string) (Collaborator, bool) {
	for _, col := range c.Collaborators {
		if strings.EqualFold(col.Name, name) {
			return col, true
		}
	}
	return Collaborator{}, false
}

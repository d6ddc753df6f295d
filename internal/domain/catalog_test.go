package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_CoversEveryJobTitle(t *testing.T) {
	c := DefaultCatalog()
	for _, job := range JobTitles {
		assert.NotEmpty(t, c.TasksFor(job), "job %s", job)
	}
}

func TestDefaultCatalog_Roster(t *testing.T) {
	c := DefaultCatalog()

	renato, ok := c.FindCollaborator("renato")
	require.True(t, ok)
	assert.Equal(t, "Renato", renato.Name)
	assert.Equal(t, JobWebDesigner, renato.Job)

	_, ok = c.FindCollaborator("Nobody")
	assert.False(t, ok)

	assert.Equal(t, "Diretoria Executiva", c.Manager.Name)
	assert.Equal(t, JobMktManager, c.Manager.Job)
}

func TestCatalog_TasksForReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	tasks := c.TasksFor(JobWebDesigner)
	tasks[0] = "mutated"
	assert.NotEqual(t, "mutated", c.TasksFor(JobWebDesigner)[0])
}

func TestCatalog_HasTask(t *testing.T) {
	c := DefaultCatalog()
	assert.True(t, c.HasTask(JobWebDesigner, "Correção de bugs no front-end"))
	assert.False(t, c.HasTask(JobDesigner, "Correção de bugs no front-end"))
}

func TestParseCatalog_RejectsUnknownJob(t *testing.T) {
	_, err := ParseCatalog([]byte(`
roles:
  - job: "Astronaut"
    tasks: ["fly"]
manager:
  name: "Boss"
  job: "Gestor de MKT"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Astronaut")
}

func TestParseCatalog_RejectsCollaboratorWithoutTasks(t *testing.T) {
	_, err := ParseCatalog([]byte(`
roles:
  - job: "Designer"
    tasks: ["draw"]
collaborators:
  - name: "Ana"
    job: "Jornalista"
manager:
  name: "Boss"
  job: "Gestor de MKT"
`))
	require.Error(t, err)
}

func TestParseJobTitleAndRole(t *testing.T) {
	j, err := ParseJobTitle("Editor de Vídeo")
	require.NoError(t, err)
	assert.Equal(t, JobVideoEditor, j)

	_, err = ParseJobTitle("editor")
	assert.Error(t, err)

	r, err := ParseUserRole("manager")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, r)

	_, err = ParseUserRole("admin")
	assert.Error(t, err)
}

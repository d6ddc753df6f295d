package domain

import "fmt"

type UserRole string

const (
	RoleCollaborator UserRole = "Colaborador"
	RoleManager      UserRole = "Gestor/Diretor"
)

// ParseUserRole accepts the display value or a short alias.
func ParseUserRole(s string) (UserRole, error) {
	switch s {
	case string(RoleCollaborator), "collaborator", "colaborador":
		return RoleCollaborator, nil
	case string(RoleManager), "manager", "gestor":
		return RoleManager, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type JobTitle string

const (
	JobWebDesigner    JobTitle = "Web Designer"
	JobTrafficManager JobTitle = "Gestor(a) de Tráfego"
	JobJournalist     JobTitle = "Jornalista"
	JobMktManager     JobTitle = "Gestor de MKT"
	JobVideoEditor    JobTitle = "Editor de Vídeo"
	JobDesigner       JobTitle = "Designer"
	JobUndefined      JobTitle = "Não definido"
)

// JobTitles lists every job title in display order.
var JobTitles = []JobTitle{
	JobMktManager,
	JobTrafficManager,
	JobWebDesigner,
	JobJournalist,
	JobVideoEditor,
	JobDesigner,
	JobUndefined,
}

// ValidJobTitle reports whether j is one of the known titles.
func ValidJobTitle(j JobTitle) bool {
	for _, known := range JobTitles {
		if known == j {
			return true
		}
	}
	return false
}

// ParseJobTitle returns the job title matching s exactly.
func ParseJobTitle(s string) (JobTitle, error) {
	j := JobTitle(s)
	if !ValidJobTitle(j) {
		return "", fmt.Errorf("unknown job title %q", s)
	}
	return j, nil
}

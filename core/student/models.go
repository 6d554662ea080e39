package student

import (
	"github.com/trezcool/amenagement/core"
)

// Statuses
const (
	StatusActive    Status = "actif"
	StatusInactive  Status = "inactif"
	StatusGraduated Status = "diplome"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusGraduated}

// Suggested values for the free-text filiere and niveau fields.
var (
	Filieres = []string{
		"Informatique", "Génie Civil", "Architecture", "Électronique",
		"Mécanique", "Gestion", "Marketing", "Droit",
	}
	Niveaux = []string{"Licence 1", "Licence 2", "Licence 3", "Master 1", "Master 2", "Doctorat"}
)

type Status string

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusGraduated:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Actif"
	case StatusInactive:
		return "Inactif"
	case StatusGraduated:
		return "Diplômé"
	}
	return string(s)
}

type Student struct {
	ID              string    `json:"id" yaml:"id"`
	Nom             string    `json:"nom" yaml:"nom"`
	Prenom          string    `json:"prenom" yaml:"prenom"`
	Email           string    `json:"email" yaml:"email"`
	Telephone       string    `json:"telephone" yaml:"telephone"`
	Adresse         string    `json:"adresse" yaml:"adresse"`
	DateNaissance   core.Date `json:"dateNaissance" yaml:"dateNaissance"`
	Filiere         string    `json:"filiere" yaml:"filiere"`
	Niveau          string    `json:"niveau" yaml:"niveau"`
	Statut          Status    `json:"statut" yaml:"statut"`
	DateInscription core.Date `json:"dateInscription" yaml:"dateInscription"`
}

func (s Student) FullName() string {
	return s.Prenom + " " + s.Nom
}

// NewStudent contains the information needed to create or replace a Student.
type NewStudent struct {
	Nom             string    `json:"nom" validate:"required"`
	Prenom          string    `json:"prenom" validate:"required"`
	Email           string    `json:"email" validate:"required,emailshape"`
	Telephone       string    `json:"telephone" validate:"required"`
	Adresse         string    `json:"adresse" validate:"required"`
	DateNaissance   core.Date `json:"dateNaissance" validate:"required"`
	Filiere         string    `json:"filiere" validate:"required"`
	Niveau          string    `json:"niveau" validate:"required"`
	Statut          Status    `json:"statut" validate:"enum"`
	DateInscription core.Date `json:"dateInscription"`
}

// UpdateStudent replaces every field of an existing Student.
// The identity is kept, and so is DateInscription when left blank.
type UpdateStudent = NewStudent

func (ns *NewStudent) clean() {
	ns.Nom = core.CleanString(ns.Nom)
	ns.Prenom = core.CleanString(ns.Prenom)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Telephone = core.CleanString(ns.Telephone)
	ns.Adresse = core.CleanString(ns.Adresse)
	ns.Filiere = core.CleanString(ns.Filiere)
	ns.Niveau = core.CleanString(ns.Niveau)
	if ns.Statut == "" {
		ns.Statut = StatusActive
	}
}

func (ns NewStudent) toStudent(id string) Student {
	return Student{
		ID:              id,
		Nom:             ns.Nom,
		Prenom:          ns.Prenom,
		Email:           ns.Email,
		Telephone:       ns.Telephone,
		Adresse:         ns.Adresse,
		DateNaissance:   ns.DateNaissance,
		Filiere:         ns.Filiere,
		Niveau:          ns.Niveau,
		Statut:          ns.Statut,
		DateInscription: ns.DateInscription,
	}
}

// QueryFilter narrows a listing. Empty fields match everything.
// Search is a case-insensitive match on one of Nom, Prenom or Email.
type QueryFilter struct {
	Search  string `query:"search"`
	Statut  Status `query:"statut"`
	Filiere string `query:"filiere"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Filiere = core.CleanString(qf.Filiere)
}

func (qf QueryFilter) Match(s Student) bool {
	if qf.Statut != "" && s.Statut != qf.Statut {
		return false
	}
	if qf.Filiere != "" && s.Filiere != qf.Filiere {
		return false
	}
	return core.ContainsFold(s.Nom, qf.Search) ||
		core.ContainsFold(s.Prenom, qf.Search) ||
		core.ContainsFold(s.Email, qf.Search)
}

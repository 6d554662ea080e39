package amenagement

import (
	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/service"
)

// Statuses
const (
	StatusPlanned    Status = "planifie"
	StatusInProgress Status = "en_cours"
	StatusDone       Status = "termine"
	StatusCancelled  Status = "annule"
)

var Statuses = []Status{StatusPlanned, StatusInProgress, StatusDone, StatusCancelled}

type Status string

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusPlanned:
		return "Planifié"
	case StatusInProgress:
		return "En cours"
	case StatusDone:
		return "Terminé"
	case StatusCancelled:
		return "Annulé"
	}
	return string(s)
}

// Amenagement is a work order applying a Service to a Lot.
// CodeLot and CodeServ are plain references; they may match nothing.
type Amenagement struct {
	ID              string    `json:"id" yaml:"id"`
	CodeLot         string    `json:"codeLot" yaml:"codeLot"`
	CodeServ        string    `json:"codeServ" yaml:"codeServ"`
	DateAmenagement core.Date `json:"dateAmenagement" yaml:"dateAmenagement"`
	Statut          Status    `json:"statut" yaml:"statut"`
	Observations    string    `json:"observations,omitempty" yaml:"observations,omitempty"`
}

// NewAmenagement contains the information needed to create or replace an Amenagement.
type NewAmenagement struct {
	CodeLot         string    `json:"codeLot" validate:"required"`
	CodeServ        string    `json:"codeServ" validate:"required"`
	DateAmenagement core.Date `json:"dateAmenagement" validate:"required"`
	Statut          Status    `json:"statut" validate:"enum"`
	Observations    string    `json:"observations"`
}

// UpdateAmenagement replaces every field of an existing Amenagement. The identity is kept.
type UpdateAmenagement = NewAmenagement

func (na *NewAmenagement) clean() {
	na.CodeLot = core.CleanString(na.CodeLot)
	na.CodeServ = core.CleanString(na.CodeServ)
	na.Observations = core.CleanString(na.Observations)
	if na.Statut == "" {
		na.Statut = StatusPlanned
	}
}

func (na NewAmenagement) toAmenagement(id string) Amenagement {
	return Amenagement{
		ID:              id,
		CodeLot:         na.CodeLot,
		CodeServ:        na.CodeServ,
		DateAmenagement: na.DateAmenagement,
		Statut:          na.Statut,
		Observations:    na.Observations,
	}
}

// Resolver looks up the records an Amenagement points at.
type Resolver interface {
	ResolveLot(codeLot string) (lot.Lot, bool)
	ResolveService(codeServ string) (service.Service, bool)
}

// QueryFilter narrows a listing. Empty fields match everything.
// Search is a case-insensitive match on one of CodeLot, CodeServ,
// the region of the resolved Lot or the designation of the resolved Service.
type QueryFilter struct {
	Search string `query:"search"`
	Statut Status `query:"statut"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

func (qf QueryFilter) Match(a Amenagement, r Resolver) bool {
	if qf.Statut != "" && a.Statut != qf.Statut {
		return false
	}
	if core.ContainsFold(a.CodeLot, qf.Search) || core.ContainsFold(a.CodeServ, qf.Search) {
		return true
	}
	if r == nil {
		return false
	}
	if l, ok := r.ResolveLot(a.CodeLot); ok && core.ContainsFold(string(l.Region), qf.Search) {
		return true
	}
	if s, ok := r.ResolveService(a.CodeServ); ok && core.ContainsFold(s.Designation, qf.Search) {
		return true
	}
	return false
}

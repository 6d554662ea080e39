package service

import (
	"github.com/trezcool/amenagement/core"
)

// Cost brackets, in currency units: low < 15000 <= medium < 25000 <= high.
const (
	CostLow    CostBracket = "low"
	CostMedium CostBracket = "medium"
	CostHigh   CostBracket = "high"

	mediumFloor = 15000
	highFloor   = 25000
)

var CostBrackets = []CostBracket{CostLow, CostMedium, CostHigh}

type CostBracket string

func (b CostBracket) IsValid() bool {
	switch b {
	case CostLow, CostMedium, CostHigh:
		return true
	}
	return false
}

func (b CostBracket) Label() string {
	switch b {
	case CostLow:
		return "< 15 000 TND"
	case CostMedium:
		return "15 000 - 25 000 TND"
	case CostHigh:
		return "> 25 000 TND"
	}
	return string(b)
}

// BracketOf returns the bracket cout falls in.
func BracketOf(cout float64) CostBracket {
	switch {
	case cout < mediumFloor:
		return CostLow
	case cout < highFloor:
		return CostMedium
	default:
		return CostHigh
	}
}

type Service struct {
	CodeServ    string  `json:"codeServ" yaml:"codeServ"`
	Designation string  `json:"designation" yaml:"designation"`
	Cout        float64 `json:"cout" yaml:"cout"`
	Duree       int     `json:"duree" yaml:"duree"` // days
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewService contains the information needed to create a Service.
// A blank CodeServ is replaced by a generated one.
type NewService struct {
	CodeServ    string  `json:"codeServ" validate:"omitempty,max=50,alphanum_"`
	Designation string  `json:"designation" validate:"required"`
	Cout        float64 `json:"cout" validate:"gt=0"`
	Duree       int     `json:"duree" validate:"gt=0"`
	Description string  `json:"description"`
}

// UpdateService replaces every field of an existing Service but its code.
type UpdateService struct {
	Designation string  `json:"designation" validate:"required"`
	Cout        float64 `json:"cout" validate:"gt=0"`
	Duree       int     `json:"duree" validate:"gt=0"`
	Description string  `json:"description"`
}

func (ns *NewService) clean() {
	ns.CodeServ = core.CleanString(ns.CodeServ)
	ns.Designation = core.CleanString(ns.Designation)
	ns.Description = core.CleanString(ns.Description)
}

func (us *UpdateService) clean() {
	us.Designation = core.CleanString(us.Designation)
	us.Description = core.CleanString(us.Description)
}

// QueryFilter narrows a listing. Empty fields match everything.
// Search is a case-insensitive match on one of Designation or CodeServ.
type QueryFilter struct {
	Search string      `query:"search"`
	Cost   CostBracket `query:"cost"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

func (qf QueryFilter) Match(s Service) bool {
	if qf.Cost != "" && BracketOf(s.Cout) != qf.Cost {
		return false
	}
	return core.ContainsFold(s.Designation, qf.Search) || core.ContainsFold(s.CodeServ, qf.Search)
}

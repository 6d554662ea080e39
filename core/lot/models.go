package lot

import (
	"strings"

	"github.com/trezcool/amenagement/core"
)

// Etats
const (
	EtatAvailable        Etat = "disponible"
	EtatUnderAmenagement Etat = "en_amenagement"
	EtatAmenaged         Etat = "amenage"
	EtatOccupied         Etat = "occupe"
)

var Etats = []Etat{EtatAvailable, EtatUnderAmenagement, EtatAmenaged, EtatOccupied}

type Etat string

func (e Etat) IsValid() bool {
	switch e {
	case EtatAvailable, EtatUnderAmenagement, EtatAmenaged, EtatOccupied:
		return true
	}
	return false
}

func (e Etat) Label() string {
	switch e {
	case EtatAvailable:
		return "Disponible"
	case EtatUnderAmenagement:
		return "En aménagement"
	case EtatAmenaged:
		return "Aménagé"
	case EtatOccupied:
		return "Occupé"
	}
	return string(e)
}

// Regions are the governorates a Lot may belong to.
var Regions = []Region{
	"Ariana", "Béja", "BenArous", "Bizerte", "Gabès", "Gafsa", "Jendouba", "Kairouan",
	"Kasserine", "Kébili", "Kef", "Mahdia", "Manouba", "Médenine", "Monastir", "Nabeul",
	"Sfax", "Sidi Bouzid", "Siliana", "Sousse", "Tataouine", "Tozeur", "Tunis", "Zaghouan",
}

type Region string

func (r Region) IsValid() bool {
	for _, reg := range Regions {
		if r == reg {
			return true
		}
	}
	return false
}

// canonical maps a case-insensitive spelling to the listed Region.
func (r Region) canonical() Region {
	for _, reg := range Regions {
		if strings.EqualFold(string(r), string(reg)) {
			return reg
		}
	}
	return r
}

type Lot struct {
	CodeLot      string    `json:"codeLot" yaml:"codeLot"`
	Superficie   float64   `json:"superficie" yaml:"superficie"`
	Region       Region    `json:"region" yaml:"region"`
	Etat         Etat      `json:"etat" yaml:"etat"`
	Prix         *float64  `json:"prix,omitempty" yaml:"prix,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	DateCreation core.Date `json:"dateCreation" yaml:"dateCreation"`
}

// NewLot contains the information needed to create a Lot.
// A blank CodeLot is replaced by a generated one.
type NewLot struct {
	CodeLot     string   `json:"codeLot" validate:"omitempty,max=50,alphanum_"`
	Superficie  float64  `json:"superficie" validate:"gt=0"`
	Region      Region   `json:"region" validate:"required,region"`
	Etat        Etat     `json:"etat" validate:"enum"`
	Prix        *float64 `json:"prix" validate:"omitempty,gte=0"`
	Description string   `json:"description"`
}

// UpdateLot replaces every field of an existing Lot but its code and creation date.
type UpdateLot struct {
	Superficie  float64  `json:"superficie" validate:"gt=0"`
	Region      Region   `json:"region" validate:"required,region"`
	Etat        Etat     `json:"etat" validate:"enum"`
	Prix        *float64 `json:"prix" validate:"omitempty,gte=0"`
	Description string   `json:"description"`
}

func cleanPrix(prix *float64) *float64 {
	if prix == nil || *prix == 0 {
		return nil
	}
	p := *prix
	return &p
}

func (nl *NewLot) clean() {
	nl.CodeLot = core.CleanString(nl.CodeLot)
	nl.Region = Region(core.CleanString(string(nl.Region))).canonical()
	nl.Description = core.CleanString(nl.Description)
	nl.Prix = cleanPrix(nl.Prix)
	if nl.Etat == "" {
		nl.Etat = EtatAvailable
	}
}

func (ul *UpdateLot) clean() {
	ul.Region = Region(core.CleanString(string(ul.Region))).canonical()
	ul.Description = core.CleanString(ul.Description)
	ul.Prix = cleanPrix(ul.Prix)
	if ul.Etat == "" {
		ul.Etat = EtatAvailable
	}
}

// QueryFilter narrows a listing. Empty fields match everything.
// Search is a case-insensitive match on one of CodeLot or Region.
type QueryFilter struct {
	Search string `query:"search"`
	Region Region `query:"region"`
	Etat   Etat   `query:"etat"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

func (qf QueryFilter) Match(l Lot) bool {
	if qf.Region != "" && l.Region != qf.Region {
		return false
	}
	if qf.Etat != "" && l.Etat != qf.Etat {
		return false
	}
	return core.ContainsFold(l.CodeLot, qf.Search) || core.ContainsFold(string(l.Region), qf.Search)
}

// RegionsOf lists the distinct regions in use, in order of first appearance.
func RegionsOf(lots []Lot) []Region {
	seen := make(map[Region]bool, len(lots))
	regions := make([]Region, 0)
	for _, l := range lots {
		if !seen[l.Region] {
			seen[l.Region] = true
			regions = append(regions, l.Region)
		}
	}
	return regions
}

// Package analytics joins the collections and derives the dashboard and report figures.
// Every function is pure: callers pass the current snapshot and the clock.
package analytics

import (
	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/amenagement"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/service"
	"github.com/trezcool/amenagement/core/student"
)

// Snapshot is the full current content of the four collections.
type Snapshot struct {
	Students     []student.Student
	Lots         []lot.Lot
	Services     []service.Service
	Amenagements []amenagement.Amenagement
}

// ResolveLot returns the first Lot whose code is codeLot.
func ResolveLot(lots []lot.Lot, codeLot string) (lot.Lot, bool) {
	for _, l := range lots {
		if l.CodeLot == codeLot {
			return l, true
		}
	}
	return lot.Lot{}, false
}

// ResolveService returns the first Service whose code is codeServ.
func ResolveService(services []service.Service, codeServ string) (service.Service, bool) {
	for _, s := range services {
		if s.CodeServ == codeServ {
			return s, true
		}
	}
	return service.Service{}, false
}

// Index resolves references in constant time, with the same first-match rule as ResolveLot and ResolveService.
type Index struct {
	lots     map[string]lot.Lot
	services map[string]service.Service
}

var _ amenagement.Resolver = (*Index)(nil)

func NewIndex(lots []lot.Lot, services []service.Service) *Index {
	ix := &Index{
		lots:     make(map[string]lot.Lot, len(lots)),
		services: make(map[string]service.Service, len(services)),
	}
	for _, l := range lots {
		if _, ok := ix.lots[l.CodeLot]; !ok {
			ix.lots[l.CodeLot] = l
		}
	}
	for _, s := range services {
		if _, ok := ix.services[s.CodeServ]; !ok {
			ix.services[s.CodeServ] = s
		}
	}
	return ix
}

func (s Snapshot) Index() *Index {
	return NewIndex(s.Lots, s.Services)
}

func (ix *Index) ResolveLot(codeLot string) (lot.Lot, bool) {
	l, ok := ix.lots[codeLot]
	return l, ok
}

func (ix *Index) ResolveService(codeServ string) (service.Service, bool) {
	s, ok := ix.services[codeServ]
	return s, ok
}

// Row is an Amenagement with its resolved references. Unresolved references are left nil.
type Row struct {
	amenagement.Amenagement
	Lot       *lot.Lot         `json:"lot,omitempty"`
	Service   *service.Service `json:"service,omitempty"`
	FinPrevue *core.Date       `json:"finPrevue,omitempty"`
}

func JoinOne(a amenagement.Amenagement, r amenagement.Resolver) Row {
	row := Row{Amenagement: a}
	if l, ok := r.ResolveLot(a.CodeLot); ok {
		row.Lot = &l
	}
	if s, ok := r.ResolveService(a.CodeServ); ok {
		row.Service = &s
		end := a.DateAmenagement.AddDays(s.Duree)
		row.FinPrevue = &end
	}
	return row
}

// Join resolves every Amenagement, keeping their order.
func Join(as []amenagement.Amenagement, r amenagement.Resolver) []Row {
	rows := make([]Row, 0, len(as))
	for _, a := range as {
		rows = append(rows, JoinOne(a, r))
	}
	return rows
}

// ProjectedEndDate is the start date plus the duration of the resolved Service.
// It reports false when the Service does not resolve.
func ProjectedEndDate(a amenagement.Amenagement, r amenagement.Resolver) (core.Date, bool) {
	s, ok := r.ResolveService(a.CodeServ)
	if !ok {
		return core.Date{}, false
	}
	return a.DateAmenagement.AddDays(s.Duree), true
}

package analytics

import (
	"time"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/amenagement"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/service"
	"github.com/trezcool/amenagement/core/student"
)

const topRegions = 5

type (
	StudentStats struct {
		Total         int      `json:"total"`
		Active        int      `json:"active"`
		Inactive      int      `json:"inactive"`
		Graduated     int      `json:"graduated"`
		Unknown       int      `json:"unknown,omitempty"`
		NewThisPeriod int      `json:"newThisPeriod"`
		Growth        int      `json:"growth"` // NewThisPeriod in percent of Total
		ByFiliere     []Bucket `json:"byFiliere"`
		ByStatut      []Bucket `json:"byStatut"`
	}

	LotStats struct {
		Total          int      `json:"total"`
		Available      int      `json:"available"`
		InDevelopment  int      `json:"inDevelopment"`
		Amenaged       int      `json:"amenaged"`
		Occupied       int      `json:"occupied"`
		Unknown        int      `json:"unknown,omitempty"`
		AvailableShare int      `json:"availableShare"`
		TotalValue     float64  `json:"totalValue"`
		ByRegion       []Bucket `json:"byRegion"`
		ByEtat         []Bucket `json:"byEtat"`
	}

	ServiceStats struct {
		Total           int      `json:"total"`
		TotalValue      float64  `json:"totalValue"`
		AverageCost     Amount   `json:"averageCost"`
		AverageDuration Amount   `json:"averageDuration"`
		ByCost          []Bucket `json:"byCost"`
	}

	AmenagementStats struct {
		Total          int      `json:"total"`
		Planned        int      `json:"planned"`
		InProgress     int      `json:"inProgress"`
		Completed      int      `json:"completed"`
		Cancelled      int      `json:"cancelled"`
		Unknown        int      `json:"unknown,omitempty"`
		CompletionRate int      `json:"completionRate"`
		Unresolved     int      `json:"unresolved"` // rows with a dangling lot or service
		ByStatut       []Bucket `json:"byStatut"`
	}

	Report struct {
		Period       Period           `json:"period"`
		From         core.Date        `json:"from"`
		To           core.Date        `json:"to"`
		Students     StudentStats     `json:"students"`
		Lots         LotStats         `json:"lots"`
		Services     ServiceStats     `json:"services"`
		Amenagements AmenagementStats `json:"amenagements"`
	}
)

// BuildReport computes every figure from s as of now.
func BuildReport(s Snapshot, now time.Time, period Period) Report {
	if !period.IsValid() {
		period = PeriodMonth
	}
	from, to := period.Window(now)
	return Report{
		Period:       period,
		From:         from,
		To:           to,
		Students:     studentStats(s.Students, from, to),
		Lots:         lotStats(s.Lots),
		Services:     serviceStats(s),
		Amenagements: amenagementStats(s),
	}
}

func studentStats(students []student.Student, from, to core.Date) StudentStats {
	st := StudentStats{Total: len(students)}
	filieres := make([]string, 0, len(students))
	statuts := make([]string, 0, len(students))
	dates := make([]core.Date, 0, len(students))
	for _, s := range students {
		switch s.Statut {
		case student.StatusActive:
			st.Active++
		case student.StatusInactive:
			st.Inactive++
		case student.StatusGraduated:
			st.Graduated++
		default:
			st.Unknown++
		}
		filieres = append(filieres, s.Filiere)
		statuts = append(statuts, string(s.Statut))
		dates = append(dates, s.DateInscription)
	}
	st.NewThisPeriod = CountWithin(dates, from, to)
	st.Growth = Percent(st.NewThisPeriod, st.Total)
	st.ByFiliere = Breakdown(filieres)
	st.ByStatut = Fixed(statuts, enumNames(student.Statuses))
	return st
}

func lotStats(lots []lot.Lot) LotStats {
	st := LotStats{Total: len(lots)}
	regions := make([]string, 0, len(lots))
	etats := make([]string, 0, len(lots))
	for _, l := range lots {
		switch l.Etat {
		case lot.EtatAvailable:
			st.Available++
		case lot.EtatUnderAmenagement:
			st.InDevelopment++
		case lot.EtatAmenaged:
			st.Amenaged++
		case lot.EtatOccupied:
			st.Occupied++
		default:
			st.Unknown++
		}
		if l.Prix != nil {
			st.TotalValue += *l.Prix
		}
		regions = append(regions, string(l.Region))
		etats = append(etats, string(l.Etat))
	}
	st.AvailableShare = Percent(st.Available, st.Total)
	st.ByRegion = Top(Breakdown(regions), topRegions)
	st.ByEtat = Fixed(etats, enumNames(lot.Etats))
	return st
}

func serviceStats(s Snapshot) ServiceStats {
	st := ServiceStats{Total: len(s.Services)}
	costs := make([]float64, 0, len(s.Services))
	durations := make([]float64, 0, len(s.Services))
	brackets := make([]string, 0, len(s.Services))
	for _, srv := range s.Services {
		st.TotalValue += srv.Cout
		costs = append(costs, srv.Cout)
		durations = append(durations, float64(srv.Duree))
		brackets = append(brackets, string(service.BracketOf(srv.Cout)))
	}
	st.AverageCost = Mean(costs)
	st.AverageDuration = Mean(durations)
	st.ByCost = Fixed(brackets, enumNames(service.CostBrackets))
	return st
}

func amenagementStats(s Snapshot) AmenagementStats {
	st := AmenagementStats{Total: len(s.Amenagements)}
	ix := s.Index()
	statuts := make([]string, 0, len(s.Amenagements))
	for _, a := range s.Amenagements {
		switch a.Statut {
		case amenagement.StatusPlanned:
			st.Planned++
		case amenagement.StatusInProgress:
			st.InProgress++
		case amenagement.StatusDone:
			st.Completed++
		case amenagement.StatusCancelled:
			st.Cancelled++
		default:
			st.Unknown++
		}
		_, lotOK := ix.ResolveLot(a.CodeLot)
		_, srvOK := ix.ResolveService(a.CodeServ)
		if !lotOK || !srvOK {
			st.Unresolved++
		}
		statuts = append(statuts, string(a.Statut))
	}
	st.CompletionRate = CompletionRate(s.Amenagements)
	st.ByStatut = Fixed(statuts, enumNames(amenagement.Statuses))
	return st
}

func enumNames[E ~string](values []E) []string {
	names := make([]string, 0, len(values))
	for _, v := range values {
		names = append(names, string(v))
	}
	return names
}

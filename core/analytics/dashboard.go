package analytics

import (
	"fmt"
	"time"

	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/student"
)

const (
	recentAmenagements = 5
	recentStudents     = 3
)

type Card struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Value    int    `json:"value"`
	Subtitle string `json:"subtitle"`
}

type Dashboard struct {
	Role               access.Role       `json:"role"`
	Title              string            `json:"title"`
	Cards              []Card            `json:"cards"`
	NewStudents        int               `json:"newStudents"`
	Growth             int               `json:"growth"`
	RecentAmenagements []Row             `json:"recentAmenagements"`
	RecentStudents     []student.Student `json:"recentStudents,omitempty"`
}

// BuildDashboard computes the landing page of role as of now.
// Only admins get the recent students; an unknown role gets no cards.
func BuildDashboard(s Snapshot, role access.Role, now time.Time) Dashboard {
	from, to := PeriodMonth.Window(now)
	studs := studentStats(s.Students, from, to)
	lots := lotStats(s.Lots)
	amgs := amenagementStats(s)

	recent := s.Amenagements
	if len(recent) > recentAmenagements {
		recent = recent[:recentAmenagements]
	}

	d := Dashboard{
		Role:               role,
		Title:              "Tableau de bord " + role.Label(),
		Cards:              []Card{},
		NewStudents:        studs.NewThisPeriod,
		Growth:             studs.Growth,
		RecentAmenagements: Join(recent, s.Index()),
	}

	switch role {
	case access.RoleAdmin:
		d.Cards = []Card{
			{Key: "students", Title: "Étudiants", Value: studs.Total, Subtitle: fmt.Sprintf("%d actifs", studs.Active)},
			{Key: "newStudents", Title: "Nouveaux Étudiants", Value: studs.NewThisPeriod, Subtitle: "Ce mois"},
			{Key: "lots", Title: "Lots", Value: lots.Total, Subtitle: fmt.Sprintf("%d disponibles", lots.Available)},
			{Key: "services", Title: "Services", Value: len(s.Services), Subtitle: "Services actifs"},
			{Key: "amenagements", Title: "Aménagements", Value: amgs.Total, Subtitle: fmt.Sprintf("%d terminés", amgs.Completed)},
		}
		rs := s.Students
		if len(rs) > recentStudents {
			rs = rs[:recentStudents]
		}
		d.RecentStudents = rs
	case access.RoleUser:
		d.Cards = []Card{
			{Key: "availableLots", Title: "Lots Disponibles", Value: lots.Available, Subtitle: "Prêts à l'achat"},
			{Key: "lotsInDevelopment", Title: "En Aménagement", Value: countEtat(s.Lots, lot.EtatUnderAmenagement), Subtitle: "En cours de travaux"},
			{Key: "newStudents", Title: "Nouveaux Étudiants", Value: studs.NewThisPeriod, Subtitle: "Ce mois"},
		}
	}
	return d
}

func countEtat(lots []lot.Lot, etat lot.Etat) int {
	var n int
	for _, l := range lots {
		if l.Etat == etat {
			n++
		}
	}
	return n
}

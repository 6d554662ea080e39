package access

import "github.com/trezcool/amenagement/core"

// Views
const (
	ViewDashboard    View = "dashboard"
	ViewStudents     View = "students"
	ViewLots         View = "lots"
	ViewServices     View = "services"
	ViewAmenagements View = "amenagements"
	ViewAnalytics    View = "analytics"
	ViewProfile      View = "profile"
	ViewRestricted   View = "restricted"
)

type View string

type MenuItem struct {
	View  View   `json:"view"`
	Label string `json:"label"`
}

// ResolveView returns the view actually rendered when p asks for v.
// Admin-only views resolve to ViewRestricted for other roles, the profile is reserved to users
// and anything unknown lands on the dashboard.
func ResolveView(p Principal, v View) (View, error) {
	if p == nil {
		return "", core.ErrUnauthenticated
	}
	role := p.AccessRole()
	policy := PolicyFor(role)

	switch v {
	case ViewDashboard:
		return ViewDashboard, nil
	case ViewStudents, ViewServices, ViewAnalytics, ViewLots, ViewAmenagements:
		if policy.Can(Resource(v), Read) {
			return v, nil
		}
		return ViewRestricted, nil
	case ViewProfile:
		if role == RoleUser {
			return ViewProfile, nil
		}
		return ViewDashboard, nil
	}
	return ViewDashboard, nil
}

// Menu lists the navigation entries offered to role, in display order.
func Menu(role Role) []MenuItem {
	switch role {
	case RoleAdmin:
		return []MenuItem{
			{View: ViewDashboard, Label: "Tableau de bord"},
			{View: ViewStudents, Label: "Étudiants"},
			{View: ViewLots, Label: "Lots"},
			{View: ViewServices, Label: "Services"},
			{View: ViewAmenagements, Label: "Aménagements"},
			{View: ViewAnalytics, Label: "Statistiques"},
		}
	case RoleUser:
		return []MenuItem{
			{View: ViewDashboard, Label: "Tableau de bord"},
			{View: ViewLots, Label: "Consulter Lots"},
			{View: ViewProfile, Label: "Mon Profil"},
		}
	}
	return []MenuItem{}
}

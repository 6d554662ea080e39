package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/amenagement/apps/api/echo"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/analytics"
	"github.com/trezcool/amenagement/core/student"
	"github.com/trezcool/amenagement/core/user"
)

func Test_viewsApi_view(t *testing.T) {
	e := setup(t)
	adminToken := getToken(t, e.conf, e.admin)
	usrToken := getToken(t, e.conf, e.usr)

	restricted := marchallObj(t, Restricted{
		Title:   "Accès Restreint",
		Message: "Cette section est réservée aux administrateurs.",
	})

	tests := []struct {
		name      string
		token     string
		requested access.View
		wantView  access.View
	}{
		{"admin students", adminToken, access.ViewStudents, access.ViewStudents},
		{"user students", usrToken, access.ViewStudents, access.ViewRestricted},
		{"user services", usrToken, access.ViewServices, access.ViewRestricted},
		{"user analytics", usrToken, access.ViewAnalytics, access.ViewRestricted},
		{"user lots", usrToken, access.ViewLots, access.ViewLots},
		{"user profile", usrToken, access.ViewProfile, access.ViewProfile},
		{"admin profile", adminToken, access.ViewProfile, access.ViewDashboard},
		{"unknown view", adminToken, "settings", access.ViewDashboard},
		{"admin amenagements", adminToken, access.ViewAmenagements, access.ViewAmenagements},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/views/"+string(tt.requested), tt.token)
			e.serve(req, rec)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp struct {
				Requested access.View     `json:"requested"`
				View      access.View     `json:"view"`
				Content   json.RawMessage `json:"content"`
			}
			unmarshall(t, rec, &resp)
			assert.Equal(t, tt.requested, resp.Requested)
			assert.Equal(t, tt.wantView, resp.View)

			switch resp.View {
			case access.ViewRestricted:
				ok, err := jsonBytesEqual(t, resp.Content, restricted)
				require.NoError(t, err)
				assert.True(t, ok, string(resp.Content))
			case access.ViewStudents:
				var studs []student.Student
				require.NoError(t, json.Unmarshal(resp.Content, &studs))
				assert.Len(t, studs, 3)
			case access.ViewProfile:
				var usr user.User
				require.NoError(t, json.Unmarshal(resp.Content, &usr))
				assert.Equal(t, e.usr.ID, usr.ID)
			case access.ViewAmenagements:
				var content AmenagementsView
				require.NoError(t, json.Unmarshal(resp.Content, &content))
				assert.Equal(t, 3, content.Stats.Total)
				assert.Equal(t, 33, content.Stats.CompletionRate)
				assert.Len(t, content.Rows, 3)
			case access.ViewDashboard:
				var dash analytics.Dashboard
				require.NoError(t, json.Unmarshal(resp.Content, &dash))
				assert.Len(t, dash.Cards, 5)
			}
		})
	}

	t.Run("metrics", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/metrics")
		e.serve(req, rec)
		assert.Contains(t, rec.Body.String(), `amenagement_view_resolutions_total{role="user",view="restricted"} 3`)
	})
}

func Test_viewsApi_menu(t *testing.T) {
	e := setup(t)

	runHTTPTests(t, e, []httpTest{
		{
			name:     "admin",
			method:   http.MethodGet,
			path:     "/v1/menu",
			token:    getToken(t, e.conf, e.admin),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, access.Menu(access.RoleAdmin)),
		},
		{
			name:     "user",
			method:   http.MethodGet,
			path:     "/v1/menu",
			token:    getToken(t, e.conf, e.usr),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []access.MenuItem{
				{View: access.ViewDashboard, Label: "Tableau de bord"},
				{View: access.ViewLots, Label: "Consulter Lots"},
				{View: access.ViewProfile, Label: "Mon Profil"},
			}),
		},
	})
}

func Test_viewsApi_dashboard(t *testing.T) {
	e := setup(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard", getToken(t, e.conf, e.usr))
	e.serve(req, rec)
	require.Equal(t, http.StatusOK, rec.Code)

	var dash analytics.Dashboard
	unmarshall(t, rec, &dash)
	assert.Equal(t, access.RoleUser, dash.Role)
	keys := make([]string, 0, len(dash.Cards))
	for _, c := range dash.Cards {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"availableLots", "lotsInDevelopment", "newStudents"}, keys)
	assert.Empty(t, dash.RecentStudents)
	assert.Len(t, dash.RecentAmenagements, 3)
}

func Test_viewsApi_analytics(t *testing.T) {
	e := setup(t)

	runHTTPTests(t, e, []httpTest{
		{
			name:     "user",
			method:   http.MethodGet,
			path:     "/v1/analytics",
			token:    getToken(t, e.conf, e.usr),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
	})

	tests := []struct {
		query string
		want  analytics.Period
	}{
		{"", analytics.PeriodMonth},
		{"?period=year", analytics.PeriodYear},
		{"?period=decade", analytics.PeriodMonth},
	}
	for _, tt := range tests {
		t.Run("admin"+tt.query, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/analytics"+tt.query, getToken(t, e.conf, e.admin))
			e.serve(req, rec)
			require.Equal(t, http.StatusOK, rec.Code)

			var report analytics.Report
			unmarshall(t, rec, &report)
			assert.Equal(t, tt.want, report.Period)
			assert.Equal(t, 3, report.Students.Total)
			assert.Equal(t, float64(530000), report.Lots.TotalValue)
		})
	}
}

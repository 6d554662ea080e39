package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/analytics"
	"github.com/trezcool/amenagement/core/dataset"
	"github.com/trezcool/amenagement/core/user"
	"github.com/trezcool/amenagement/services/metrics"
)

const (
	restrictedTitle   = "Accès Restreint"
	restrictedMessage = "Cette section est réservée aux administrateurs."
)

type (
	// ViewResponse is the content of the view rendered for a navigation request.
	ViewResponse struct {
		Requested access.View `json:"requested"`
		View      access.View `json:"view"`
		Content   interface{} `json:"content"`
	}

	Restricted struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}

	AmenagementsView struct {
		Stats analytics.AmenagementStats `json:"stats"`
		Rows  []analytics.Row            `json:"rows"`
	}

	AnalyticsRequest struct {
		Period analytics.Period `query:"period"`
	}
)

type viewsApi struct {
	data    *dataset.Dataset
	usrSvc  *user.Service
	metrics *metrics.Recorder
}

func registerViewsAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := viewsApi{
		data:    opts.Data,
		usrSvc:  opts.UserSvc,
		metrics: opts.Metrics,
	}

	ag := g.Group("", jwt)
	ag.GET("/menu", api.menu)
	ag.GET("/views/:view", api.view)
	ag.GET("/dashboard", api.dashboard)
	ag.GET("/analytics", api.analytics, policyMiddleware(access.Analytics, access.Read))
}

func (api *viewsApi) menu(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, access.Menu(claims.Role))
}

func (api *viewsApi) dashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	snap, err := api.data.Snapshot(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dataset")
	}
	return ctx.JSON(http.StatusOK, analytics.BuildDashboard(snap, claims.Role, core.NowFunc()))
}

func (api *viewsApi) analytics(ctx echo.Context) error {
	req := new(AnalyticsRequest)
	if err := ctx.Bind(req); err != nil {
		req.Period = analytics.PeriodMonth
	}
	snap, err := api.data.Snapshot(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dataset")
	}
	return ctx.JSON(http.StatusOK, analytics.BuildReport(snap, core.NowFunc(), req.Period))
}

// view resolves the requested view against the caller's role and renders what they may see.
func (api *viewsApi) view(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	requested := access.View(ctx.Param("view"))
	view, err := access.ResolveView(claims, requested)
	if err != nil {
		return err
	}
	if api.metrics != nil {
		api.metrics.ObserveView(string(claims.Role), string(view))
	}

	content, err := api.render(ctx, claims, view)
	if err != nil {
		return errors.Wrapf(err, "rendering view %s", view)
	}
	return ctx.JSON(http.StatusOK, ViewResponse{Requested: requested, View: view, Content: content})
}

func (api *viewsApi) render(ctx echo.Context, claims Claims, view access.View) (interface{}, error) {
	rctx := ctx.Request().Context()
	switch view {
	case access.ViewRestricted:
		return Restricted{Title: restrictedTitle, Message: restrictedMessage}, nil
	case access.ViewProfile:
		return getContextUser(ctx, api.usrSvc, claims)
	}

	snap, err := api.data.Snapshot(rctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading dataset")
	}
	now := core.NowFunc()

	switch view {
	case access.ViewStudents:
		return snap.Students, nil
	case access.ViewLots:
		return snap.Lots, nil
	case access.ViewServices:
		return snap.Services, nil
	case access.ViewAmenagements:
		rows := analytics.Join(snap.Amenagements, snap.Index())
		if rows == nil {
			rows = []analytics.Row{}
		}
		return AmenagementsView{
			Stats: analytics.BuildReport(snap, now, analytics.PeriodMonth).Amenagements,
			Rows:  rows,
		}, nil
	case access.ViewAnalytics:
		return analytics.BuildReport(snap, now, analytics.PeriodMonth), nil
	}
	return analytics.BuildDashboard(snap, claims.Role, now), nil
}

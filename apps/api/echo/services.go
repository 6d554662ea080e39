package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/analytics"
	"github.com/trezcool/amenagement/core/service"
)

type serviceApi struct {
	coll *service.Collection
}

// ServiceDetail is a Service along with its derived figures.
type ServiceDetail struct {
	service.Service
	CoutJour analytics.Amount    `json:"coutJour"`
	Bracket  service.CostBracket `json:"bracket"`
}

func registerServiceAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := serviceApi{coll: opts.Data.Services}
	crud{
		list:     api.query,
		create:   api.create,
		retrieve: api.retrieve,
		update:   api.update,
		destroy:  api.destroy,
	}.register(g, jwt, access.Services, "code")
}

func (api *serviceApi) query(ctx echo.Context) error {
	filter := new(service.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []service.Service{})
	}
	filter.Clean()

	servs, err := api.coll.List(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying services")
	}
	if servs == nil {
		servs = []service.Service{}
	}
	return ctx.JSON(http.StatusOK, servs)
}

func (api *serviceApi) create(ctx echo.Context) error {
	var data service.NewService
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewService")
	}
	s, err := api.coll.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating service")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *serviceApi) retrieve(ctx echo.Context) error {
	s, err := api.coll.Get(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		return errors.Wrap(err, "finding service")
	}
	return ctx.JSON(http.StatusOK, ServiceDetail{
		Service:  s,
		CoutJour: analytics.CostPerDay(s),
		Bracket:  service.BracketOf(s.Cout),
	})
}

func (api *serviceApi) update(ctx echo.Context) error {
	var data service.UpdateService
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateService")
	}
	s, err := api.coll.Update(ctx.Request().Context(), ctx.Param("code"), data)
	if err != nil {
		return errors.Wrap(err, "updating service")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *serviceApi) destroy(ctx echo.Context) error {
	code := ctx.Param("code")
	if _, err := api.coll.Get(ctx.Request().Context(), code); err != nil {
		return errors.Wrap(err, "finding service")
	}
	deleted, err := api.coll.Delete(ctx.Request().Context(), code, confirmer(ctx))
	if err != nil {
		return errors.Wrap(err, "deleting service")
	}
	return ctx.JSON(http.StatusOK, newDeleteResponse(deleted, service.DeletePrompt))
}

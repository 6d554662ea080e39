package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/amenagement"
	"github.com/trezcool/amenagement/core/analytics"
	"github.com/trezcool/amenagement/core/dataset"
)

type amenagementApi struct {
	data *dataset.Dataset
}

func registerAmenagementAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := amenagementApi{data: opts.Data}
	crud{
		list:     api.query,
		create:   api.create,
		retrieve: api.retrieve,
		update:   api.update,
		destroy:  api.destroy,
	}.register(g, jwt, access.Amenagements, "id")
}

// query lists the amenagements joined with their lot and service.
func (api *amenagementApi) query(ctx echo.Context) error {
	filter := new(amenagement.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []analytics.Row{})
	}
	filter.Clean()

	rctx := ctx.Request().Context()
	resolver, err := api.data.Resolver(rctx)
	if err != nil {
		return errors.Wrap(err, "loading lots and services")
	}
	amgs, err := api.data.Amenagements.List(rctx, *filter, resolver)
	if err != nil {
		return errors.Wrap(err, "querying amenagements")
	}
	rows := analytics.Join(amgs, resolver)
	if rows == nil {
		rows = []analytics.Row{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *amenagementApi) create(ctx echo.Context) error {
	var data amenagement.NewAmenagement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAmenagement")
	}
	a, err := api.data.Amenagements.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating amenagement")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *amenagementApi) retrieve(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	a, err := api.data.Amenagements.Get(rctx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding amenagement")
	}
	resolver, err := api.data.Resolver(rctx)
	if err != nil {
		return errors.Wrap(err, "loading lots and services")
	}
	return ctx.JSON(http.StatusOK, analytics.JoinOne(a, resolver))
}

func (api *amenagementApi) update(ctx echo.Context) error {
	var data amenagement.UpdateAmenagement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAmenagement")
	}
	a, err := api.data.Amenagements.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating amenagement")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *amenagementApi) destroy(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	id := ctx.Param("id")
	if _, err := api.data.Amenagements.Get(rctx, id); err != nil {
		return errors.Wrap(err, "finding amenagement")
	}
	deleted, err := api.data.Amenagements.Delete(rctx, id, confirmer(ctx))
	if err != nil {
		return errors.Wrap(err, "deleting amenagement")
	}
	return ctx.JSON(http.StatusOK, newDeleteResponse(deleted, amenagement.DeletePrompt))
}

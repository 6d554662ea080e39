package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/analytics"
	"github.com/trezcool/amenagement/core/lot"
)

type lotApi struct {
	coll *lot.Collection
}

// LotDetail is a Lot along with its derived price per square meter.
type LotDetail struct {
	lot.Lot
	PrixM2 analytics.Amount `json:"prixM2"`
}

func registerLotAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := lotApi{coll: opts.Data.Lots}
	crud{
		list:     api.query,
		create:   api.create,
		retrieve: api.retrieve,
		update:   api.update,
		destroy:  api.destroy,
	}.register(g, jwt, access.Lots, "code")
	g.GET("/lots/regions", api.regions, jwt, policyMiddleware(access.Lots, access.Read))
}

func (api *lotApi) query(ctx echo.Context) error {
	filter := new(lot.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []lot.Lot{})
	}
	filter.Clean()

	lots, err := api.coll.List(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying lots")
	}
	if lots == nil {
		lots = []lot.Lot{}
	}
	return ctx.JSON(http.StatusOK, lots)
}

// regions lists the distinct regions of the stored lots, for the region filter.
func (api *lotApi) regions(ctx echo.Context) error {
	lots, err := api.coll.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying lots")
	}
	regions := lot.RegionsOf(lots)
	if regions == nil {
		regions = []lot.Region{}
	}
	return ctx.JSON(http.StatusOK, regions)
}

func (api *lotApi) create(ctx echo.Context) error {
	var data lot.NewLot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLot")
	}
	l, err := api.coll.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lot")
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *lotApi) retrieve(ctx echo.Context) error {
	l, err := api.coll.Get(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		return errors.Wrap(err, "finding lot")
	}
	return ctx.JSON(http.StatusOK, LotDetail{Lot: l, PrixM2: analytics.PricePerSquareMeter(l)})
}

func (api *lotApi) update(ctx echo.Context) error {
	var data lot.UpdateLot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLot")
	}
	l, err := api.coll.Update(ctx.Request().Context(), ctx.Param("code"), data)
	if err != nil {
		return errors.Wrap(err, "updating lot")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lotApi) destroy(ctx echo.Context) error {
	code := ctx.Param("code")
	if _, err := api.coll.Get(ctx.Request().Context(), code); err != nil {
		return errors.Wrap(err, "finding lot")
	}
	deleted, err := api.coll.Delete(ctx.Request().Context(), code, confirmer(ctx))
	if err != nil {
		return errors.Wrap(err, "deleting lot")
	}
	return ctx.JSON(http.StatusOK, newDeleteResponse(deleted, lot.DeletePrompt))
}

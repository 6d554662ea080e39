package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/student"
)

type studentApi struct {
	coll *student.Collection
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := studentApi{coll: opts.Data.Students}
	crud{
		list:     api.query,
		create:   api.create,
		retrieve: api.retrieve,
		update:   api.update,
		destroy:  api.destroy,
	}.register(g, jwt, access.Students, "id")
	g.GET("/students/options", api.options, jwt, policyMiddleware(access.Students, access.Read))
}

// StudentOptions lists the choices offered by the student form.
type StudentOptions struct {
	Filieres []string         `json:"filieres"`
	Niveaux  []string         `json:"niveaux"`
	Statuts  []student.Status `json:"statuts"`
}

func (api *studentApi) options(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, StudentOptions{
		Filieres: student.Filieres,
		Niveaux:  student.Niveaux,
		Statuts:  student.Statuses,
	})
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	filter.Clean()

	studs, err := api.coll.List(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if studs == nil {
		studs = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, studs)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	stud, err := api.coll.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, stud)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	stud, err := api.coll.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student")
	}
	return ctx.JSON(http.StatusOK, stud)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	stud, err := api.coll.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, stud)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, err := api.coll.Get(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "finding student")
	}
	deleted, err := api.coll.Delete(ctx.Request().Context(), id, confirmer(ctx))
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.JSON(http.StatusOK, newDeleteResponse(deleted, student.DeletePrompt))
}

package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/user"
	"github.com/trezcool/amenagement/services/metrics"
)

type authApi struct {
	conf       *core.Config
	svc        *user.Service
	metrics    *metrics.Recorder
	validate   *validator.Validate
	translator ut.Translator
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := authApi{
		conf:       opts.Conf,
		svc:        opts.UserSvc,
		metrics:    opts.Metrics,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	// un-authed endpoints
	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/token-refresh", api.refreshToken, jwt)

	// the signed-in user
	mg := g.Group("/me", jwt)
	mg.GET("", api.me)
	mg.PUT("/password", api.setPassword)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	data.Email = core.CleanString(data.Email, true /* lower */)
	if err := api.validate.Struct(data); err != nil {
		return core.TranslateErrors(err, api.translator)
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), user.Credentials{Email: data.Email, Password: data.Password})
	if api.metrics != nil {
		api.metrics.ObserveLogin(err == nil)
	}
	if err != nil {
		if err == user.ErrInvalidCredentials {
			return err
		}
		return errors.Wrap(err, "authenticating")
	}

	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.conf, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *authApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) setPassword(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data user.SetPassword
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetPassword")
	}
	if err = api.svc.SetPassword(ctx.Request().Context(), usr.ID, data); err != nil {
		return errors.Wrap(err, "setting password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Le mot de passe a été modifié."})
}

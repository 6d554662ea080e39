package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/dataset"
	"github.com/trezcool/amenagement/core/user"
	"github.com/trezcool/amenagement/services/metrics"
)

type (
	Options struct {
		Conf       *core.Config
		Logger     core.Logger
		Metrics    *metrics.Recorder // optional
		UserSvc    *user.Service
		Data       *dataset.Dataset
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableRequestLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	if s.opts.Metrics != nil {
		s.app.GET("/metrics", echo.WrapHandler(s.opts.Metrics.Handler()))
	}

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerAuthAPI(v1, jwt, s.opts)
	registerViewsAPI(v1, jwt, s.opts)
	registerStudentAPI(v1, jwt, s.opts)
	registerLotAPI(v1, jwt, s.opts)
	registerServiceAPI(v1, jwt, s.opts)
	registerAmenagementAPI(v1, jwt, s.opts)
}

// Start blocks until the server stops. A graceful Stop yields http.ErrServerClosed.
func (s *server) Start() error {
	return s.app.Start(s.opts.Conf.Server.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Bienvenue sur l'API "+s.opts.Conf.AppName+" !")
}

// crud wires the usual listing and detail routes of a resource behind its policy.
type crud struct {
	list, create, retrieve, update, destroy echo.HandlerFunc
}

func (c crud) register(g *echo.Group, jwt echo.MiddlewareFunc, res access.Resource, param string) {
	rg := g.Group("/"+string(res), jwt)
	rg.GET("", c.list, policyMiddleware(res, access.Read))
	rg.POST("", c.create, policyMiddleware(res, access.Create))
	rg.GET("/:"+param, c.retrieve, policyMiddleware(res, access.Read))
	rg.PUT("/:"+param, c.update, policyMiddleware(res, access.Update))
	rg.DELETE("/:"+param, c.destroy, policyMiddleware(res, access.Delete))
}

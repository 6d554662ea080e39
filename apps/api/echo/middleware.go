package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/amenagement/core/access"
)

// policyMiddleware only lets through callers whose role holds c on res.
func policyMiddleware(res access.Resource, c access.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if err = access.Authorize(claims, res, c); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

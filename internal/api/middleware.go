package api

import (
	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/ougirez/covidstats/internal/pkg/utils"
	"github.com/spf13/viper"
)

// AdminMiddleware guards the ETL trigger endpoints: the caller must carry a
// cookie issued by /admin/login whose claims hold the configured secret.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrMissingAuthCookie
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

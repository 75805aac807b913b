package controller

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/ougirez/covidstats/internal/pkg/utils"
	"github.com/spf13/viper"
)

type loginAdminRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// LoginAdmin exchanges the configured secret for a signed cookie accepted by
// the ETL endpoints.
func (c *Controller) LoginAdmin(ctx echo.Context) error {
	req := new(loginAdminRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	if req.Secret != viper.GetString(constants.ViperSecretKey) {
		return constants.ErrUnauthorized
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{
		Secret:         req.Secret,
		StandardClaims: jwt.StandardClaims{ExpiresAt: expiresAt.Unix()},
	})
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySecretToken,
		Value:    token,
		Expires:  expiresAt,
		HttpOnly: true,
		Path:     "/",
	})

	return ctx.NoContent(http.StatusOK)
}

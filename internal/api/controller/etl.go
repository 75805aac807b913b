package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type etlRequest struct {
	Latest bool `query:"latest"`
	Debug  bool `query:"debug"`
}

func (c *Controller) ImportStopCorona(ctx echo.Context) error {
	req := new(etlRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	if err := c.statsService.ImportStopCorona(ctx.Request().Context(), req.Latest); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *Controller) ImportGogov(ctx echo.Context) error {
	if err := c.statsService.ImportGogov(ctx.Request().Context()); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *Controller) TransformGlobal(ctx echo.Context) error {
	req := new(etlRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	if err := c.statsService.TransformGlobal(ctx.Request().Context(), req.Latest, req.Debug); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *Controller) TransformRegions(ctx echo.Context) error {
	req := new(etlRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	if err := c.statsService.TransformRegions(ctx.Request().Context(), req.Latest, req.Debug); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *Controller) TransformLegacyGlobal(ctx echo.Context) error {
	req := new(etlRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	if err := c.statsService.TransformLegacyGlobal(ctx.Request().Context(), req.Debug); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusOK)
}

func (c *Controller) TransformLegacyRegions(ctx echo.Context) error {
	req := new(etlRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	if err := c.statsService.TransformLegacyRegions(ctx.Request().Context(), req.Debug); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusOK)
}

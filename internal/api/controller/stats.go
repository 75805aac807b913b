package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidstats/internal/pkg/constants"
)

const queryDateFormat = "2006-01-02"

type statsRangeRequest struct {
	Region string `query:"region"`
	From   string `query:"from"`
	To     string `query:"to"`
}

func (r *statsRangeRequest) dates() (from, to *time.Time, err error) {
	if r.From != "" {
		parsed, parseErr := time.Parse(queryDateFormat, r.From)
		if parseErr != nil {
			return nil, nil, constants.ErrBadRequest
		}
		from = &parsed
	}
	if r.To != "" {
		parsed, parseErr := time.Parse(queryDateFormat, r.To)
		if parseErr != nil {
			return nil, nil, constants.ErrBadRequest
		}
		to = &parsed
	}
	return from, to, nil
}

func (c *Controller) GetGlobalStats(ctx echo.Context) error {
	req := new(statsRangeRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	from, to, err := req.dates()
	if err != nil {
		return err
	}

	records, err := c.store.GlobalStatsRange(ctx.Request().Context(), from, to)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, records)
}

func (c *Controller) GetRegionStats(ctx echo.Context) error {
	req := new(statsRangeRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	from, to, err := req.dates()
	if err != nil {
		return err
	}

	var region *string
	if req.Region != "" {
		region = &req.Region
	}

	records, err := c.store.RegionStatsRange(ctx.Request().Context(), region, from, to)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, records)
}

func (c *Controller) GetRegions(ctx echo.Context) error {
	regions, err := c.store.ListRegions(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, regions)
}

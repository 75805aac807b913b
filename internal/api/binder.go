package api

import (
	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidstats/internal/pkg/constants"
)

type Binder struct {
	binder *echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{binder: &echo.DefaultBinder{}}
}

func (b *Binder) Bind(i interface{}, ctx echo.Context) error {
	if err := b.binder.Bind(i, ctx); err != nil {
		return constants.ErrBadRequest
	}

	return ctx.Validate(i)
}

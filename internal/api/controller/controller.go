package controller

import (
	"github.com/ougirez/covidstats/internal/pkg/store"
	"github.com/ougirez/covidstats/internal/service/stats"
)

type Controller struct {
	store        store.Store
	statsService *stats.Service
}

func NewController(store store.Store, statsService *stats.Service) *Controller {
	return &Controller{store: store, statsService: statsService}
}

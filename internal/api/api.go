package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/covidstats/internal/api/controller"
	"github.com/ougirez/covidstats/internal/pkg/logger"
	"github.com/ougirez/covidstats/internal/pkg/store"
	"github.com/ougirez/covidstats/internal/service/stats"
)

type APIService struct {
	router       *echo.Echo
	statsService *stats.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store, statsService *stats.Service) (*APIService, error) {
	svc := &APIService{router: echo.New(), statsService: statsService}

	svc.router.Logger.SetLevel(log.INFO)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewSonicSerializer()
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},                    // Разрешить запросы только от этого домена
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE}, // Разрешить эти HTTP-методы
		AllowHeaders: []string{"Content-Type", "Authorization"},            // Разрешить эти заголовки
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(store, statsService)

	statsGroup := api.Group("/stats")
	statsGroup.GET("/global", cntrl.GetGlobalStats)
	statsGroup.GET("/regions", cntrl.GetRegionStats)

	regions := api.Group("/regions")
	regions.GET("/list", cntrl.GetRegions)

	admin := api.Group("/admin")
	admin.POST("/login", cntrl.LoginAdmin)

	etl := api.Group("/etl", svc.AdminMiddleware)
	etl.POST("/import/stopcorona", cntrl.ImportStopCorona)
	etl.POST("/import/gogov", cntrl.ImportGogov)
	etl.POST("/transform/global", cntrl.TransformGlobal)
	etl.POST("/transform/regions", cntrl.TransformRegions)
	etl.POST("/transform/legacy-global", cntrl.TransformLegacyGlobal)
	etl.POST("/transform/legacy-regions", cntrl.TransformLegacyRegions)

	return svc, nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/ougirez/covidstats/internal/etl/parser"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/ougirez/covidstats/internal/pkg/store"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
	"github.com/ougirez/covidstats/internal/service/stats"
	"github.com/spf13/viper"
)

// setupStore opens the main pool and, when configured, the read-only mirror
// pool. With no mirror configured the main pool doubles for both, the legacy
// transforms then just see empty mirror tables.
func setupStore(ctx context.Context) (store.Store, error) {
	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperPostgresDSN))
	if err != nil {
		return nil, fmt.Errorf("xpgx.NewPool: %w", err)
	}

	external := pool
	if dsn := viper.GetString(constants.ViperExternalDSN); dsn != "" {
		external, err = xpgx.NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("xpgx.NewPool, external: %w", err)
		}
	}

	return store.NewStore(pool, external), nil
}

func setupService(s store.Store) *stats.Service {
	stopcorona := parser.NewStopCoronaParser(
		viper.GetString(constants.ViperStopCoronaURLBase),
		viper.GetString(constants.ViperStopCoronaArticles),
		viper.GetInt(constants.ViperStopCoronaMaxPage),
	)
	gogov := parser.NewGogovParser(viper.GetString(constants.ViperGogovURL))

	return stats.NewService(s, stopcorona, gogov)
}

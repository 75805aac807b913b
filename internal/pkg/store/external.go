package store

import (
	"context"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
)

// ExternalDailyStats reads the daily statistics mirror. With withRegion unset
// the region column is still selected (the legacy global transformer sums the
// per-region rows itself), the flag only controls ordering for deterministic
// grouping downstream.
func (s *store) ExternalDailyStats(ctx context.Context, withRegion bool) ([]*domain.ExternalDailyStat, error) {
	order := "date"
	if withRegion {
		order = "region, date"
	}

	query := builder().
		Select("date", "region", "death_per_day", "infection_per_day", "recovery_per_day").
		From(tableExternalStats).
		OrderBy(order)

	selected, err := xpgx.Selectx[domain.ExternalDailyStat](ctx, s.external, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ExternalVaccinations(ctx context.Context) ([]*domain.ExternalVaccination, error) {
	query := builder().
		Select("date", "daily_vaccinations", "daily_people_vaccinated").
		From(tableExternalVaccine).
		OrderBy("date")

	selected, err := xpgx.Selectx[domain.ExternalVaccination](ctx, s.external, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

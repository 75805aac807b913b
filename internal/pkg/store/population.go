package store

import (
	"context"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
)

var populationColumns = []string{"year", "region", "population"}

func (s *store) UpsertPopulation(ctx context.Context, records []*domain.PopulationRecord) error {
	for _, part := range chunk(records, batchSize) {
		query := builder().Insert(tablePopulation).Columns(populationColumns...)
		for _, r := range part {
			query = query.Values(r.Year, r.Region, r.Population)
		}
		query = query.Suffix(`
on conflict (year, region)
do update
set population = excluded.population`)

		if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
			return wrapErr(err)
		}
	}

	return nil
}

func (s *store) PopulationTable(ctx context.Context) ([]*domain.PopulationRecord, error) {
	query := builder().Select(populationColumns...).
		From(tablePopulation).
		OrderBy("year, region")

	selected, err := xpgx.Selectx[domain.PopulationRecord](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

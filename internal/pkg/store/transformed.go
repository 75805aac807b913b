package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
)

var globalStatColumns = []string{
	"start_date", "end_date",
	"weekly_infected", "weekly_deaths", "weekly_recovered",
	"weekly_first_component", "weekly_second_component", "weekly_vaccinations",
	"infected", "deaths", "recovered", "first_component", "second_component",
	"weekly_infected_per_100000", "weekly_deaths_per_100000", "weekly_recovered_per_100000",
	"infected_per_100000", "deaths_per_100000", "recovered_per_100000",
	"weekly_recovered_infected_ratio", "weekly_deaths_infected_ratio",
	"weekly_vaccinations_infected_ratio", "vaccinations_population_ratio",
}

var regionStatColumns = []string{
	"region", "start_date", "end_date",
	"weekly_infected", "weekly_deaths", "weekly_recovered",
	"infected", "deaths", "recovered",
	"weekly_infected_per_100000", "weekly_deaths_per_100000", "weekly_recovered_per_100000",
	"infected_per_100000", "deaths_per_100000", "recovered_per_100000",
	"weekly_recovered_infected_ratio", "weekly_deaths_infected_ratio",
}

func globalStatValues(r *domain.GlobalStat) []any {
	return []any{
		r.StartDate, r.EndDate,
		r.WeeklyInfected, r.WeeklyDeaths, r.WeeklyRecovered,
		r.WeeklyFirstComponent, r.WeeklySecondComponent, r.WeeklyVaccinations,
		r.Infected, r.Deaths, r.Recovered, r.FirstComponent, r.SecondComponent,
		r.WeeklyInfectedPer100000, r.WeeklyDeathsPer100000, r.WeeklyRecoveredPer100000,
		r.InfectedPer100000, r.DeathsPer100000, r.RecoveredPer100000,
		r.WeeklyRecoveredInfectedRatio, r.WeeklyDeathsInfectedRatio,
		r.WeeklyVaccinationsInfectedRatio, r.VaccinationsPopulationRatio,
	}
}

func regionStatValues(r *domain.RegionStat) []any {
	return []any{
		r.Region, r.StartDate, r.EndDate,
		r.WeeklyInfected, r.WeeklyDeaths, r.WeeklyRecovered,
		r.Infected, r.Deaths, r.Recovered,
		r.WeeklyInfectedPer100000, r.WeeklyDeathsPer100000, r.WeeklyRecoveredPer100000,
		r.InfectedPer100000, r.DeathsPer100000, r.RecoveredPer100000,
		r.WeeklyRecoveredInfectedRatio, r.WeeklyDeathsInfectedRatio,
	}
}

func (s *store) ListGlobalStats(ctx context.Context) ([]*domain.GlobalStat, error) {
	query := builder().Select(globalStatColumns...).
		From(tableGlobalStats).
		OrderBy("start_date")

	selected, err := xpgx.Selectx[domain.GlobalStat](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) InsertGlobalStats(ctx context.Context, records []*domain.GlobalStat) error {
	if len(records) == 0 {
		return nil
	}

	for _, part := range chunk(records, batchSize) {
		query := builder().Insert(tableGlobalStats).Columns(globalStatColumns...)
		for _, r := range part {
			query = query.Values(globalStatValues(r)...)
		}

		if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
			return wrapErr(err)
		}
	}

	return nil
}

// UpdateGlobalStats rewrites the mutable columns of already stored rows,
// addressed by natural key, as one pgx batch.
func (s *store) UpdateGlobalStats(ctx context.Context, records []*domain.GlobalStat) error {
	if len(records) == 0 {
		return nil
	}

	batch := new(pgx.Batch)
	for _, r := range records {
		query := builder().Update(tableGlobalStats).
			Where(sq.And{
				sq.Eq{"start_date": r.StartDate},
				sq.Eq{"end_date": r.EndDate},
			})

		values := globalStatValues(r)
		for i, column := range globalStatColumns[2:] {
			query = query.Set(column, values[i+2])
		}

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("ToSql: %w", err)
		}
		batch.Queue(sql, args...)
	}

	return s.sendBatch(ctx, batch)
}

func (s *store) ListRegionStats(ctx context.Context) ([]*domain.RegionStat, error) {
	query := builder().Select(regionStatColumns...).
		From(tableRegionStats).
		OrderBy("region, start_date")

	selected, err := xpgx.Selectx[domain.RegionStat](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) InsertRegionStats(ctx context.Context, records []*domain.RegionStat) error {
	if len(records) == 0 {
		return nil
	}

	for _, part := range chunk(records, batchSize) {
		query := builder().Insert(tableRegionStats).Columns(regionStatColumns...)
		for _, r := range part {
			query = query.Values(regionStatValues(r)...)
		}

		if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
			return wrapErr(err)
		}
	}

	return nil
}

func (s *store) UpdateRegionStats(ctx context.Context, records []*domain.RegionStat) error {
	if len(records) == 0 {
		return nil
	}

	batch := new(pgx.Batch)
	for _, r := range records {
		query := builder().Update(tableRegionStats).
			Where(sq.And{
				sq.Eq{"start_date": r.StartDate},
				sq.Eq{"end_date": r.EndDate},
				sq.Eq{"region": r.Region},
			})

		values := regionStatValues(r)
		for i, column := range regionStatColumns[3:] {
			query = query.Set(column, values[i+3])
		}

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("ToSql: %w", err)
		}
		batch.Queue(sql, args...)
	}

	return s.sendBatch(ctx, batch)
}

func (s *store) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	results := s.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return wrapErr(err)
		}
	}

	return nil
}

// GlobalBaseline returns the highest non-null cumulative totals. Rows whose
// week starts at or after before are skipped, so a week being recomputed does
// not count itself.
func (s *store) GlobalBaseline(ctx context.Context, before *time.Time) (*domain.Baseline, error) {
	query := builder().Select(
		"coalesce(max(infected), 0) as infected",
		"coalesce(max(recovered), 0) as recovered",
		"coalesce(max(deaths), 0) as deaths",
		"coalesce(max(first_component), 0) as first_component",
		"coalesce(max(second_component), 0) as second_component",
	).From(tableGlobalStats)

	if before != nil {
		query = query.Where(sq.Lt{"start_date": *before})
	}

	selected, err := xpgx.Getx[domain.Baseline](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) RegionBaselines(ctx context.Context, before *time.Time) (domain.RegionBaselines, error) {
	type regionBaseline struct {
		Region    string `db:"region"`
		Infected  int64  `db:"infected"`
		Recovered int64  `db:"recovered"`
		Deaths    int64  `db:"deaths"`
	}

	query := builder().Select(
		"region",
		"coalesce(max(infected), 0) as infected",
		"coalesce(max(recovered), 0) as recovered",
		"coalesce(max(deaths), 0) as deaths",
	).From(tableRegionStats).
		GroupBy("region")

	if before != nil {
		query = query.Where(sq.Lt{"start_date": *before})
	}

	selected, err := xpgx.Selectx[regionBaseline](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	baselines := make(domain.RegionBaselines, len(selected))
	for _, b := range selected {
		baselines[b.Region] = domain.Baseline{
			Infected:  b.Infected,
			Recovered: b.Recovered,
			Deaths:    b.Deaths,
		}
	}

	return baselines, nil
}

func (s *store) GlobalStatsRange(ctx context.Context, from, to *time.Time) ([]*domain.GlobalStat, error) {
	query := builder().Select(globalStatColumns...).
		From(tableGlobalStats).
		OrderBy("start_date")

	if from != nil {
		query = query.Where(sq.GtOrEq{"start_date": *from})
	}
	if to != nil {
		query = query.Where(sq.LtOrEq{"end_date": *to})
	}

	selected, err := xpgx.Selectx[domain.GlobalStat](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) RegionStatsRange(ctx context.Context, region *string, from, to *time.Time) ([]*domain.RegionStat, error) {
	query := builder().Select(regionStatColumns...).
		From(tableRegionStats).
		OrderBy("region, start_date")

	if region != nil {
		query = query.Where(sq.Eq{"region": *region})
	}
	if from != nil {
		query = query.Where(sq.GtOrEq{"start_date": *from})
	}
	if to != nil {
		query = query.Where(sq.LtOrEq{"end_date": *to})
	}

	selected, err := xpgx.Selectx[domain.RegionStat](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListRegions(ctx context.Context) ([]string, error) {
	type row struct {
		Region string `db:"region"`
	}

	query := builder().Select("distinct region").
		From(tableRegionStats).
		OrderBy("region")

	selected, err := xpgx.Selectx[row](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	regions := make([]string, 0, len(selected))
	for _, r := range selected {
		regions = append(regions, r.Region)
	}

	return regions, nil
}

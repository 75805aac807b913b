package mapper

import (
	"context"
	"fmt"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/ougirez/covidstats/internal/pkg/logger"
	"go.uber.org/zap"
)

type RegionStatStorage interface {
	ListRegionStats(ctx context.Context) ([]*domain.RegionStat, error)
	InsertRegionStats(ctx context.Context, records []*domain.RegionStat) error
	UpdateRegionStats(ctx context.Context, records []*domain.RegionStat) error
}

type regionKey struct {
	start  string
	end    string
	region string
}

// RegionStatMapper upserts per-region weekly records by their
// (start_date, end_date, region) natural key.
type RegionStatMapper struct {
	storage  RegionStatStorage
	existing map[regionKey]*domain.RegionStat
}

func NewRegionStatMapper(ctx context.Context, storage RegionStatStorage) (*RegionStatMapper, error) {
	stored, err := storage.ListRegionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.ListRegionStats: %w", err)
	}

	existing := make(map[regionKey]*domain.RegionStat, len(stored))
	for _, r := range stored {
		existing[regionKey{start: dateKey(r.StartDate), end: dateKey(r.EndDate), region: r.Region}] = r
	}

	return &RegionStatMapper{storage: storage, existing: existing}, nil
}

func (m *RegionStatMapper) Map(ctx context.Context, records []*domain.RegionStat) error {
	insert, update := m.split(records)

	if len(insert) > 0 {
		if err := m.storage.InsertRegionStats(ctx, insert); err != nil {
			return fmt.Errorf("storage.InsertRegionStats: %w", err)
		}
		for _, r := range insert {
			logger.Info(ctx, "inserted region stat", regionStatFields(r)...)
		}
	}

	if len(update) > 0 {
		if err := m.storage.UpdateRegionStats(ctx, update); err != nil {
			return fmt.Errorf("storage.UpdateRegionStats: %w", err)
		}
		for _, r := range update {
			logger.Info(ctx, "updated region stat", regionStatFields(r)...)
		}
	}

	return nil
}

func (m *RegionStatMapper) split(records []*domain.RegionStat) (insert, update []*domain.RegionStat) {
	for _, r := range records {
		key := regionKey{start: dateKey(r.StartDate), end: dateKey(r.EndDate), region: r.Region}
		stored, ok := m.existing[key]

		switch {
		case !ok:
			insert = append(insert, r)
		case regionStatChanged(stored, r):
			update = append(update, r)
		}
		m.existing[key] = r
	}

	return insert, update
}

func regionStatChanged(stored, incoming *domain.RegionStat) bool {
	return !(eqInt64(stored.WeeklyInfected, incoming.WeeklyInfected) &&
		eqInt64(stored.WeeklyDeaths, incoming.WeeklyDeaths) &&
		eqInt64(stored.WeeklyRecovered, incoming.WeeklyRecovered) &&
		eqInt64(stored.Infected, incoming.Infected) &&
		eqInt64(stored.Deaths, incoming.Deaths) &&
		eqInt64(stored.Recovered, incoming.Recovered) &&
		eqFloat64(stored.WeeklyInfectedPer100000, incoming.WeeklyInfectedPer100000) &&
		eqFloat64(stored.WeeklyDeathsPer100000, incoming.WeeklyDeathsPer100000) &&
		eqFloat64(stored.WeeklyRecoveredPer100000, incoming.WeeklyRecoveredPer100000) &&
		eqFloat64(stored.InfectedPer100000, incoming.InfectedPer100000) &&
		eqFloat64(stored.DeathsPer100000, incoming.DeathsPer100000) &&
		eqFloat64(stored.RecoveredPer100000, incoming.RecoveredPer100000) &&
		eqFloat64(stored.WeeklyRecoveredInfectedRatio, incoming.WeeklyRecoveredInfectedRatio) &&
		eqFloat64(stored.WeeklyDeathsInfectedRatio, incoming.WeeklyDeathsInfectedRatio))
}

func regionStatFields(r *domain.RegionStat) []zap.Field {
	return []zap.Field{
		zap.String("region", r.Region),
		zap.String("start_date", r.StartDate.Format(constants.KeyDateFormat)),
		zap.String("end_date", r.EndDate.Format(constants.KeyDateFormat)),
		zap.Int64p("weekly_infected", r.WeeklyInfected),
		zap.Int64p("weekly_deaths", r.WeeklyDeaths),
		zap.Int64p("weekly_recovered", r.WeeklyRecovered),
		zap.Int64p("infected", r.Infected),
		zap.Int64p("deaths", r.Deaths),
		zap.Int64p("recovered", r.Recovered),
		zap.Float64p("weekly_infected_per_100000", r.WeeklyInfectedPer100000),
		zap.Float64p("weekly_deaths_per_100000", r.WeeklyDeathsPer100000),
		zap.Float64p("weekly_recovered_per_100000", r.WeeklyRecoveredPer100000),
		zap.Float64p("infected_per_100000", r.InfectedPer100000),
		zap.Float64p("deaths_per_100000", r.DeathsPer100000),
		zap.Float64p("recovered_per_100000", r.RecoveredPer100000),
		zap.Float64p("weekly_recovered_infected_ratio", r.WeeklyRecoveredInfectedRatio),
		zap.Float64p("weekly_deaths_infected_ratio", r.WeeklyDeathsInfectedRatio),
	}
}

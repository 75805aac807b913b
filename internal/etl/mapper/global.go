package mapper

import (
	"context"
	"fmt"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/ougirez/covidstats/internal/pkg/logger"
	"go.uber.org/zap"
)

type GlobalStatStorage interface {
	ListGlobalStats(ctx context.Context) ([]*domain.GlobalStat, error)
	InsertGlobalStats(ctx context.Context, records []*domain.GlobalStat) error
	UpdateGlobalStats(ctx context.Context, records []*domain.GlobalStat) error
}

type globalKey struct {
	start string
	end   string
}

// GlobalStatMapper upserts nation-wide weekly records by their
// (start_date, end_date) natural key.
type GlobalStatMapper struct {
	storage  GlobalStatStorage
	existing map[globalKey]*domain.GlobalStat
}

// NewGlobalStatMapper loads the stored collection into an in-memory index.
// The collection holds a few hundred weeks at most, one row per calendar
// week, so a full load stays cheap.
func NewGlobalStatMapper(ctx context.Context, storage GlobalStatStorage) (*GlobalStatMapper, error) {
	stored, err := storage.ListGlobalStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.ListGlobalStats: %w", err)
	}

	existing := make(map[globalKey]*domain.GlobalStat, len(stored))
	for _, r := range stored {
		existing[globalKey{start: dateKey(r.StartDate), end: dateKey(r.EndDate)}] = r
	}

	return &GlobalStatMapper{storage: storage, existing: existing}, nil
}

// Map writes the batch: one batched insert for unseen keys, one batched
// update for keys whose mutable fields changed. Rows equal to what is stored
// are not rewritten and not logged.
func (m *GlobalStatMapper) Map(ctx context.Context, records []*domain.GlobalStat) error {
	insert, update := m.split(records)

	if len(insert) > 0 {
		if err := m.storage.InsertGlobalStats(ctx, insert); err != nil {
			return fmt.Errorf("storage.InsertGlobalStats: %w", err)
		}
		for _, r := range insert {
			logger.Info(ctx, "inserted global stat", globalStatFields(r)...)
		}
	}

	if len(update) > 0 {
		if err := m.storage.UpdateGlobalStats(ctx, update); err != nil {
			return fmt.Errorf("storage.UpdateGlobalStats: %w", err)
		}
		for _, r := range update {
			logger.Info(ctx, "updated global stat", globalStatFields(r)...)
		}
	}

	return nil
}

func (m *GlobalStatMapper) split(records []*domain.GlobalStat) (insert, update []*domain.GlobalStat) {
	for _, r := range records {
		key := globalKey{start: dateKey(r.StartDate), end: dateKey(r.EndDate)}
		stored, ok := m.existing[key]

		switch {
		case !ok:
			insert = append(insert, r)
		case globalStatChanged(stored, r):
			update = append(update, r)
		}
		m.existing[key] = r
	}

	return insert, update
}

func globalStatChanged(stored, incoming *domain.GlobalStat) bool {
	return !(eqInt64(stored.WeeklyInfected, incoming.WeeklyInfected) &&
		eqInt64(stored.WeeklyDeaths, incoming.WeeklyDeaths) &&
		eqInt64(stored.WeeklyRecovered, incoming.WeeklyRecovered) &&
		eqInt64(stored.WeeklyFirstComponent, incoming.WeeklyFirstComponent) &&
		eqInt64(stored.WeeklySecondComponent, incoming.WeeklySecondComponent) &&
		eqInt64(stored.WeeklyVaccinations, incoming.WeeklyVaccinations) &&
		eqInt64(stored.Infected, incoming.Infected) &&
		eqInt64(stored.Deaths, incoming.Deaths) &&
		eqInt64(stored.Recovered, incoming.Recovered) &&
		eqInt64(stored.FirstComponent, incoming.FirstComponent) &&
		eqInt64(stored.SecondComponent, incoming.SecondComponent) &&
		eqFloat64(stored.WeeklyInfectedPer100000, incoming.WeeklyInfectedPer100000) &&
		eqFloat64(stored.WeeklyDeathsPer100000, incoming.WeeklyDeathsPer100000) &&
		eqFloat64(stored.WeeklyRecoveredPer100000, incoming.WeeklyRecoveredPer100000) &&
		eqFloat64(stored.InfectedPer100000, incoming.InfectedPer100000) &&
		eqFloat64(stored.DeathsPer100000, incoming.DeathsPer100000) &&
		eqFloat64(stored.RecoveredPer100000, incoming.RecoveredPer100000) &&
		eqFloat64(stored.WeeklyRecoveredInfectedRatio, incoming.WeeklyRecoveredInfectedRatio) &&
		eqFloat64(stored.WeeklyDeathsInfectedRatio, incoming.WeeklyDeathsInfectedRatio) &&
		eqFloat64(stored.WeeklyVaccinationsInfectedRatio, incoming.WeeklyVaccinationsInfectedRatio) &&
		eqFloat64(stored.VaccinationsPopulationRatio, incoming.VaccinationsPopulationRatio))
}

func globalStatFields(r *domain.GlobalStat) []zap.Field {
	return []zap.Field{
		zap.String("start_date", r.StartDate.Format(constants.KeyDateFormat)),
		zap.String("end_date", r.EndDate.Format(constants.KeyDateFormat)),
		zap.Int64p("weekly_infected", r.WeeklyInfected),
		zap.Int64p("weekly_deaths", r.WeeklyDeaths),
		zap.Int64p("weekly_recovered", r.WeeklyRecovered),
		zap.Int64p("weekly_first_component", r.WeeklyFirstComponent),
		zap.Int64p("weekly_second_component", r.WeeklySecondComponent),
		zap.Int64p("weekly_vaccinations", r.WeeklyVaccinations),
		zap.Int64p("infected", r.Infected),
		zap.Int64p("deaths", r.Deaths),
		zap.Int64p("recovered", r.Recovered),
		zap.Int64p("first_component", r.FirstComponent),
		zap.Int64p("second_component", r.SecondComponent),
		zap.Float64p("weekly_infected_per_100000", r.WeeklyInfectedPer100000),
		zap.Float64p("weekly_deaths_per_100000", r.WeeklyDeathsPer100000),
		zap.Float64p("weekly_recovered_per_100000", r.WeeklyRecoveredPer100000),
		zap.Float64p("infected_per_100000", r.InfectedPer100000),
		zap.Float64p("deaths_per_100000", r.DeathsPer100000),
		zap.Float64p("recovered_per_100000", r.RecoveredPer100000),
		zap.Float64p("weekly_recovered_infected_ratio", r.WeeklyRecoveredInfectedRatio),
		zap.Float64p("weekly_deaths_infected_ratio", r.WeeklyDeathsInfectedRatio),
		zap.Float64p("weekly_vaccinations_infected_ratio", r.WeeklyVaccinationsInfectedRatio),
		zap.Float64p("vaccinations_population_ratio", r.VaccinationsPopulationRatio),
	}
}

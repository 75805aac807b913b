package transform

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/etl/regions"
	"github.com/ougirez/covidstats/internal/pkg/utils"
)

// LegacyRegionTransformer reconstructs every region's weekly history from
// the external mirror, cumulative sums running from zero per region.
type LegacyRegionTransformer struct {
	external   ExternalSource
	normalizer *regions.Normalizer
	calc       *Calculator
}

func NewLegacyRegionTransformer(external ExternalSource, normalizer *regions.Normalizer, calc *Calculator) *LegacyRegionTransformer {
	return &LegacyRegionTransformer{external: external, normalizer: normalizer, calc: calc}
}

func (t *LegacyRegionTransformer) Run(ctx context.Context) ([]*domain.RegionStat, error) {
	external, err := t.external.ExternalDailyStats(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("external.ExternalDailyStats: %w", err)
	}

	weekly := t.resampleWeekly(external)
	t.calc.ApplyAllRegionTransforms(weekly)

	return weekly, nil
}

// resampleWeekly canonicalizes region names, then buckets each region's
// daily series into Tuesday-Monday weeks independently.
func (t *LegacyRegionTransformer) resampleWeekly(rows []*domain.ExternalDailyStat) []*domain.RegionStat {
	type weekKey struct {
		region string
		end    time.Time
	}

	byWeek := make(map[weekKey]*domain.RegionStat)
	for _, r := range rows {
		key := weekKey{region: t.normalizer.Normalize(r.Region), end: WeekEnd(r.Date)}
		week, ok := byWeek[key]
		if !ok {
			week = &domain.RegionStat{
				Region:          key.region,
				StartDate:       WeekStart(key.end),
				EndDate:         key.end,
				WeeklyInfected:  utils.Ptr(int64(0)),
				WeeklyDeaths:    utils.Ptr(int64(0)),
				WeeklyRecovered: utils.Ptr(int64(0)),
			}
			byWeek[key] = week
		}

		*week.WeeklyInfected += r.InfectionPerDay
		*week.WeeklyDeaths += r.DeathPerDay
		*week.WeeklyRecovered += r.RecoveryPerDay
	}

	weeks := make([]*domain.RegionStat, 0, len(byWeek))
	for _, w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Region != weeks[j].Region {
			return weeks[i].Region < weeks[j].Region
		}
		return weeks[i].StartDate.Before(weeks[j].StartDate)
	})

	return weeks
}

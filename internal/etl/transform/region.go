package transform

import (
	"context"
	"fmt"
	"sort"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/etl/regions"
	"github.com/ougirez/covidstats/internal/pkg/utils"
)

// RegionTransformer is the live per-region pipeline: bulletin weeks become
// weekly records keyed by canonical region, with cumulative totals extended
// from each region's stored baseline.
type RegionTransformer struct {
	bulletin   BulletinSource
	baselines  BaselineSource
	normalizer *regions.Normalizer
	calc       *Calculator
	latest     bool
}

func NewRegionTransformer(
	bulletin BulletinSource,
	baselines BaselineSource,
	normalizer *regions.Normalizer,
	calc *Calculator,
	latest bool,
) *RegionTransformer {
	return &RegionTransformer{bulletin: bulletin, baselines: baselines, normalizer: normalizer, calc: calc, latest: latest}
}

func (t *RegionTransformer) Run(ctx context.Context) ([]*domain.RegionStat, error) {
	weeks, err := t.bulletin.RegionBulletin(ctx, t.latest)
	if err != nil {
		return nil, fmt.Errorf("bulletin.RegionBulletin: %w", err)
	}
	if len(weeks) == 0 {
		return nil, nil
	}

	earliest := weeks[0].StartDate
	for _, w := range weeks {
		if w.StartDate.Before(earliest) {
			earliest = w.StartDate
		}
	}

	baselines, err := t.baselines.RegionBaselines(ctx, &earliest)
	if err != nil {
		return nil, fmt.Errorf("baselines.RegionBaselines: %w", err)
	}

	rows := make([]*domain.RegionStat, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, &domain.RegionStat{
			Region:          t.normalizer.Normalize(w.Region),
			StartDate:       w.StartDate,
			EndDate:         w.EndDate,
			WeeklyInfected:  utils.Ptr(w.Infected),
			WeeklyRecovered: utils.Ptr(w.Recovered),
			WeeklyDeaths:    utils.Ptr(w.Deaths),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		return rows[i].StartDate.Before(rows[j].StartDate)
	})

	t.calc.ExtendRegionCumulativeStats(rows, baselines)
	t.calc.AddRegionPer100000Stats(rows)
	t.calc.AddRegionRatioStats(rows)
	for _, r := range rows {
		sanitizeRegion(r)
	}

	return rows, nil
}

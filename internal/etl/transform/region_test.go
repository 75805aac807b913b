package transform

import (
	"context"
	"testing"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/etl/regions"
	"github.com/stretchr/testify/require"
)

func TestRegionTransformerExtendsBaselines(t *testing.T) {
	source := &fakeSource{
		regionBulletin: []*domain.BulletinRecord{
			{
				StartDate: day(2022, time.November, 8),
				EndDate:   day(2022, time.November, 14),
				Region:    "Республика Карелия",
				Infected:  21,
				Recovered: 31,
				Deaths:    0,
			},
			{
				StartDate: day(2022, time.November, 8),
				EndDate:   day(2022, time.November, 14),
				Region:    "г. Москва",
				Infected:  3000,
				Recovered: 2800,
				Deaths:    20,
			},
		},
		regionBaselines: domain.RegionBaselines{
			"Карелия": {Infected: 2566, Recovered: 2618, Deaths: 15},
		},
	}
	normalizer := regions.NewNormalizer(regions.DefaultRules())

	rows, err := NewRegionTransformer(source, source, normalizer, newTestCalculator(), true).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// sorted by canonical region name
	karelia, moscow := rows[0], rows[1]
	require.Equal(t, "Карелия", karelia.Region)
	require.Equal(t, "Москва", moscow.Region)

	require.Equal(t, int64(2587), *karelia.Infected)
	require.Equal(t, int64(2649), *karelia.Recovered)
	require.Equal(t, int64(15), *karelia.Deaths)

	// no stored baseline, totals start from this week
	require.Equal(t, int64(3000), *moscow.Infected)
	require.Equal(t, int64(2800), *moscow.Recovered)
	require.Equal(t, int64(20), *moscow.Deaths)

	require.InDelta(t, float64(31)/float64(21), *karelia.WeeklyRecoveredInfectedRatio, floatTolerance)
	// zero deaths over nonzero infected is a ratio of zero, not a gap
	require.InDelta(t, 0, *karelia.WeeklyDeathsInfectedRatio, floatTolerance)
}

func TestRegionTransformerEmptyBulletin(t *testing.T) {
	rows, err := NewRegionTransformer(&fakeSource{}, &fakeSource{}, regions.NewNormalizer(regions.DefaultRules()), newTestCalculator(), false).Run(context.Background())
	require.NoError(t, err)
	require.Nil(t, rows)
}

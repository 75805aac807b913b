package transform

import (
	"testing"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/utils"
	"github.com/stretchr/testify/require"
)

const floatTolerance = 1e-9

func goldenGlobalInput() []*domain.GlobalStat {
	return []*domain.GlobalStat{
		{
			StartDate:             day(2020, time.December, 8),
			EndDate:               day(2020, time.December, 14),
			WeeklyInfected:        utils.Ptr(int64(138919)),
			WeeklyDeaths:          utils.Ptr(int64(2782)),
			WeeklyRecovered:       utils.Ptr(int64(0)),
			WeeklyFirstComponent:  utils.Ptr(int64(0)),
			WeeklySecondComponent: utils.Ptr(int64(0)),
			WeeklyVaccinations:    utils.Ptr(int64(0)),
		},
		{
			StartDate:             day(2020, time.December, 15),
			EndDate:               day(2020, time.December, 21),
			WeeklyInfected:        utils.Ptr(int64(33253)),
			WeeklyDeaths:          utils.Ptr(int64(390)),
			WeeklyRecovered:       utils.Ptr(int64(31554)),
			WeeklyFirstComponent:  utils.Ptr(int64(350683)),
			WeeklySecondComponent: utils.Ptr(int64(362806)),
			WeeklyVaccinations:    utils.Ptr(int64(713489)),
		},
	}
}

func TestAddCumulativeStatsGlobal(t *testing.T) {
	rows := goldenGlobalInput()
	newTestCalculator().AddCumulativeStats(rows)

	require.Equal(t, int64(138919), *rows[0].Infected)
	require.Equal(t, int64(2782), *rows[0].Deaths)
	require.Equal(t, int64(0), *rows[0].Recovered)
	require.Equal(t, int64(0), *rows[0].FirstComponent)
	require.Equal(t, int64(0), *rows[0].SecondComponent)

	require.Equal(t, int64(172172), *rows[1].Infected)
	require.Equal(t, int64(3172), *rows[1].Deaths)
	require.Equal(t, int64(31554), *rows[1].Recovered)
	require.Equal(t, int64(350683), *rows[1].FirstComponent)
	require.Equal(t, int64(362806), *rows[1].SecondComponent)
}

func TestAddCumulativeStatsCarriesOverGaps(t *testing.T) {
	rows := goldenGlobalInput()
	// the second week reported nothing, totals must carry forward
	rows[1].WeeklyInfected = nil
	rows[1].WeeklyDeaths = nil
	rows[1].WeeklyRecovered = nil
	rows[1].WeeklyFirstComponent = nil
	rows[1].WeeklySecondComponent = nil

	newTestCalculator().AddCumulativeStats(rows)

	require.Equal(t, *rows[0].Infected, *rows[1].Infected)
	require.Equal(t, *rows[0].Deaths, *rows[1].Deaths)
	require.Equal(t, *rows[0].Recovered, *rows[1].Recovered)
	require.Equal(t, *rows[0].FirstComponent, *rows[1].FirstComponent)
	require.Equal(t, *rows[0].SecondComponent, *rows[1].SecondComponent)
}

func TestExtendCumulativeStats(t *testing.T) {
	rows := goldenGlobalInput()[1:]
	baseline := domain.Baseline{Infected: 138919, Recovered: 0, Deaths: 2782}

	newTestCalculator().ExtendCumulativeStats(rows, baseline)

	require.Equal(t, int64(172172), *rows[0].Infected)
	require.Equal(t, int64(3172), *rows[0].Deaths)
	require.Equal(t, int64(31554), *rows[0].Recovered)
}

func TestApplyAllTransformsGlobal(t *testing.T) {
	rows := goldenGlobalInput()
	newTestCalculator().ApplyAllTransforms(rows)

	first, second := rows[0], rows[1]

	require.InDelta(t, 94.85929912976823, *first.WeeklyInfectedPer100000, floatTolerance)
	require.InDelta(t, 1.8996578594649778, *first.WeeklyDeathsPer100000, floatTolerance)
	require.InDelta(t, 0, *first.WeeklyRecoveredPer100000, floatTolerance)
	require.InDelta(t, 94.85929912976823, *first.InfectedPer100000, floatTolerance)
	require.InDelta(t, 1.8996578594649778, *first.DeathsPer100000, floatTolerance)
	require.InDelta(t, 0, *first.RecoveredPer100000, floatTolerance)
	require.InDelta(t, 0, *first.WeeklyRecoveredInfectedRatio, floatTolerance)
	require.InDelta(t, 0.0200260583505496, *first.WeeklyDeathsInfectedRatio, floatTolerance)
	require.InDelta(t, 0, *first.WeeklyVaccinationsInfectedRatio, floatTolerance)
	require.InDelta(t, 0, *first.VaccinationsPopulationRatio, floatTolerance)

	require.InDelta(t, 22.70644241581197, *second.WeeklyInfectedPer100000, floatTolerance)
	require.InDelta(t, 0.2663071765605109, *second.WeeklyDeathsPer100000, floatTolerance)
	require.InDelta(t, 21.546299100488106, *second.WeeklyRecoveredPer100000, floatTolerance)
	require.InDelta(t, 117.5657415455802, *second.InfectedPer100000, floatTolerance)
	require.InDelta(t, 2.1659650360254883, *second.DeathsPer100000, floatTolerance)
	require.InDelta(t, 21.546299100488106, *second.RecoveredPer100000, floatTolerance)
	require.InDelta(t, 0.9489068655459658, *second.WeeklyRecoveredInfectedRatio, floatTolerance)
	require.InDelta(t, 0.011728265118936636, *second.WeeklyDeathsInfectedRatio, floatTolerance)
	require.InDelta(t, 21.456379875499955, *second.WeeklyVaccinationsInfectedRatio, floatTolerance)
	require.InDelta(t, 0.0024773805512618647, *second.VaccinationsPopulationRatio, floatTolerance)
}

func TestAddRatioStatsZeroWeeklyInfected(t *testing.T) {
	rows := goldenGlobalInput()
	rows[0].WeeklyInfected = utils.Ptr(int64(0))

	calc := newTestCalculator()
	calc.AddCumulativeStats(rows)
	calc.AddRatioStats(rows)

	require.Nil(t, rows[0].WeeklyRecoveredInfectedRatio)
	require.Nil(t, rows[0].WeeklyDeathsInfectedRatio)
	require.Nil(t, rows[0].WeeklyVaccinationsInfectedRatio)
	// no infection denominator involved, stays computed
	require.NotNil(t, rows[0].VaccinationsPopulationRatio)
}

func TestAddRatioStatsNilWeeklyInfected(t *testing.T) {
	rows := goldenGlobalInput()
	rows[0].WeeklyInfected = nil

	calc := newTestCalculator()
	calc.AddRatioStats(rows)

	require.Nil(t, rows[0].WeeklyRecoveredInfectedRatio)
	require.Nil(t, rows[0].WeeklyDeathsInfectedRatio)
	require.Nil(t, rows[0].WeeklyVaccinationsInfectedRatio)
}

func TestApplyAllRegionTransforms(t *testing.T) {
	rows := []*domain.RegionStat{
		{
			Region:          "Карелия",
			StartDate:       day(2020, time.December, 8),
			EndDate:         day(2020, time.December, 14),
			WeeklyInfected:  utils.Ptr(int64(786)),
			WeeklyDeaths:    utils.Ptr(int64(3)),
			WeeklyRecovered: utils.Ptr(int64(472)),
		},
		{
			Region:          "Карелия",
			StartDate:       day(2020, time.December, 15),
			EndDate:         day(2020, time.December, 21),
			WeeklyInfected:  utils.Ptr(int64(1750)),
			WeeklyDeaths:    utils.Ptr(int64(11)),
			WeeklyRecovered: utils.Ptr(int64(2114)),
		},
		{
			Region:          "Москва",
			StartDate:       day(2020, time.December, 8),
			EndDate:         day(2020, time.December, 14),
			WeeklyInfected:  utils.Ptr(int64(12299)),
			WeeklyDeaths:    utils.Ptr(int64(147)),
			WeeklyRecovered: utils.Ptr(int64(9773)),
		},
		{
			Region:          "Москва",
			StartDate:       day(2020, time.December, 15),
			EndDate:         day(2020, time.December, 21),
			WeeklyInfected:  utils.Ptr(int64(30553)),
			WeeklyDeaths:    utils.Ptr(int64(372)),
			WeeklyRecovered: utils.Ptr(int64(28401)),
		},
	}

	newTestCalculator().ApplyAllRegionTransforms(rows)

	// cumulative sums run independently per region
	require.Equal(t, int64(2536), *rows[1].Infected)
	require.Equal(t, int64(14), *rows[1].Deaths)
	require.Equal(t, int64(2586), *rows[1].Recovered)
	require.Equal(t, int64(42852), *rows[3].Infected)
	require.Equal(t, int64(519), *rows[3].Deaths)
	require.Equal(t, int64(38174), *rows[3].Recovered)

	// rates use the national denominator
	require.InDelta(t, 0.5367113866065681, *rows[0].WeeklyInfectedPer100000, floatTolerance)
	require.InDelta(t, 0.0020485167427731605, *rows[0].WeeklyDeathsPer100000, floatTolerance)
	require.InDelta(t, 0.32229996752964396, *rows[0].WeeklyRecoveredPer100000, floatTolerance)
	require.InDelta(t, 1.7316794865575786, *rows[1].InfectedPer100000, floatTolerance)
	require.InDelta(t, 0.009559744799608083, *rows[1].DeathsPer100000, floatTolerance)
	require.InDelta(t, 1.7658214322704646, *rows[1].RecoveredPer100000, floatTolerance)
	require.InDelta(t, 29.261013153771827, *rows[3].InfectedPer100000, floatTolerance)

	require.InDelta(t, 1.208, *rows[1].WeeklyRecoveredInfectedRatio, floatTolerance)
	require.InDelta(t, 0.006285714285714286, *rows[1].WeeklyDeathsInfectedRatio, floatTolerance)
	require.InDelta(t, 0.9295650181651556, *rows[3].WeeklyRecoveredInfectedRatio, floatTolerance)
	require.InDelta(t, 0.01217556377442477, *rows[3].WeeklyDeathsInfectedRatio, floatTolerance)
}

func TestExtendRegionCumulativeStats(t *testing.T) {
	rows := []*domain.RegionStat{
		{
			Region:          "Карелия",
			StartDate:       day(2022, time.November, 8),
			EndDate:         day(2022, time.November, 14),
			WeeklyInfected:  utils.Ptr(int64(21)),
			WeeklyRecovered: utils.Ptr(int64(31)),
			WeeklyDeaths:    utils.Ptr(int64(0)),
		},
	}
	baselines := domain.RegionBaselines{
		"Карелия": {Infected: 2566, Recovered: 2618, Deaths: 15},
	}

	newTestCalculator().ExtendRegionCumulativeStats(rows, baselines)

	require.Equal(t, int64(2587), *rows[0].Infected)
	require.Equal(t, int64(2649), *rows[0].Recovered)
	require.Equal(t, int64(15), *rows[0].Deaths)
}

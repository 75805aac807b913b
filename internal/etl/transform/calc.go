package transform

import (
	"math"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/etl/population"
	"github.com/ougirez/covidstats/internal/pkg/utils"
)

// Calculator derives cumulative totals, per-100000 rates and inter-metric
// ratios on sorted weekly record slices. All operations are pure folds: they
// fill fields in place row by row but never reorder or reindex the slice.
type Calculator struct {
	population population.Provider
}

func NewCalculator(p population.Provider) *Calculator {
	return &Calculator{population: p}
}

// AddCumulativeStats computes running totals of every weekly delta from zero,
// in slice order. A nil weekly delta contributes nothing and the prior
// cumulative value carries forward, so gaps never reset the chain.
func (c *Calculator) AddCumulativeStats(rows []*domain.GlobalStat) {
	c.ExtendCumulativeStats(rows, domain.Baseline{})

	var first, second int64
	for _, r := range rows {
		if r.WeeklyFirstComponent != nil {
			first += *r.WeeklyFirstComponent
		}
		if r.WeeklySecondComponent != nil {
			second += *r.WeeklySecondComponent
		}
		r.FirstComponent = utils.Ptr(first)
		r.SecondComponent = utils.Ptr(second)
	}
}

// ExtendCumulativeStats continues the infected/recovered/deaths totals from a
// stored baseline: the first row's cumulative value is baseline plus its own
// weekly delta. Component totals are not touched, the live feed reports them
// as ready-made counters.
func (c *Calculator) ExtendCumulativeStats(rows []*domain.GlobalStat, baseline domain.Baseline) {
	infected, recovered, deaths := baseline.Infected, baseline.Recovered, baseline.Deaths
	for _, r := range rows {
		if r.WeeklyInfected != nil {
			infected += *r.WeeklyInfected
		}
		if r.WeeklyRecovered != nil {
			recovered += *r.WeeklyRecovered
		}
		if r.WeeklyDeaths != nil {
			deaths += *r.WeeklyDeaths
		}
		r.Infected = utils.Ptr(infected)
		r.Recovered = utils.Ptr(recovered)
		r.Deaths = utils.Ptr(deaths)
	}
}

// AddRegionCumulativeStats computes per-region running totals from zero.
// Rows must be sorted chronologically within each region.
func (c *Calculator) AddRegionCumulativeStats(rows []*domain.RegionStat) {
	c.ExtendRegionCumulativeStats(rows, domain.RegionBaselines{})
}

// ExtendRegionCumulativeStats continues each region's totals from that
// region's stored baseline; regions without a baseline start from zero.
func (c *Calculator) ExtendRegionCumulativeStats(rows []*domain.RegionStat, baselines domain.RegionBaselines) {
	running := make(map[string]domain.Baseline, len(baselines))
	for _, r := range rows {
		b, ok := running[r.Region]
		if !ok {
			b = baselines[r.Region]
		}

		if r.WeeklyInfected != nil {
			b.Infected += *r.WeeklyInfected
		}
		if r.WeeklyRecovered != nil {
			b.Recovered += *r.WeeklyRecovered
		}
		if r.WeeklyDeaths != nil {
			b.Deaths += *r.WeeklyDeaths
		}

		r.Infected = utils.Ptr(b.Infected)
		r.Recovered = utils.Ptr(b.Recovered)
		r.Deaths = utils.Ptr(b.Deaths)
		running[r.Region] = b
	}
}

// AddPer100000Stats derives the six *_per_100000 fields. The denominator is
// the national population for the row's year; it is nonzero by construction,
// so the division is always defined. Nil inputs yield nil rates.
func (c *Calculator) AddPer100000Stats(rows []*domain.GlobalStat) {
	for _, r := range rows {
		pop := c.population.Population(r.EndDate.Year(), "")
		r.WeeklyInfectedPer100000 = per100000(r.WeeklyInfected, pop)
		r.WeeklyDeathsPer100000 = per100000(r.WeeklyDeaths, pop)
		r.WeeklyRecoveredPer100000 = per100000(r.WeeklyRecovered, pop)
		r.InfectedPer100000 = per100000(r.Infected, pop)
		r.DeathsPer100000 = per100000(r.Deaths, pop)
		r.RecoveredPer100000 = per100000(r.Recovered, pop)
	}
}

// AddRegionPer100000Stats mirrors AddPer100000Stats. The denominator stays
// national: the published dashboards compare regions against the same base.
func (c *Calculator) AddRegionPer100000Stats(rows []*domain.RegionStat) {
	for _, r := range rows {
		pop := c.population.Population(r.EndDate.Year(), "")
		r.WeeklyInfectedPer100000 = per100000(r.WeeklyInfected, pop)
		r.WeeklyDeathsPer100000 = per100000(r.WeeklyDeaths, pop)
		r.WeeklyRecoveredPer100000 = per100000(r.WeeklyRecovered, pop)
		r.InfectedPer100000 = per100000(r.Infected, pop)
		r.DeathsPer100000 = per100000(r.Deaths, pop)
		r.RecoveredPer100000 = per100000(r.Recovered, pop)
	}
}

// AddRatioStats fills the ratio fields. Every infection-based ratio is nil
// when weekly_infected is nil or zero; vaccinations_population_ratio has no
// infection denominator and is computed whenever second_component is known.
func (c *Calculator) AddRatioStats(rows []*domain.GlobalStat) {
	for _, r := range rows {
		r.WeeklyRecoveredInfectedRatio = ratio(r.WeeklyRecovered, r.WeeklyInfected)
		r.WeeklyDeathsInfectedRatio = ratio(r.WeeklyDeaths, r.WeeklyInfected)
		r.WeeklyVaccinationsInfectedRatio = ratio(r.WeeklyVaccinations, r.WeeklyInfected)

		pop := c.population.Population(r.EndDate.Year(), "")
		if r.SecondComponent != nil {
			r.VaccinationsPopulationRatio = utils.Ptr(float64(*r.SecondComponent) / float64(pop))
		}
	}
}

func (c *Calculator) AddRegionRatioStats(rows []*domain.RegionStat) {
	for _, r := range rows {
		r.WeeklyRecoveredInfectedRatio = ratio(r.WeeklyRecovered, r.WeeklyInfected)
		r.WeeklyDeathsInfectedRatio = ratio(r.WeeklyDeaths, r.WeeklyInfected)
	}
}

// ApplyAllTransforms runs cumulative, per-100000 and ratio stats from a zero
// baseline and scrubs any non-finite float down to nil.
func (c *Calculator) ApplyAllTransforms(rows []*domain.GlobalStat) {
	c.AddCumulativeStats(rows)
	c.AddPer100000Stats(rows)
	c.AddRatioStats(rows)
	for _, r := range rows {
		sanitizeGlobal(r)
	}
}

func (c *Calculator) ApplyAllRegionTransforms(rows []*domain.RegionStat) {
	c.AddRegionCumulativeStats(rows)
	c.AddRegionPer100000Stats(rows)
	c.AddRegionRatioStats(rows)
	for _, r := range rows {
		sanitizeRegion(r)
	}
}

func per100000(v *int64, pop int64) *float64 {
	if v == nil {
		return nil
	}
	return utils.Ptr(float64(*v) / float64(pop) * 100000)
}

func ratio(numerator, denominator *int64) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}
	return utils.Ptr(float64(*numerator) / float64(*denominator))
}

func finite(v *float64) *float64 {
	if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
		return nil
	}
	return v
}

func sanitizeGlobal(r *domain.GlobalStat) {
	r.WeeklyInfectedPer100000 = finite(r.WeeklyInfectedPer100000)
	r.WeeklyDeathsPer100000 = finite(r.WeeklyDeathsPer100000)
	r.WeeklyRecoveredPer100000 = finite(r.WeeklyRecoveredPer100000)
	r.InfectedPer100000 = finite(r.InfectedPer100000)
	r.DeathsPer100000 = finite(r.DeathsPer100000)
	r.RecoveredPer100000 = finite(r.RecoveredPer100000)
	r.WeeklyRecoveredInfectedRatio = finite(r.WeeklyRecoveredInfectedRatio)
	r.WeeklyDeathsInfectedRatio = finite(r.WeeklyDeathsInfectedRatio)
	r.WeeklyVaccinationsInfectedRatio = finite(r.WeeklyVaccinationsInfectedRatio)
	r.VaccinationsPopulationRatio = finite(r.VaccinationsPopulationRatio)
}

func sanitizeRegion(r *domain.RegionStat) {
	r.WeeklyInfectedPer100000 = finite(r.WeeklyInfectedPer100000)
	r.WeeklyDeathsPer100000 = finite(r.WeeklyDeathsPer100000)
	r.WeeklyRecoveredPer100000 = finite(r.WeeklyRecoveredPer100000)
	r.InfectedPer100000 = finite(r.InfectedPer100000)
	r.DeathsPer100000 = finite(r.DeathsPer100000)
	r.RecoveredPer100000 = finite(r.RecoveredPer100000)
	r.WeeklyRecoveredInfectedRatio = finite(r.WeeklyRecoveredInfectedRatio)
	r.WeeklyDeathsInfectedRatio = finite(r.WeeklyDeathsInfectedRatio)
}

package transform

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/utils"
)

// LegacyGlobalTransformer reconstructs the whole nation-wide weekly history
// from the external mirror, the CSV archive and the vaccination mirror. It
// assumes it starts from the beginning of the epidemic, so cumulative sums
// run from zero and no stored baseline is consulted.
type LegacyGlobalTransformer struct {
	external ExternalSource
	csv      CsvSource
	calc     *Calculator
}

func NewLegacyGlobalTransformer(external ExternalSource, csv CsvSource, calc *Calculator) *LegacyGlobalTransformer {
	return &LegacyGlobalTransformer{external: external, csv: csv, calc: calc}
}

// dailyGlobal is one merged calendar day. Pointers keep "no source covered
// this day" apart from a reported zero; weekly resampling sums the known
// values only.
type dailyGlobal struct {
	date              time.Time
	infection         *int64
	death             *int64
	recovery          *int64
	vaccinations      *int64
	peopleVaccinated  *int64
}

func (t *LegacyGlobalTransformer) Run(ctx context.Context) ([]*domain.GlobalStat, error) {
	external, err := t.external.ExternalDailyStats(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("external.ExternalDailyStats: %w", err)
	}

	vaccinations, err := t.external.ExternalVaccinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("external.ExternalVaccinations: %w", err)
	}

	csvRows, err := t.csv.CsvArchive(ctx)
	if err != nil {
		return nil, fmt.Errorf("csv.CsvArchive: %w", err)
	}

	days := t.mergeSources(summarizeByDate(external), vaccinations, csvRows)
	weekly := t.resampleWeekly(days)

	t.calc.ApplyAllTransforms(weekly)

	return weekly, nil
}

// summarizeByDate collapses the per-region mirror rows into national daily
// totals.
func summarizeByDate(rows []*domain.ExternalDailyStat) []*dailyGlobal {
	byDate := make(map[time.Time]*dailyGlobal, len(rows))
	for _, r := range rows {
		date := Midnight(r.Date)
		day, ok := byDate[date]
		if !ok {
			day = &dailyGlobal{
				date:      date,
				infection: utils.Ptr(int64(0)),
				death:     utils.Ptr(int64(0)),
				recovery:  utils.Ptr(int64(0)),
			}
			byDate[date] = day
		}
		*day.infection += r.InfectionPerDay
		*day.death += r.DeathPerDay
		*day.recovery += r.RecoveryPerDay
	}

	return sortDays(byDate)
}

// mergeSources concatenates the CSV archive with the strictly newer mirror
// days and left-joins the vaccination feed by date. Mirror days at or before
// the archive's last date are dropped so the two ranges never overlap.
func (t *LegacyGlobalTransformer) mergeSources(
	external []*dailyGlobal,
	vaccinations []*domain.ExternalVaccination,
	csvRows []*domain.CsvRecord,
) []*dailyGlobal {
	var csvMax time.Time
	for _, r := range csvRows {
		if d := Midnight(r.Date); d.After(csvMax) {
			csvMax = d
		}
	}

	byDate := make(map[time.Time]*dailyGlobal, len(external)+len(csvRows))
	for _, r := range csvRows {
		byDate[Midnight(r.Date)] = &dailyGlobal{
			date:      Midnight(r.Date),
			infection: r.Cases,
			death:     r.Deaths,
		}
	}
	for _, day := range external {
		if !day.date.After(csvMax) {
			continue
		}
		byDate[day.date] = day
	}

	for _, v := range vaccinations {
		if day, ok := byDate[Midnight(v.Date)]; ok {
			day.vaccinations = utils.Ptr(v.DailyVaccinations)
			day.peopleVaccinated = utils.Ptr(v.DailyPeopleVaccinated)
		}
	}

	return sortDays(byDate)
}

// resampleWeekly buckets the merged days into Tuesday-Monday weeks, summing
// the known daily values. A bucket with no vaccination rows sums to zero: the
// merged history starts long before vaccination did, so absence there is a
// genuine zero rather than a reporting gap.
func (t *LegacyGlobalTransformer) resampleWeekly(days []*dailyGlobal) []*domain.GlobalStat {
	byWeek := make(map[time.Time]*domain.GlobalStat)
	for _, day := range days {
		end := WeekEnd(day.date)
		week, ok := byWeek[end]
		if !ok {
			week = &domain.GlobalStat{
				StartDate:             WeekStart(end),
				EndDate:               end,
				WeeklyInfected:        utils.Ptr(int64(0)),
				WeeklyDeaths:          utils.Ptr(int64(0)),
				WeeklyRecovered:       utils.Ptr(int64(0)),
				WeeklyFirstComponent:  utils.Ptr(int64(0)),
				WeeklyVaccinations:    utils.Ptr(int64(0)),
				WeeklySecondComponent: utils.Ptr(int64(0)),
			}
			byWeek[end] = week
		}

		addTo(week.WeeklyInfected, day.infection)
		addTo(week.WeeklyDeaths, day.death)
		addTo(week.WeeklyRecovered, day.recovery)
		addTo(week.WeeklyVaccinations, day.vaccinations)
		addTo(week.WeeklyFirstComponent, day.peopleVaccinated)
	}

	weeks := make([]*domain.GlobalStat, 0, len(byWeek))
	for _, w := range byWeek {
		*w.WeeklySecondComponent = *w.WeeklyVaccinations - *w.WeeklyFirstComponent
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].StartDate.Before(weeks[j].StartDate) })

	return weeks
}

func addTo(total *int64, v *int64) {
	if v != nil {
		*total += *v
	}
}

func sortDays(byDate map[time.Time]*dailyGlobal) []*dailyGlobal {
	days := make([]*dailyGlobal, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date.Before(days[j].date) })
	return days
}

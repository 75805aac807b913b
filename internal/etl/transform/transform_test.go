package transform

import (
	"context"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/etl/population"
	"github.com/ougirez/covidstats/internal/pkg/utils"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCalculator() *Calculator {
	return NewCalculator(population.NewProvider(nil))
}

// fakeSource serves fixture slices through every source interface the
// transformers consume.
type fakeSource struct {
	daily           []*domain.ExternalDailyStat
	vaccinations    []*domain.ExternalVaccination
	csv             []*domain.CsvRecord
	globalBulletin  []*domain.BulletinRecord
	regionBulletin  []*domain.BulletinRecord
	feed            []*domain.ComponentRecord
	baseline        domain.Baseline
	regionBaselines domain.RegionBaselines
}

func (f *fakeSource) ExternalDailyStats(context.Context, bool) ([]*domain.ExternalDailyStat, error) {
	return f.daily, nil
}

func (f *fakeSource) ExternalVaccinations(context.Context) ([]*domain.ExternalVaccination, error) {
	return f.vaccinations, nil
}

func (f *fakeSource) CsvArchive(context.Context) ([]*domain.CsvRecord, error) {
	return f.csv, nil
}

func (f *fakeSource) GlobalBulletin(context.Context, bool) ([]*domain.BulletinRecord, error) {
	return f.globalBulletin, nil
}

func (f *fakeSource) RegionBulletin(context.Context, bool) ([]*domain.BulletinRecord, error) {
	return f.regionBulletin, nil
}

func (f *fakeSource) ComponentFeed(ctx context.Context, from, to *time.Time) ([]*domain.ComponentRecord, error) {
	var out []*domain.ComponentRecord
	for _, r := range f.feed {
		if from != nil && r.Date.Before(*from) {
			continue
		}
		if to != nil && r.Date.After(*to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSource) GlobalBaseline(context.Context, *time.Time) (*domain.Baseline, error) {
	b := f.baseline
	return &b, nil
}

func (f *fakeSource) RegionBaselines(context.Context, *time.Time) (domain.RegionBaselines, error) {
	return f.regionBaselines, nil
}

// mirrorDailyStats is one week of the external mirror, three regions over
// 2020-12-13..2020-12-19.
func mirrorDailyStats() []*domain.ExternalDailyStat {
	type row struct {
		d                 int
		region            string
		death, inf, recov int64
	}
	rows := []row{
		{13, "Карелия", 3, 417, 302},
		{13, "Москва", 72, 6425, 4841},
		{13, "Томская обл.", 0, 189, 205},
		{14, "Томская обл.", 4, 187, 188},
		{14, "Москва", 75, 5874, 4932},
		{14, "Карелия", 0, 369, 170},
		{15, "Москва", 77, 5418, 5307},
		{15, "Томская обл.", 0, 195, 194},
		{15, "Карелия", 2, 324, 453},
		{16, "Москва", 73, 5028, 5571},
		{16, "Томская обл.", 4, 190, 215},
		{16, "Карелия", 3, 340, 418},
		{17, "Карелия", 1, 341, 407},
		{17, "Москва", 76, 6711, 5777},
		{17, "Томская обл.", 0, 185, 224},
		{18, "Москва", 72, 6937, 5821},
		{18, "Томская обл.", 3, 187, 218},
		{18, "Карелия", 3, 351, 416},
		{19, "Москва", 74, 6459, 5925},
		{19, "Томская обл.", 0, 193, 188},
		{19, "Карелия", 2, 394, 420},
	}

	out := make([]*domain.ExternalDailyStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.ExternalDailyStat{
			Date:            day(2020, time.December, r.d),
			Region:          r.region,
			DeathPerDay:     r.death,
			InfectionPerDay: r.inf,
			RecoveryPerDay:  r.recov,
		})
	}
	return out
}

func mirrorVaccinations() []*domain.ExternalVaccination {
	type row struct {
		d            int
		vacc, people int64
	}
	rows := []row{
		{17, 243233, 109873},
		{18, 223501, 111925},
		{19, 246755, 128885},
		{20, 223730, 110612},
		{21, 206825, 97514},
		{22, 214324, 100392},
		{23, 234088, 124994},
	}

	out := make([]*domain.ExternalVaccination, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.ExternalVaccination{
			Date:                  day(2020, time.December, r.d),
			DailyVaccinations:     r.vacc,
			DailyPeopleVaccinated: r.people,
		})
	}
	return out
}

func archiveCsv() []*domain.CsvRecord {
	type row struct {
		d             int
		cases, deaths int64
	}
	rows := []row{
		{14, 28080, 488},
		{13, 28137, 560},
		{12, 28585, 613},
		{11, 27927, 562},
		{10, 26190, 559},
	}

	out := make([]*domain.CsvRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.CsvRecord{
			Date:   day(2020, time.December, r.d),
			Cases:  utils.Ptr(r.cases),
			Deaths: utils.Ptr(r.deaths),
		})
	}
	return out
}

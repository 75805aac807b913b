package transform

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/utils"
)

// GlobalTransformer is the live nation-wide pipeline: it joins the weekly
// bulletin with the daily component feed and extends the stored cumulative
// history instead of recomputing it. In latest mode only the most recent
// bulletin week is processed.
type GlobalTransformer struct {
	bulletin  BulletinSource
	feed      ComponentSource
	baselines BaselineSource
	calc      *Calculator
	latest    bool
}

func NewGlobalTransformer(
	bulletin BulletinSource,
	feed ComponentSource,
	baselines BaselineSource,
	calc *Calculator,
	latest bool,
) *GlobalTransformer {
	return &GlobalTransformer{bulletin: bulletin, feed: feed, baselines: baselines, calc: calc, latest: latest}
}

// componentDelta is the day-over-day change between two consecutive feed
// readings. Nil means the change is unknowable (the first reading of a
// backfill has no predecessor).
type componentDelta struct {
	first  *int64
	second *int64
}

func (t *GlobalTransformer) Run(ctx context.Context) ([]*domain.GlobalStat, error) {
	weeks, err := t.bulletin.GlobalBulletin(ctx, t.latest)
	if err != nil {
		return nil, fmt.Errorf("bulletin.GlobalBulletin: %w", err)
	}
	if len(weeks) == 0 {
		return nil, nil
	}

	var from, to *time.Time
	if t.latest {
		from, to = &weeks[0].StartDate, &weeks[0].EndDate
	}

	feed, err := t.feed.ComponentFeed(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("feed.ComponentFeed: %w", err)
	}
	if len(feed) == 0 {
		return nil, nil
	}

	baseline, err := t.baselines.GlobalBaseline(ctx, &weeks[0].StartDate)
	if err != nil {
		return nil, fmt.Errorf("baselines.GlobalBaseline: %w", err)
	}

	rows := t.joinWeeks(weeks, feed, t.componentDeltas(feed, baseline))

	t.calc.ExtendCumulativeStats(rows, *baseline)
	t.calc.AddPer100000Stats(rows)
	t.calc.AddRatioStats(rows)
	for _, r := range rows {
		sanitizeGlobal(r)
	}

	return rows, nil
}

// componentDeltas differentiates the cumulative counter readings. In latest
// mode the first reading is diffed against the stored baseline, there is no
// prior row to diff against; in backfill mode the first delta is unknown.
func (t *GlobalTransformer) componentDeltas(feed []*domain.ComponentRecord, baseline *domain.Baseline) []componentDelta {
	deltas := make([]componentDelta, len(feed))
	if t.latest {
		deltas[0] = componentDelta{
			first:  utils.Ptr(feed[0].FirstComponent - baseline.FirstComponent),
			second: utils.Ptr(feed[0].SecondComponent - baseline.SecondComponent),
		}
	}

	for i := 1; i < len(feed); i++ {
		deltas[i] = componentDelta{
			first:  utils.Ptr(feed[i].FirstComponent - feed[i-1].FirstComponent),
			second: utils.Ptr(feed[i].SecondComponent - feed[i-1].SecondComponent),
		}
	}

	return deltas
}

// joinWeeks left-joins the bulletin weeks with the feed: daily deltas inside
// [start_date, end_date] sum into the week's vaccination deltas, and the last
// reading of the week supplies the running component totals. A week with no
// feed rows keeps nil vaccination fields: the counters were not reported yet,
// which is not the same as a reported zero.
func (t *GlobalTransformer) joinWeeks(
	weeks []*domain.BulletinRecord,
	feed []*domain.ComponentRecord,
	deltas []componentDelta,
) []*domain.GlobalStat {
	rows := make([]*domain.GlobalStat, 0, len(weeks))
	for _, w := range weeks {
		row := &domain.GlobalStat{
			StartDate:       w.StartDate,
			EndDate:         w.EndDate,
			WeeklyInfected:  utils.Ptr(w.Infected),
			WeeklyRecovered: utils.Ptr(w.Recovered),
			WeeklyDeaths:    utils.Ptr(w.Deaths),
		}

		var (
			first, second int64
			last          *domain.ComponentRecord
		)
		for i, f := range feed {
			if f.Date.Before(w.StartDate) || f.Date.After(w.EndDate) {
				continue
			}
			last = f
			if deltas[i].first != nil {
				first += *deltas[i].first
			}
			if deltas[i].second != nil {
				second += *deltas[i].second
			}
		}

		if last != nil {
			row.WeeklyFirstComponent = utils.Ptr(first)
			row.WeeklySecondComponent = utils.Ptr(second)
			row.WeeklyVaccinations = utils.Ptr(first + second)
			row.FirstComponent = utils.Ptr(last.FirstComponent)
			row.SecondComponent = utils.Ptr(last.SecondComponent)
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].StartDate.Before(rows[j].StartDate) })

	return rows
}

package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
)

var componentColumns = []string{"date", "first_component", "second_component"}

// UpsertComponentRecord stores one day of the gogov counter page. The page
// shows running totals, so a re-scrape of the same day overwrites.
func (s *store) UpsertComponentRecord(ctx context.Context, record *domain.ComponentRecord) error {
	query := builder().Insert(tableComponentFeed).
		Columns(componentColumns...).
		Values(record.Date, record.FirstComponent, record.SecondComponent).
		Suffix(`
on conflict (date)
do update
set
	first_component = excluded.first_component,
	second_component = excluded.second_component`)

	if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

// ComponentFeed returns the stored counter rows ordered by date, limited to
// [from, to] when the bounds are set.
func (s *store) ComponentFeed(ctx context.Context, from, to *time.Time) ([]*domain.ComponentRecord, error) {
	query := builder().Select(componentColumns...).
		From(tableComponentFeed).
		OrderBy("date")

	if from != nil {
		query = query.Where(sq.GtOrEq{"date": *from})
	}
	if to != nil {
		query = query.Where(sq.LtOrEq{"date": *to})
	}

	selected, err := xpgx.Selectx[domain.ComponentRecord](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

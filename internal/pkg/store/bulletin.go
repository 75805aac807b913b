package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
)

var bulletinColumns = []string{"start_date", "end_date", "region", "hospitalized", "infected", "recovered", "deaths"}

// InsertBulletinRecords writes parsed bulletin rows, leaving already stored
// (start_date, end_date, region) keys untouched.
func (s *store) InsertBulletinRecords(ctx context.Context, records []*domain.BulletinRecord) (int, error) {
	inserted := 0
	for _, part := range chunk(records, batchSize) {
		query := builder().Insert(tableBulletin).Columns(bulletinColumns...)
		for _, r := range part {
			query = query.Values(r.StartDate, r.EndDate, r.Region, r.Hospitalized, r.Infected, r.Recovered, r.Deaths)
		}
		query = query.Suffix(`on conflict (start_date, end_date, region) do nothing`)

		tag, err := xpgx.Execx(ctx, s.pool, query)
		if err != nil {
			return inserted, wrapErr(err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// GlobalBulletin returns the nation-wide bulletin rows ordered by start_date,
// or only the most recent week when latest is set.
func (s *store) GlobalBulletin(ctx context.Context, latest bool) ([]*domain.BulletinRecord, error) {
	return s.bulletin(ctx, latest, sq.Eq{"region": domain.RussianFederation})
}

// RegionBulletin returns the per-region bulletin rows ordered by start_date.
func (s *store) RegionBulletin(ctx context.Context, latest bool) ([]*domain.BulletinRecord, error) {
	return s.bulletin(ctx, latest, sq.NotEq{"region": domain.RussianFederation})
}

func (s *store) bulletin(ctx context.Context, latest bool, pred any) ([]*domain.BulletinRecord, error) {
	query := builder().Select(bulletinColumns...).
		From(tableBulletin).
		Where(pred).
		OrderBy("start_date, region")

	if latest {
		query = query.Where(fmt.Sprintf("end_date = (select max(end_date) from %s)", tableBulletin))
	}

	selected, err := xpgx.Selectx[domain.BulletinRecord](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

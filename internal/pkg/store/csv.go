package store

import (
	"context"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
)

var csvColumns = []string{"date", "cases", "deaths"}

func (s *store) InsertCsvRecords(ctx context.Context, records []*domain.CsvRecord) (int, error) {
	inserted := 0
	for _, part := range chunk(records, batchSize) {
		query := builder().Insert(tableCsvData).Columns(csvColumns...)
		for _, r := range part {
			query = query.Values(r.Date, r.Cases, r.Deaths)
		}
		query = query.Suffix(`on conflict (date) do nothing`)

		tag, err := xpgx.Execx(ctx, s.pool, query)
		if err != nil {
			return inserted, wrapErr(err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func (s *store) CsvArchive(ctx context.Context) ([]*domain.CsvRecord, error) {
	query := builder().Select(csvColumns...).
		From(tableCsvData).
		OrderBy("date")

	selected, err := xpgx.Selectx[domain.CsvRecord](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

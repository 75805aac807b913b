package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/covidstats/internal/pkg/constants"
)

const (
	tableBulletin        = "stopcorona_data"
	tableComponentFeed   = "gogov_data"
	tableCsvData         = "csv_data"
	tablePopulation      = "population"
	tableGlobalStats     = "global_transformed_data"
	tableRegionStats     = "region_transformed_data"
	tableExternalStats   = "external_statistic"
	tableExternalVaccine = "external_vaccination"
)

const batchSize = 500

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func chunk[T any](items []T, size int) [][]T {
	var chunks [][]T
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[:size])
	}
	return append(chunks, items)
}

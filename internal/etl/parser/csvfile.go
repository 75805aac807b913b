package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/logger"
)

const csvDateFormat = "02/01/2006"

// ParseCsvArchive reads the historical daily archive. Header columns used:
// dateRep, cases, deaths. A row with an unreadable date is skipped and
// counted, empty cases/deaths become nulls.
func ParseCsvArchive(ctx context.Context, path string) ([]*domain.CsvRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"dateRep", "cases", "deaths"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("column %q missing", required)
		}
	}

	var records []*domain.CsvRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		date, err := time.Parse(csvDateFormat, row[cols["dateRep"]])
		if err != nil {
			logger.Warnf(ctx, "skipping csv row with bad date %q: %s", row[cols["dateRep"]], err.Error())
			skipped++
			continue
		}

		records = append(records, &domain.CsvRecord{
			Date:   date,
			Cases:  optionalCount(row, cols["cases"]),
			Deaths: optionalCount(row, cols["deaths"]),
		})
	}

	logger.Infof(ctx, "parsed csv archive: %d rows, %d skipped", len(records), skipped)

	return records, nil
}

func optionalCount(row []string, i int) *int64 {
	if i >= len(row) || row[i] == "" {
		return nil
	}
	v, err := strconv.ParseInt(row[i], 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/etl/regions"
	"github.com/ougirez/covidstats/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

// federal districts aggregate their regions, keeping them would double-count
var rosstatExcludedRegions = map[string]struct{}{
	"Центральный федеральный округ":      {},
	"Южный федеральный округ":            {},
	"Уральский федеральный округ":        {},
	"Сибирский федеральный округ":        {},
	"Северо-Кавказский федеральный округ": {},
	"Северо-Западный федеральный округ":  {},
	"Приволжский федеральный округ":      {},
	"Дальневосточный федеральный округ":  {},
}

// RosstatParser reads the census export: a semicolon-separated file with
// region;year;population rows, population in thousands with a decimal comma.
type RosstatParser struct {
	normalizer *regions.Normalizer
}

func NewRosstatParser(normalizer *regions.Normalizer) *RosstatParser {
	return &RosstatParser{normalizer: normalizer}
}

var populationThousands = decimal.NewFromInt(1000)

func (p *RosstatParser) ParseFile(ctx context.Context, path string) ([]*domain.PopulationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = 3

	var records []*domain.PopulationRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader.Read: %w", err)
		}

		region, ok := p.canonicalRegion(row[0])
		if !ok {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("year, region-%s: %w", row[0], err)
		}

		population, err := parsePopulation(row[2])
		if err != nil {
			return nil, fmt.Errorf("population, region-%s: %w", row[0], err)
		}

		records = append(records, &domain.PopulationRecord{
			Year:       year,
			Region:     region,
			Population: population,
		})
		logger.Infof(ctx, "parsed population: region=%q year=%d population=%d", region, year, population)
	}

	return records, nil
}

// canonicalRegion maps an export row name onto the bulletin naming. The
// national total row keeps an empty region, the federal district aggregates
// are dropped.
func (p *RosstatParser) canonicalRegion(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	// the export misspells the national row with a latin "р"
	name = strings.ReplaceAll(name, "Российская Федеpация", domain.RussianFederation)
	if name == domain.RussianFederation {
		return "", true
	}
	if _, excluded := rosstatExcludedRegions[name]; excluded {
		return "", false
	}

	name = strings.TrimPrefix(name, "г.")
	name = strings.TrimPrefix(name, "г. ")
	return p.normalizer.Normalize(name), true
}

// parsePopulation converts a thousands figure like "146 447,424" into a
// person count.
func parsePopulation(raw string) (int64, error) {
	cleaned := strings.NewReplacer(" ", "", " ", "").Replace(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	thousands, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("decimal.NewFromString: %w", err)
	}

	return thousands.Mul(populationThousands).Round(0).IntPart(), nil
}

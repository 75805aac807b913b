// Package stats wires the parsers, the transform pipelines and the mappers
// into the operations the CLI and the API expose.
package stats

import (
	"context"
	"fmt"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/etl/mapper"
	"github.com/ougirez/covidstats/internal/etl/parser"
	"github.com/ougirez/covidstats/internal/etl/population"
	"github.com/ougirez/covidstats/internal/etl/regions"
	"github.com/ougirez/covidstats/internal/etl/transform"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/ougirez/covidstats/internal/pkg/logger"
	"github.com/ougirez/covidstats/internal/pkg/store"
)

type Service struct {
	store      store.Store
	stopcorona *parser.StopCoronaParser
	gogov      *parser.GogovParser
	rosstat    *parser.RosstatParser
	normalizer *regions.Normalizer
}

func NewService(
	s store.Store,
	stopcorona *parser.StopCoronaParser,
	gogov *parser.GogovParser,
) *Service {
	normalizer := regions.NewNormalizer(regions.DefaultRules())
	return &Service{
		store:      s,
		stopcorona: stopcorona,
		gogov:      gogov,
		rosstat:    parser.NewRosstatParser(normalizer),
		normalizer: normalizer,
	}
}

// ImportStopCorona scrapes the weekly bulletins and stores their rows.
// Already-stored weeks are left untouched.
func (s *Service) ImportStopCorona(ctx context.Context, latest bool) error {
	var (
		records []*domain.BulletinRecord
		err     error
	)
	if latest {
		records, err = s.stopcorona.ParseLatest(ctx)
	} else {
		records, err = s.stopcorona.ParseAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("stopcorona parse: %w", err)
	}

	inserted, err := s.store.InsertBulletinRecords(ctx, records)
	if err != nil {
		return fmt.Errorf("store.InsertBulletinRecords: %w", err)
	}
	logger.Infof(ctx, "stopcorona import: %d parsed, %d inserted", len(records), inserted)

	return nil
}

// ImportGogov reads the vaccination counter page and upserts its single
// cumulative record by date.
func (s *Service) ImportGogov(ctx context.Context) error {
	record, err := s.gogov.Parse(ctx)
	if err != nil {
		return fmt.Errorf("gogov.Parse: %w", err)
	}

	if err := s.store.UpsertComponentRecord(ctx, record); err != nil {
		return fmt.Errorf("store.UpsertComponentRecord: %w", err)
	}
	logger.Infof(ctx, "gogov import: counter as of %s, first=%d second=%d",
		record.Date.Format("2006-01-02"), record.FirstComponent, record.SecondComponent)

	return nil
}

// ImportCsv loads the historical daily archive from a local file.
func (s *Service) ImportCsv(ctx context.Context, path string) error {
	records, err := parser.ParseCsvArchive(ctx, path)
	if err != nil {
		return fmt.Errorf("parser.ParseCsvArchive: %w", err)
	}

	inserted, err := s.store.InsertCsvRecords(ctx, records)
	if err != nil {
		return fmt.Errorf("store.InsertCsvRecords: %w", err)
	}
	logger.Infof(ctx, "csv import: %d parsed, %d inserted", len(records), inserted)

	return nil
}

// ImportPopulation loads the census export from a local file.
func (s *Service) ImportPopulation(ctx context.Context, path string) error {
	records, err := s.rosstat.ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("rosstat.ParseFile: %w", err)
	}

	if err := s.store.UpsertPopulation(ctx, records); err != nil {
		return fmt.Errorf("store.UpsertPopulation: %w", err)
	}
	logger.Infof(ctx, "population import: %d rows upserted", len(records))

	return nil
}

// TransformLegacyGlobal rebuilds the nation-wide weekly history from the
// archive sources. With debug set the result is logged but not written.
func (s *Service) TransformLegacyGlobal(ctx context.Context, debug bool) error {
	calc, err := s.calculator(ctx)
	if err != nil {
		return err
	}

	rows, err := transform.NewLegacyGlobalTransformer(s.store, s.store, calc).Run(ctx)
	if err != nil {
		return fmt.Errorf("legacy global transform: %w", err)
	}

	return s.mapGlobal(ctx, rows, debug)
}

// TransformLegacyRegions rebuilds the per-region weekly history from the
// external mirror.
func (s *Service) TransformLegacyRegions(ctx context.Context, debug bool) error {
	calc, err := s.calculator(ctx)
	if err != nil {
		return err
	}

	rows, err := transform.NewLegacyRegionTransformer(s.store, s.normalizer, calc).Run(ctx)
	if err != nil {
		return fmt.Errorf("legacy region transform: %w", err)
	}

	return s.mapRegion(ctx, rows, debug)
}

// TransformGlobal extends the nation-wide history from the live bulletin and
// the component feed. With latest set only the newest week is recomputed.
func (s *Service) TransformGlobal(ctx context.Context, latest, debug bool) error {
	calc, err := s.calculator(ctx)
	if err != nil {
		return err
	}

	rows, err := transform.NewGlobalTransformer(s.store, s.store, s.store, calc, latest).Run(ctx)
	if err != nil {
		return fmt.Errorf("global transform: %w", err)
	}
	if len(rows) == 0 {
		return constants.ErrEmptyBulletin
	}

	return s.mapGlobal(ctx, rows, debug)
}

// TransformRegions extends the per-region history from the live bulletin.
func (s *Service) TransformRegions(ctx context.Context, latest, debug bool) error {
	calc, err := s.calculator(ctx)
	if err != nil {
		return err
	}

	rows, err := transform.NewRegionTransformer(s.store, s.store, s.normalizer, calc, latest).Run(ctx)
	if err != nil {
		return fmt.Errorf("region transform: %w", err)
	}
	if len(rows) == 0 {
		return constants.ErrEmptyBulletin
	}

	return s.mapRegion(ctx, rows, debug)
}

func (s *Service) calculator(ctx context.Context) (*transform.Calculator, error) {
	table, err := s.store.PopulationTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.PopulationTable: %w", err)
	}
	return transform.NewCalculator(population.NewProvider(table)), nil
}

func (s *Service) mapGlobal(ctx context.Context, rows []*domain.GlobalStat, debug bool) error {
	if debug {
		logger.Infof(ctx, "debug run, %d global rows computed, nothing written", len(rows))
		return nil
	}

	m, err := mapper.NewGlobalStatMapper(ctx, s.store)
	if err != nil {
		return fmt.Errorf("mapper.NewGlobalStatMapper: %w", err)
	}
	if err := m.Map(ctx, rows); err != nil {
		return fmt.Errorf("mapper.Map: %w", err)
	}

	return nil
}

func (s *Service) mapRegion(ctx context.Context, rows []*domain.RegionStat, debug bool) error {
	if debug {
		logger.Infof(ctx, "debug run, %d region rows computed, nothing written", len(rows))
		return nil
	}

	m, err := mapper.NewRegionStatMapper(ctx, s.store)
	if err != nil {
		return fmt.Errorf("mapper.NewRegionStatMapper: %w", err)
	}
	if err := m.Map(ctx, rows); err != nil {
		return fmt.Errorf("mapper.Map: %w", err)
	}

	return nil
}

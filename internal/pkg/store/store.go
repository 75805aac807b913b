package store

import (
	"context"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// Store is everything the ETL pipelines and the API need from Postgres.
// The external mirror lives in a separate, read-only database and is reached
// through its own pool.
type Store interface {
	// raw bulletin rows (stopcorona)
	InsertBulletinRecords(ctx context.Context, records []*domain.BulletinRecord) (inserted int, err error)
	GlobalBulletin(ctx context.Context, latest bool) ([]*domain.BulletinRecord, error)
	RegionBulletin(ctx context.Context, latest bool) ([]*domain.BulletinRecord, error)

	// raw component feed rows (gogov)
	UpsertComponentRecord(ctx context.Context, record *domain.ComponentRecord) error
	ComponentFeed(ctx context.Context, from, to *time.Time) ([]*domain.ComponentRecord, error)

	// csv archive
	InsertCsvRecords(ctx context.Context, records []*domain.CsvRecord) (inserted int, err error)
	CsvArchive(ctx context.Context) ([]*domain.CsvRecord, error)

	// population reference
	UpsertPopulation(ctx context.Context, records []*domain.PopulationRecord) error
	PopulationTable(ctx context.Context) ([]*domain.PopulationRecord, error)

	// external read-only mirror
	ExternalDailyStats(ctx context.Context, withRegion bool) ([]*domain.ExternalDailyStat, error)
	ExternalVaccinations(ctx context.Context) ([]*domain.ExternalVaccination, error)

	// transformed collections
	ListGlobalStats(ctx context.Context) ([]*domain.GlobalStat, error)
	InsertGlobalStats(ctx context.Context, records []*domain.GlobalStat) error
	UpdateGlobalStats(ctx context.Context, records []*domain.GlobalStat) error
	ListRegionStats(ctx context.Context) ([]*domain.RegionStat, error)
	InsertRegionStats(ctx context.Context, records []*domain.RegionStat) error
	UpdateRegionStats(ctx context.Context, records []*domain.RegionStat) error

	// cumulative baselines; rows starting at or after before are excluded
	// so a recomputed week never feeds its own baseline
	GlobalBaseline(ctx context.Context, before *time.Time) (*domain.Baseline, error)
	RegionBaselines(ctx context.Context, before *time.Time) (domain.RegionBaselines, error)

	// API reads
	GlobalStatsRange(ctx context.Context, from, to *time.Time) ([]*domain.GlobalStat, error)
	RegionStatsRange(ctx context.Context, region *string, from, to *time.Time) ([]*domain.RegionStat, error)
	ListRegions(ctx context.Context) ([]string, error)
}

type store struct {
	pool     Pool
	external Pool
}

func NewStore(pool, external Pool) Store {
	return &store{pool: pool, external: external}
}

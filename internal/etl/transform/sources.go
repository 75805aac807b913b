package transform

import (
	"context"
	"time"

	"github.com/ougirez/covidstats/internal/domain"
)

// Source interfaces are narrow views of the store, so the transformers can
// be fed fixtures in tests. store.Store satisfies all of them.

type ExternalSource interface {
	ExternalDailyStats(ctx context.Context, withRegion bool) ([]*domain.ExternalDailyStat, error)
	ExternalVaccinations(ctx context.Context) ([]*domain.ExternalVaccination, error)
}

type CsvSource interface {
	CsvArchive(ctx context.Context) ([]*domain.CsvRecord, error)
}

type BulletinSource interface {
	GlobalBulletin(ctx context.Context, latest bool) ([]*domain.BulletinRecord, error)
	RegionBulletin(ctx context.Context, latest bool) ([]*domain.BulletinRecord, error)
}

type ComponentSource interface {
	ComponentFeed(ctx context.Context, from, to *time.Time) ([]*domain.ComponentRecord, error)
}

type BaselineSource interface {
	GlobalBaseline(ctx context.Context, before *time.Time) (*domain.Baseline, error)
	RegionBaselines(ctx context.Context, before *time.Time) (domain.RegionBaselines, error)
}

// Package population provides the denominators for per-100000 rates and
// vaccination coverage ratios.
package population

import "github.com/ougirez/covidstats/internal/domain"

// RussiaTotal is the national reference figure used when no imported table
// covers the requested year.
const RussiaTotal int64 = 146447424

// Provider resolves a population figure for a year and region. An empty
// region means the national total. Lookups never fail: the provider falls
// back to the national figure, which is nonzero by construction.
type Provider interface {
	Population(year int, region string) int64
}

type tableKey struct {
	year   int
	region string
}

// TableProvider serves figures from an imported population table with a
// fixed national fallback.
type TableProvider struct {
	table    map[tableKey]int64
	fallback int64
}

func NewProvider(records []*domain.PopulationRecord) *TableProvider {
	table := make(map[tableKey]int64, len(records))
	for _, r := range records {
		table[tableKey{year: r.Year, region: r.Region}] = r.Population
	}

	return &TableProvider{table: table, fallback: RussiaTotal}
}

func (p *TableProvider) Population(year int, region string) int64 {
	if v, ok := p.table[tableKey{year: year, region: region}]; ok {
		return v
	}
	if v, ok := p.table[tableKey{year: year}]; ok {
		return v
	}
	return p.fallback
}

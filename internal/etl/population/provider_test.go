package population

import (
	"testing"

	"github.com/ougirez/covidstats/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestPopulationLookupOrder(t *testing.T) {
	p := NewProvider([]*domain.PopulationRecord{
		{Year: 2021, Region: "", Population: 146000000},
		{Year: 2021, Region: "Москва", Population: 12600000},
	})

	// exact (year, region) match
	require.Equal(t, int64(12600000), p.Population(2021, "Москва"))
	// unknown region falls back to the year's national total
	require.Equal(t, int64(146000000), p.Population(2021, "Карелия"))
	require.Equal(t, int64(146000000), p.Population(2021, ""))
	// unknown year falls back to the fixed national figure
	require.Equal(t, RussiaTotal, p.Population(2019, "Москва"))
}

func TestPopulationEmptyTable(t *testing.T) {
	p := NewProvider(nil)
	require.Equal(t, RussiaTotal, p.Population(2020, ""))
}

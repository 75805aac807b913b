package parser

import (
	"context"
	"testing"

	"github.com/ougirez/covidstats/internal/etl/regions"
	"github.com/stretchr/testify/require"
)

func TestRosstatParseFile(t *testing.T) {
	path := writeTempFile(t, "population.csv", `Российская Федеpация;2021;146447,424
Центральный федеральный округ;2021;39250,0
г. Москва;2021;12655,050
Республика Карелия;2021;609,071
Томская область;2021;1070,339
`)

	parser := NewRosstatParser(regions.NewNormalizer(regions.DefaultRules()))
	records, err := parser.ParseFile(context.Background(), path)
	require.NoError(t, err)

	// the federal district aggregate is dropped
	require.Len(t, records, 4)

	// the national total keeps an empty region despite the latin "р" typo
	require.Equal(t, "", records[0].Region)
	require.Equal(t, 2021, records[0].Year)
	require.Equal(t, int64(146447424), records[0].Population)

	require.Equal(t, "Москва", records[1].Region)
	require.Equal(t, int64(12655050), records[1].Population)

	require.Equal(t, "Карелия", records[2].Region)
	require.Equal(t, int64(609071), records[2].Population)

	require.Equal(t, "Томская обл.", records[3].Region)
	require.Equal(t, int64(1070339), records[3].Population)
}

func TestParsePopulation(t *testing.T) {
	v, err := parsePopulation("146 447,424")
	require.NoError(t, err)
	require.Equal(t, int64(146447424), v)

	v, err = parsePopulation("609,071")
	require.NoError(t, err)
	require.Equal(t, int64(609071), v)

	_, err = parsePopulation("не число")
	require.Error(t, err)
}

package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCsvArchive(t *testing.T) {
	path := writeTempFile(t, "archive.csv", `dateRep,day,month,year,cases,deaths
14/12/2020,14,12,2020,28080,488
13/12/2020,13,12,2020,28137,560
12/12/2020,12,12,2020,,613
bad-date,1,1,2020,10,10
`)

	records, err := ParseCsvArchive(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, date(2020, time.December, 14), records[0].Date)
	require.Equal(t, int64(28080), *records[0].Cases)
	require.Equal(t, int64(488), *records[0].Deaths)

	// empty cells stay unknown
	require.Nil(t, records[2].Cases)
	require.Equal(t, int64(613), *records[2].Deaths)
}

func TestParseCsvArchiveMissingColumn(t *testing.T) {
	path := writeTempFile(t, "archive.csv", "dateRep,cases\n14/12/2020,28080\n")

	_, err := ParseCsvArchive(context.Background(), path)
	require.Error(t, err)
}

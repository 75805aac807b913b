package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseWeekSpan(t *testing.T) {
	cases := []struct {
		header     string
		start, end time.Time
	}{
		{
			header: "По состоянию за 44 нед. 2023 г. (23.10 - 29.10.2023)",
			start:  date(2023, time.October, 23),
			end:    date(2023, time.October, 29),
		},
		{
			header: "По состоянию за 44 нед. 2023 г. (23.10.2023 - 29.10.2023)",
			start:  date(2023, time.October, 23),
			end:    date(2023, time.October, 29),
		},
		{
			header: "По состоянию за 44 нед. 2023 г. (23.10. - 29.10.2023)",
			start:  date(2023, time.October, 23),
			end:    date(2023, time.October, 29),
		},
		{
			// en dash
			header: "26.12.2022 – 01.01.2023",
			start:  date(2022, time.December, 26),
			end:    date(2023, time.January, 1),
		},
		{
			// the span wraps over New Year, the start year rolls back
			header: "за неделю (27.12 - 02.01.2023)",
			start:  date(2022, time.December, 27),
			end:    date(2023, time.January, 2),
		},
	}

	for _, c := range cases {
		start, end, err := ParseWeekSpan(c.header)
		require.NoError(t, err, "header: %q", c.header)
		require.Equal(t, c.start, start, "header: %q", c.header)
		require.Equal(t, c.end, end, "header: %q", c.header)
	}
}

func TestParseWeekSpanAmbiguous(t *testing.T) {
	for _, header := range []string{
		"По состоянию за 44 нед. 2023 г. (4423.11 - 29.10.2023)",
		"без дат вовсе",
		"два диапазона 23.10 - 29.10.2023 и 30.10 - 05.11.2023",
	} {
		_, _, err := ParseWeekSpan(header)
		require.ErrorIs(t, err, constants.ErrAmbiguousBulletinWeek, "header: %q", header)
	}
}

const articleHTML = `
<div class="article-detail__body">
    <h3>По состоянию за 44 нед. 2023 г. (23.10 - 29.10.2023)</h3>
    <table>
        <tbody>
            <tr>
                <td>Наименование субъекта</td>
                <td>Госпитализировано</td>
                <td>Выздоровело</td>
                <td>Заболело</td>
                <td>Умерло</td>
            </tr>
            <tr>
                <td>Российская Федерация</td>
                <td>8 963</td>
                <td>26 407</td>
                <td>17 626</td>
                <td>75</td>
            </tr>
            <tr>
                <td>Москва</td>
                <td>381</td>
                <td>2 845</td>
                <td>2 095</td>
                <td>3</td>
            </tr>
        </tbody>
    </table>
</div>`

func TestParseArticle(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articleHTML))
	require.NoError(t, err)

	records, err := (&StopCoronaParser{}).parseArticle(doc)
	require.NoError(t, err)
	require.Len(t, records, 2)

	rf := records[0]
	require.Equal(t, date(2023, time.October, 23), rf.StartDate)
	require.Equal(t, date(2023, time.October, 29), rf.EndDate)
	require.Equal(t, "Российская Федерация", rf.Region)
	require.Equal(t, int64(8963), rf.Hospitalized)
	require.Equal(t, int64(26407), rf.Recovered)
	require.Equal(t, int64(17626), rf.Infected)
	require.Equal(t, int64(75), rf.Deaths)

	moscow := records[1]
	require.Equal(t, "Москва", moscow.Region)
	require.Equal(t, int64(2095), moscow.Infected)
}

func TestParseArticleBadDatesSkips(t *testing.T) {
	html := strings.Replace(articleHTML, "(23.10 - 29.10.2023)", "(4423.10 - 29.10.2023)", 1)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	_, err = (&StopCoronaParser{}).parseArticle(doc)
	require.ErrorIs(t, err, constants.ErrAmbiguousBulletinWeek)
}

func TestParseCount(t *testing.T) {
	v, err := parseCount("8 963")
	require.NoError(t, err)
	require.Equal(t, int64(8963), v)

	v, err = parseCount("1 234 567")
	require.NoError(t, err)
	require.Equal(t, int64(1234567), v)

	_, err = parseCount("н/д")
	require.Error(t, err)
}

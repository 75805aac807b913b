package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const gogovHTML = `
<html><body>
<div id="data">
<p>
    Привито хотя бы одним компонентом на 21.12.20:
    <span>1 000</span>
    <span>350 683 чел.</span>
    <span>362 806 чел.</span>
    <span>12 345</span>
</p>
</div>
</body></html>`

func TestParseGogovPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(gogovHTML))
	require.NoError(t, err)

	record, err := parseGogovPage(doc)
	require.NoError(t, err)

	require.Equal(t, date(2020, time.December, 21), record.Date)
	require.Equal(t, int64(350683), record.FirstComponent)
	require.Equal(t, int64(362806), record.SecondComponent)
}

func TestParseGogovPageMissingDate(t *testing.T) {
	html := `<html><body><div id="data"><p>нет даты <span>1</span><span>2</span><span>3</span></p></div></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	_, err = parseGogovPage(doc)
	require.Error(t, err)
}

func TestParseGogovPageMissingSection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	_, err = parseGogovPage(doc)
	require.Error(t, err)
}

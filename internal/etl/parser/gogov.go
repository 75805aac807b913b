package parser

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ougirez/covidstats/internal/domain"
)

// GogovParser reads the vaccination counter page. The page shows cumulative
// totals as of a single date: span 1 carries the first-component count,
// span 2 the fully-vaccinated count.
type GogovParser struct {
	url string
}

func NewGogovParser(url string) *GogovParser {
	return &GogovParser{url: url}
}

var (
	gogovDatePattern = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{1,2}`)
	gogovSpanCleaner = strings.NewReplacer(" ", "", " ", "", "чел.", "")
)

const gogovDateFormat = "02.01.06"

// Parse fetches the counter page and returns its single cumulative record.
func (p *GogovParser) Parse(ctx context.Context) (*domain.ComponentRecord, error) {
	doc, err := fetchDocument(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("fetchDocument: %w", err)
	}

	return parseGogovPage(doc)
}

func parseGogovPage(doc *goquery.Document) (*domain.ComponentRecord, error) {
	section := doc.Find("#data p").First()
	if section.Length() == 0 {
		return nil, fmt.Errorf("counter section not found")
	}

	dateStr := gogovDatePattern.FindString(section.Text())
	if dateStr == "" {
		return nil, fmt.Errorf("counter date not found")
	}
	date, err := time.Parse(gogovDateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("time.Parse, date-%s: %w", dateStr, err)
	}

	spans := section.Find("span")
	first, err := gogovSpanValue(spans, 1)
	if err != nil {
		return nil, fmt.Errorf("first_component: %w", err)
	}
	second, err := gogovSpanValue(spans, 2)
	if err != nil {
		return nil, fmt.Errorf("second_component: %w", err)
	}

	return &domain.ComponentRecord{
		Date:            date,
		FirstComponent:  first,
		SecondComponent: second,
	}, nil
}

func gogovSpanValue(spans *goquery.Selection, i int) (int64, error) {
	if spans.Length() <= i {
		return 0, fmt.Errorf("span %d not found", i)
	}
	cleaned := gogovSpanCleaner.Replace(spans.Eq(i).Text())
	return strconv.ParseInt(cleaned, 10, 64)
}

package parser

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ougirez/covidstats/internal/domain"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/ougirez/covidstats/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// StopCoronaParser scrapes the weekly bulletin articles. Each article holds
// one reporting week: a header with the covered date span and a table with
// one row per region plus the national total.
type StopCoronaParser struct {
	urlBase      string
	articlesPage string
	maxPage      int
}

func NewStopCoronaParser(urlBase, articlesPage string, maxPage int) *StopCoronaParser {
	return &StopCoronaParser{urlBase: urlBase, articlesPage: articlesPage, maxPage: maxPage}
}

const bulletinHrefMarker = "v-rossii-za-nedelyu-vyzdorovelo-"

var weekSpanPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d{4})?\.?\s*[-–]\s*\d+\.\d+(?:\.\d{4})?`)

// ArticleURLs walks the article list pages, newest first, and collects the
// bulletin article links.
func (p *StopCoronaParser) ArticleURLs(ctx context.Context) ([]string, error) {
	var urls []string
	for page := 1; page <= p.maxPage; page++ {
		doc, err := fetchDocument(ctx, fmt.Sprintf(p.articlesPage, page))
		if err != nil {
			return nil, fmt.Errorf("fetchDocument, page-%d: %w", page, err)
		}

		doc.Find("a.u-material-card.u-material-cards__card").Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			if strings.Contains(href, bulletinHrefMarker) {
				urls = append(urls, href)
			}
		})
	}

	return urls, nil
}

// ParseAll fetches and parses every bulletin article concurrently. Articles
// whose week span cannot be read are dropped with a warning, the rest of the
// batch survives.
func (p *StopCoronaParser) ParseAll(ctx context.Context) ([]*domain.BulletinRecord, error) {
	urls, err := p.ArticleURLs(ctx)
	if err != nil {
		return nil, err
	}
	return p.parseURLs(ctx, urls)
}

// ParseLatest parses only the newest bulletin article.
func (p *StopCoronaParser) ParseLatest(ctx context.Context) ([]*domain.BulletinRecord, error) {
	urls, err := p.ArticleURLs(ctx)
	if err != nil {
		return nil, err
	}
	if len(urls) > 1 {
		urls = urls[:1]
	}
	return p.parseURLs(ctx, urls)
}

func (p *StopCoronaParser) parseURLs(ctx context.Context, urls []string) ([]*domain.BulletinRecord, error) {
	records := make([]*domain.BulletinRecord, 0, len(urls)*90)
	recordsMx := sync.Mutex{}
	eg, egCtx := errgroup.WithContext(ctx)

	for _, url := range urls {
		url := url
		eg.Go(func() error {
			doc, err := fetchDocument(egCtx, fmt.Sprintf(p.urlBase, url))
			if err != nil {
				return fmt.Errorf("fetchDocument, url-%s: %w", url, err)
			}

			parsed, err := p.parseArticle(doc)
			if err != nil {
				if err == constants.ErrAmbiguousBulletinWeek {
					logger.Warnf(egCtx, "skipping bulletin article %s: %s", url, err.Error())
					return nil
				}
				return fmt.Errorf("parseArticle, url-%s: %w", url, err)
			}

			recordsMx.Lock()
			defer recordsMx.Unlock()
			records = append(records, parsed...)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	return records, nil
}

func (p *StopCoronaParser) parseArticle(doc *goquery.Document) ([]*domain.BulletinRecord, error) {
	body := doc.Find("div.article-detail__body")

	start, end, err := ParseWeekSpan(body.Find("h3").First().Text())
	if err != nil {
		return nil, err
	}

	cells := make([]string, 0, 90*5)
	body.Find("tbody td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(td.Text()))
	})
	if len(cells) == 0 {
		return nil, constants.ErrAmbiguousBulletinWeek
	}

	// the header row is part of the tbody, 5 cells in the old layout and 6 in
	// the new one
	if strings.Contains(cells[0], "Наименование субъекта") {
		cells = cells[5:]
	} else {
		if len(cells) < 6 {
			return nil, constants.ErrAmbiguousBulletinWeek
		}
		cells = cells[6:]
	}

	records := make([]*domain.BulletinRecord, 0, len(cells)/5)
	for i := 0; i+4 < len(cells); i += 5 {
		hospitalized, err := parseCount(cells[i+1])
		if err != nil {
			return nil, fmt.Errorf("hospitalized, region-%s: %w", cells[i], err)
		}
		recovered, err := parseCount(cells[i+2])
		if err != nil {
			return nil, fmt.Errorf("recovered, region-%s: %w", cells[i], err)
		}
		infected, err := parseCount(cells[i+3])
		if err != nil {
			return nil, fmt.Errorf("infected, region-%s: %w", cells[i], err)
		}
		deaths, err := parseCount(cells[i+4])
		if err != nil {
			return nil, fmt.Errorf("deaths, region-%s: %w", cells[i], err)
		}

		records = append(records, &domain.BulletinRecord{
			StartDate:    start,
			EndDate:      end,
			Region:       cells[i],
			Hospitalized: hospitalized,
			Recovered:    recovered,
			Infected:     infected,
			Deaths:       deaths,
		})
	}

	return records, nil
}

// ParseWeekSpan reads the covered date range out of an article header like
// "... (23.10 - 29.10.2023)" or "12.12.2022 – 18.12.2022". A date without a
// year takes it from the end date when the header carries one, otherwise from
// the clock; the start year rolls back by one when the span wraps over New
// Year. Anything but exactly one span is ambiguous and drops the article.
func ParseWeekSpan(header string) (start, end time.Time, err error) {
	matches := weekSpanPattern.FindAllString(header, -1)
	if len(matches) != 1 {
		return start, end, constants.ErrAmbiguousBulletinWeek
	}

	parts := regexp.MustCompile(`[-–]`).Split(matches[0], -1)
	if len(parts) != 2 {
		return start, end, constants.ErrAmbiguousBulletinWeek
	}

	first := strings.TrimSuffix(strings.TrimSpace(parts[0]), ".")
	second := strings.TrimSuffix(strings.TrimSpace(parts[1]), ".")

	year := time.Now().Year()
	if len(strings.Split(second, ".")) == 3 {
		end, err = time.Parse("02.01.2006", second)
		if err != nil {
			return start, end, constants.ErrAmbiguousBulletinWeek
		}
		year = end.Year()
	} else {
		end, err = time.Parse("02.01.2006", fmt.Sprintf("%s.%d", second, year))
		if err != nil {
			return start, end, constants.ErrAmbiguousBulletinWeek
		}
	}

	if len(strings.Split(first, ".")) == 3 {
		start, err = time.Parse("02.01.2006", first)
		if err != nil {
			return start, end, constants.ErrAmbiguousBulletinWeek
		}
		return start, end, nil
	}

	startYear := year
	if monthOf(first) > monthOf(second) {
		startYear = year - 1
	}
	start, err = time.Parse("02.01.2006", fmt.Sprintf("%s.%d", first, startYear))
	if err != nil {
		return start, end, constants.ErrAmbiguousBulletinWeek
	}

	return start, end, nil
}

func monthOf(dayMonth string) int {
	parts := strings.Split(dayMonth, ".")
	if len(parts) < 2 {
		return 0
	}
	month, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return month
}

// parseCount reads a table cell number, tolerating space and nbsp group
// separators.
func parseCount(cell string) (int64, error) {
	cleaned := strings.NewReplacer(" ", "", " ", "", "\n", "", "\t", "", "\r", "").Replace(cell)
	return strconv.ParseInt(cleaned, 10, 64)
}

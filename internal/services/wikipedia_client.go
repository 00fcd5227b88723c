package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const provinceType = "tỉnh"

type PlaceSummary struct {
	Thumbnail string
	Intro     string
}

// PlaceSummarizer fetches a short description and picture for a place.
type PlaceSummarizer interface {
	Summarize(ctx context.Context, name, placeType string) (PlaceSummary, error)
}

type WikipediaClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewWikipediaClient(baseURL string) *WikipediaClient {
	return &WikipediaClient{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (w *WikipediaClient) Summarize(ctx context.Context, name, placeType string) (PlaceSummary, error) {
	page := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"/wiki/"+page, nil)
	if err != nil {
		return PlaceSummary{}, err
	}
	req.Header.Set("User-Agent", "vivubot/1.0")

	resp, err := w.HTTP.Do(req)
	if err != nil {
		return PlaceSummary{}, fmt.Errorf("wikipedia request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PlaceSummary{}, fmt.Errorf("wikipedia %s: status %d", page, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return PlaceSummary{}, fmt.Errorf("parse wikipedia page: %w", err)
	}

	return PlaceSummary{
		Thumbnail: infoboxImage(doc, placeType),
		Intro:     firstParagraph(doc),
	}, nil
}

// infoboxImage picks the first infobox image, or the second for provinces
// where the first one is usually the flag or seal.
func infoboxImage(doc *goquery.Document, placeType string) string {
	imgs := doc.Find("table.infobox img")
	idx := 0
	if strings.EqualFold(strings.TrimSpace(placeType), provinceType) {
		idx = 1
	}
	if imgs.Length() <= idx {
		return ""
	}

	src, ok := imgs.Eq(idx).Attr("src")
	if !ok || src == "" {
		return ""
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}

func firstParagraph(doc *goquery.Document) string {
	var intro string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			return true
		}
		intro = text
		return false
	})
	return intro
}

package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// HousingURL is the municipal page carrying the "Stand" date stamp.
	HousingURL = "https://www.bad-leonfelden.ooe.gv.at/Buergerservice/Bauen_Wohnen/Freie_Wohnungen"
	// UserAgent mimics a desktop browser; the municipal site serves a reduced
	// page to unknown clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	Timeout   = 30 * time.Second
)

// ErrDateNotFound is returned when the page contains no "Stand: DD.MM.YYYY"
// stamp.
var ErrDateNotFound = errors.New("update date not found on page")

// standPattern matches the literal "Stand:" label followed by a DD.MM.YYYY
// date. The date substring is returned verbatim, without reformatting.
var standPattern = regexp.MustCompile(`Stand:\s*(\d{2}\.\d{2}\.\d{4})`)

// Scraper fetches the housing page and extracts its update date
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for the production housing page.
func New() *Scraper {
	return NewWithURL(HousingURL)
}

// NewWithURL creates a Scraper for an arbitrary URL. Used by tests and kept
// exported so a different municipality mirror can be pointed at.
func NewWithURL(url string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// URL returns the page this scraper targets.
func (s *Scraper) URL() string {
	return s.url
}

// Fetch performs a single GET against the target page and returns the raw
// body. Any transport error or non-2xx status is returned as an error; the
// caller aborts the current cycle without retrying.
func (s *Scraper) Fetch() (string, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	return string(body), nil
}

// ExtractUpdateDate returns the first "Stand: DD.MM.YYYY" date in content,
// verbatim. The HTML is normalized to text first so the label may be split
// across inline markup; if the text pass finds nothing (or the content is not
// parseable HTML) the raw input is matched as-is. Pure function, no side
// effects.
func ExtractUpdateDate(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil {
		if m := standPattern.FindStringSubmatch(doc.Text()); m != nil {
			return m[1], nil
		}
	}

	if m := standPattern.FindStringSubmatch(content); m != nil {
		return m[1], nil
	}

	return "", ErrDateNotFound
}

// FetchUpdateDate fetches the page and extracts its update date in one call.
func (s *Scraper) FetchUpdateDate() (string, error) {
	content, err := s.Fetch()
	if err != nil {
		return "", err
	}
	return ExtractUpdateDate(content)
}

// Package bls fetches official labor statistics from the BLS public API and
// merges them into scraped occupation records. It is a separate enrichment
// step with its own client; the scraping core never calls it.
package bls

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const baseURL = "https://api.bls.gov/publicAPI/v2"

// The public API tolerates roughly one request every two seconds without a
// registration key.
const requestsPerSecond = 0.5

type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	apiKey  string
}

// New builds a client; apiKey may be empty (lower request quota applies).
func New(apiKey string) *Client {
	return newWithBase(baseURL, apiKey)
}

func newWithBase(base, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(base).
			SetTimeout(30 * time.Second).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", "jobmarket-engine/1.0"),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		apiKey:  apiKey,
	}
}

type timeseriesRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	AnnualAverage   bool     `json:"annualaverage"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type timeseriesResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year  string `json:"year"`
				Value string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

// Series is one BLS series with its annual values by year.
type Series struct {
	ID     string
	Annual map[int]float64
}

// TimeSeries fetches the given series for [startYear, endYear]. The API caps
// series per request, so callers should batch IDs in groups of at most 50.
func (c *Client) TimeSeries(ctx context.Context, ids []string, startYear, endYear int) ([]Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var out timeseriesResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(timeseriesRequest{
			SeriesID:        ids,
			StartYear:       strconv.Itoa(startYear),
			EndYear:         strconv.Itoa(endYear),
			AnnualAverage:   true,
			RegistrationKey: c.apiKey,
		}).
		SetResult(&out).
		Post("/timeseries/data/")
	if err != nil {
		return nil, fmt.Errorf("bls timeseries: %w", err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("bls timeseries: status %d", res.StatusCode())
	}
	if out.Status != "REQUEST_SUCCEEDED" {
		return nil, fmt.Errorf("bls timeseries: %s: %s", out.Status, strings.Join(out.Message, "; "))
	}

	series := make([]Series, 0, len(out.Results.Series))
	for _, s := range out.Results.Series {
		sr := Series{ID: s.SeriesID, Annual: map[int]float64{}}
		for _, d := range s.Data {
			year, err := strconv.Atoi(d.Year)
			if err != nil {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(d.Value, ",", ""), 64)
			if err != nil {
				continue // "-" means not published for that year
			}
			sr.Annual[year] = v
		}
		series = append(series, sr)
	}
	return series, nil
}

// SeriesIDForOccupation builds the OEWS national annual-median-wage series
// ID for an occupation code: survey OEU, not seasonally adjusted, national
// area, all industries, datatype 13.
func SeriesIDForOccupation(code string) string {
	soc := strings.NewReplacer("-", "", ".", "").Replace(code)
	if len(soc) > 6 {
		soc = soc[:6] // detail suffix like ".00" isn't part of the series key
	}
	return "OEUN" + "0000000" + "000000" + soc + "13"
}

// Latest returns the most recent annual value in the series, ok=false when
// the series had no usable data.
func (s Series) Latest() (float64, bool) {
	best := 0
	for year := range s.Annual {
		if year > best {
			best = year
		}
	}
	if best == 0 {
		return 0, false
	}
	return s.Annual[best], true
}

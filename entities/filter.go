package entities

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type SortKey string

const (
	SortByPrice SortKey = "price"
	SortByDate  SortKey = "date"
)

const (
	MinPriceLimit = 0
	MaxPriceLimit = 1000
)

// FilterCriteria is the ephemeral catalog query. The date range and the
// exact date are independent optionals; when Date is set it takes
// precedence over the range for matching, which the server enforces. The
// client only guarantees a lossless round trip through the query string.
type FilterCriteria struct {
	MinPrice  float64
	MaxPrice  float64
	StartDate *time.Time
	EndDate   *time.Time
	Date      *time.Time
	SortBy    SortKey
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinPrice: MinPriceLimit,
		MaxPrice: MaxPriceLimit,
		SortBy:   SortByDate,
	}
}

// Validate checks the invariants the stores rely on before a criteria is
// put on the wire.
func (f FilterCriteria) Validate() error {
	if f.MinPrice < 0 {
		return fmt.Errorf("minPrice must not be negative, got %v", f.MinPrice)
	}
	if f.MaxPrice < f.MinPrice {
		return fmt.Errorf("maxPrice %v is below minPrice %v", f.MaxPrice, f.MinPrice)
	}
	if f.SortBy != SortByPrice && f.SortBy != SortByDate {
		return fmt.Errorf("unknown sort key %q", f.SortBy)
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return fmt.Errorf("endDate is before startDate")
	}
	return nil
}

// Encode renders the criteria as a canonical query string. Keys are
// emitted in sorted order so equal criteria always encode identically.
func (f FilterCriteria) Encode() string {
	q := url.Values{}
	q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	q.Set("sortBy", string(f.SortBy))
	if f.StartDate != nil {
		q.Set("startDate", f.StartDate.UTC().Format(time.RFC3339))
	}
	if f.EndDate != nil {
		q.Set("endDate", f.EndDate.UTC().Format(time.RFC3339))
	}
	if f.Date != nil {
		q.Set("date", f.Date.UTC().Format(time.RFC3339))
	}
	return q.Encode()
}

// DecodeFilterCriteria is the inverse of Encode. Absent optional keys
// decode to nil fields.
func DecodeFilterCriteria(query string) (FilterCriteria, error) {
	q, err := url.ParseQuery(query)
	if err != nil {
		return FilterCriteria{}, fmt.Errorf("failed to parse filter query: %w", err)
	}
	f := FilterCriteria{SortBy: SortKey(q.Get("sortBy"))}
	if f.MinPrice, err = strconv.ParseFloat(q.Get("minPrice"), 64); err != nil {
		return FilterCriteria{}, fmt.Errorf("bad minPrice %q: %w", q.Get("minPrice"), err)
	}
	if f.MaxPrice, err = strconv.ParseFloat(q.Get("maxPrice"), 64); err != nil {
		return FilterCriteria{}, fmt.Errorf("bad maxPrice %q: %w", q.Get("maxPrice"), err)
	}
	for key, dst := range map[string]**time.Time{
		"startDate": &f.StartDate,
		"endDate":   &f.EndDate,
		"date":      &f.Date,
	} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return FilterCriteria{}, fmt.Errorf("bad %s %q: %w", key, raw, err)
		}
		t = t.UTC()
		*dst = &t
	}
	if err := f.Validate(); err != nil {
		return FilterCriteria{}, err
	}
	return f, nil
}

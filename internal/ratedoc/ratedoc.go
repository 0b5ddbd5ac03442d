// Package ratedoc parses the ECB euro foreign exchange reference rates document.
package ratedoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"curconv/internal/currency"
)

// ErrMalformed indicates the document could not be interpreted as a rate snapshot.
var ErrMalformed = errors.New("malformed rate document")

// RateTable maps currency codes to their rate against the base currency.
// It is read-only once built.
type RateTable struct {
	rates map[string]float64
}

// NewRateTable copies rates into a table and adds the base currency at 1.0.
func NewRateTable(rates map[string]float64) RateTable {
	m := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		m[strings.ToUpper(code)] = rate
	}
	m[currency.Base] = 1.0
	return RateTable{rates: m}
}

// Rate returns the rate for code against the base currency.
func (t RateTable) Rate(code string) (float64, bool) {
	r, ok := t.rates[strings.ToUpper(code)]
	return r, ok
}

// Codes returns the codes present in the table, sorted.
func (t RateTable) Codes() []string {
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of entries, base included.
func (t RateTable) Len() int {
	return len(t.rates)
}

// Document is a parsed rate snapshot.
type Document struct {
	Published time.Time // UTC midnight of the publication date
	Rates     RateTable
}

// eurofxref-daily.xml:
//
//	<gesmes:Envelope>
//	  <Cube>
//	    <Cube time="2023-07-07">
//	      <Cube currency="USD" rate="1.0908"/>
type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Cube    struct {
		Days []dayCube `xml:"Cube"`
	} `xml:"Cube"`
}

type dayCube struct {
	Time  string     `xml:"time,attr"`
	Rates []rateCube `xml:"Cube"`
}

type rateCube struct {
	Currency string `xml:"currency,attr"`
	Rate     string `xml:"rate,attr"`
}

// Parse decodes raw into a Document. Only the first (newest) day is used.
func Parse(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var env envelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(env.Cube.Days) == 0 {
		return nil, fmt.Errorf("%w: no dated snapshot", ErrMalformed)
	}
	day := env.Cube.Days[0]

	if day.Time == "" {
		return nil, fmt.Errorf("%w: missing publication date", ErrMalformed)
	}
	published, err := time.Parse(time.DateOnly, strings.TrimSpace(day.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: publication date %q: %v", ErrMalformed, day.Time, err)
	}

	rates := make(map[string]float64, len(day.Rates))
	for _, rc := range day.Rates {
		if rc.Currency == "" || rc.Rate == "" {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(rc.Rate), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rate for %s: %v", ErrMalformed, rc.Currency, err)
		}
		if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
			return nil, fmt.Errorf("%w: rate for %s must be positive, got %s", ErrMalformed, rc.Currency, rc.Rate)
		}
		rates[rc.Currency] = rate
	}

	return &Document{
		Published: published.UTC(),
		Rates:     NewRateTable(rates),
	}, nil
}

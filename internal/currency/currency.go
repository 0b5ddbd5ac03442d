// Package currency holds the closed set of currency codes the converter accepts.
package currency

import (
	"errors"
	"sort"
	"strings"
)

// Base is the currency every ECB rate is quoted against.
const Base = "EUR"

var supportedCurrencies = map[string]struct{}{
	"AUD": {},
	"BGN": {},
	"BRL": {},
	"CAD": {},
	"CHF": {},
	"CNY": {},
	"CZK": {},
	"DKK": {},
	"EUR": {},
	"GBP": {},
	"HKD": {},
	"HRK": {},
	"HUF": {},
	"IDR": {},
	"ILS": {},
	"INR": {},
	"ISK": {},
	"JPY": {},
	"KRW": {},
	"MXN": {},
	"MYR": {},
	"NOK": {},
	"NZD": {},
	"PHP": {},
	"PLN": {},
	"RON": {},
	"RUB": {},
	"SEK": {},
	"SGD": {},
	"THB": {},
	"TRY": {},
	"USD": {},
	"ZAR": {},
}

// ErrUnsupportedCurrency is returned when a currency is not in the supported list.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Validator defines the interface for currency validation.
type Validator interface {
	Validate(code string) error
	IsSupported(code string) bool
}

type validator struct{}

// NewValidator creates a new currency validator.
func NewValidator() Validator {
	return validator{}
}

// Validate checks if the currency code is supported (case-insensitive).
func (v validator) Validate(code string) error {
	if v.IsSupported(code) {
		return nil
	}
	return ErrUnsupportedCurrency
}

// IsSupported returns true if the currency code is supported (case-insensitive).
func (validator) IsSupported(code string) bool {
	return IsSupported(code)
}

// IsSupported returns true if the currency code is supported (case-insensitive).
func IsSupported(code string) bool {
	_, ok := supportedCurrencies[strings.ToUpper(code)]
	return ok
}

// Supported returns the supported codes in alphabetical order.
// The returned slice is a copy.
func Supported() []string {
	codes := make([]string, 0, len(supportedCurrencies))
	for code := range supportedCurrencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

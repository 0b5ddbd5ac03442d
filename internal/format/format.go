// Package format renders conversion amounts for the terminal.
package format

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GroupingThreshold is the magnitude from which amounts are shown as grouped integers.
const GroupingThreshold = 10000

// printer groups digits with ",".
var printer = message.NewPrinter(language.English)

// Amount formats v for display. Values that reach GroupingThreshold once
// rounded to cents are rounded to an integer and grouped ("12,346");
// smaller values keep two decimals without grouping ("9999.99").
func Amount(v float64) string {
	cents := fmt.Sprintf("%.2f", v)
	if r, err := strconv.ParseFloat(cents, 64); err == nil && math.Abs(r) >= GroupingThreshold {
		return printer.Sprintf("%.0f", math.Round(v))
	}
	return cents
}

// Sentence renders "<amount> <FROM> is <amount> <TO>".
func Sentence(amount float64, from string, converted float64, to string) string {
	return fmt.Sprintf("%s %s is %s %s", Amount(amount), from, Amount(converted), to)
}

package service

import "time"

// ConversionRequest is an amount to convert between two currency codes.
type ConversionRequest struct {
	Amount float64
	From   string
	To     string
}

// ConversionResult is a completed conversion.
type ConversionResult struct {
	Amount    float64
	From      string
	To        string
	Converted float64
	Published time.Time // publication date of the snapshot used
	FromCache bool
}

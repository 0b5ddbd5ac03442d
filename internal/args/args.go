// Package args interprets positional command-line tokens as a conversion request.
package args

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"curconv/internal/currency"
	"curconv/internal/service"
)

// DefaultAmount is used when no amount is given.
const DefaultAmount = 1.0

// ErrUsage indicates the tokens do not form a recognised request shape.
var ErrUsage = errors.New("incorrect usage")

// Kind classifies a single token.
type Kind int

// Token kinds.
const (
	KindInvalid Kind = iota
	KindAmount
	KindConnector
	KindCurrency
)

func (k Kind) String() string {
	switch k {
	case KindAmount:
		return "amount"
	case KindConnector:
		return "connector"
	case KindCurrency:
		return "currency"
	default:
		return "invalid"
	}
}

// connectors are cosmetic words allowed between the two currency codes.
var connectors = map[string]struct{}{
	"to": {},
	"as": {},
	"in": {},
}

// Connectors returns the accepted connector words.
func Connectors() []string {
	return []string{"to", "as", "in"}
}

// Token is a classified command-line token.
type Token struct {
	Kind     Kind
	Amount   float64 // set for KindAmount
	Currency string  // upper-cased, set for KindCurrency
	Raw      string
}

// Interpreter turns positional tokens into a conversion request.
type Interpreter struct {
	validator currency.Validator
}

// NewInterpreter creates an Interpreter that accepts the currencies v supports.
func NewInterpreter(v currency.Validator) *Interpreter {
	return &Interpreter{validator: v}
}

// Classify determines what a single token is. Underscores and commas are
// stripped before trying to read it as an amount.
func (p *Interpreter) Classify(s string) Token {
	tok := Token{Raw: s}

	cleaned := strings.NewReplacer("_", "", ",", "").Replace(s)
	if n, err := strconv.ParseFloat(cleaned, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		tok.Kind = KindAmount
		tok.Amount = n
		return tok
	}

	if _, ok := connectors[strings.ToLower(s)]; ok {
		tok.Kind = KindConnector
		return tok
	}

	code := strings.ToUpper(strings.TrimSpace(s))
	if err := p.validator.Validate(code); err == nil {
		tok.Kind = KindCurrency
		tok.Currency = code
		return tok
	}

	return tok
}

// Interpret classifies tokens and matches them against the accepted shapes:
//
//	CUR CUR            CUR to CUR
//	CUR CUR AMT        CUR to CUR AMT
//	AMT CUR CUR        AMT CUR to CUR
func (p *Interpreter) Interpret(tokens []string) (service.ConversionRequest, error) {
	toks := make([]Token, len(tokens))
	for i, s := range tokens {
		toks[i] = p.Classify(s)
	}

	amount := DefaultAmount
	switch {
	case len(toks) > 0 && toks[0].Kind == KindAmount:
		amount = toks[0].Amount
		toks = toks[1:]
	case len(toks) > 0 && toks[len(toks)-1].Kind == KindAmount:
		amount = toks[len(toks)-1].Amount
		toks = toks[:len(toks)-1]
	}

	if len(toks) == 3 && toks[1].Kind == KindConnector {
		toks = []Token{toks[0], toks[2]}
	}

	if len(toks) != 2 || toks[0].Kind != KindCurrency || toks[1].Kind != KindCurrency {
		return service.ConversionRequest{}, ErrUsage
	}

	return service.ConversionRequest{
		Amount: amount,
		From:   toks[0].Currency,
		To:     toks[1].Currency,
	}, nil
}

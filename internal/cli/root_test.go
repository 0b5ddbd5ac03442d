package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"curconv/internal/service"
)

type mockConverter struct {
	calls       int
	convertFunc func(ctx context.Context, req service.ConversionRequest) (*service.ConversionResult, error)
}

func (m *mockConverter) Convert(ctx context.Context, req service.ConversionRequest) (*service.ConversionResult, error) {
	m.calls++
	return m.convertFunc(ctx, req)
}

// fixedRates converts with {EUR:1, USD:1.1}.
func fixedRates() *mockConverter {
	rates := map[string]float64{"EUR": 1, "USD": 1.1}
	return &mockConverter{
		convertFunc: func(_ context.Context, req service.ConversionRequest) (*service.ConversionResult, error) {
			return &service.ConversionResult{
				Amount:    req.Amount,
				From:      req.From,
				To:        req.To,
				Converted: req.Amount * rates[req.To] / rates[req.From],
				Published: time.Date(2023, 7, 13, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
}

func execute(t *testing.T, opts Options, argv ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(argv)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Convert(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"compact", []string{"10", "eur", "usd"}, "11.00\n"},
		{"compact reverse", []string{"usd", "to", "eur", "10"}, "9.09\n"},
		{"default amount", []string{"eur", "usd"}, "1.10\n"},
		{"long", []string{"-l", "10", "eur", "usd"}, "10.00 EUR is 11.00 USD\n"},
		{"long flag last", []string{"10", "usd", "in", "eur", "--long"}, "10.00 USD is 9.09 EUR\n"},
		{"grouped", []string{"eur", "usd", "1_000_000"}, "1,100,000\n"},
		{"negative after dashes", []string{"--", "-5", "eur", "usd"}, "-5.50\n"},
		{"long with negative", []string{"-l", "--", "eur", "usd", "-10"}, "-10.00 EUR is -11.00 USD\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv := fixedRates()
			out, err := execute(t, Options{Converter: conv}, tc.argv...)

			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
			assert.Equal(t, 1, conv.calls)
		})
	}
}

func TestRootCmd_UsageErrorDoesNotConvert(t *testing.T) {
	for _, argv := range [][]string{
		{"10", "20"},
		{"usd"},
		{},
		{"usd", "xyz"},
		{"usd", "to", "to", "eur"},
		{"-5", "eur", "usd"},
		{"eur", "usd", "-5"},
		{"-x", "eur", "usd"},
		{"--bogus", "eur", "usd"},
		{"--long=maybe", "eur", "usd"},
	} {
		t.Run(strings.Join(argv, " "), func(t *testing.T) {
			conv := fixedRates()
			out, err := execute(t, Options{Converter: conv}, argv...)

			require.NoError(t, err)
			assert.Equal(t, UsageLine+"\n", out)
			assert.Zero(t, conv.calls)
		})
	}
}

func TestRootCmd_ListCurrencies(t *testing.T) {
	for _, flag := range []string{"--list", "-c", "--currencies"} {
		t.Run(flag, func(t *testing.T) {
			conv := fixedRates()
			out, err := execute(t, Options{Converter: conv}, flag)

			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			assert.Len(t, lines, 33)
			assert.Equal(t, "AUD", lines[0])
			assert.Contains(t, lines, "EUR")
			assert.Zero(t, conv.calls)
		})
	}
}

func TestRootCmd_Help(t *testing.T) {
	conv := fixedRates()
	out, err := execute(t, Options{Converter: conv}, "-h")

	require.NoError(t, err)
	assert.Contains(t, out, "Connectors")
	assert.Contains(t, out, "to, as, in")
	assert.Contains(t, out, "--currencies")
	assert.Zero(t, conv.calls)
}

func TestRootCmd_ConverterError(t *testing.T) {
	boom := errors.New("rate fetch failed: connection refused")
	conv := &mockConverter{
		convertFunc: func(context.Context, service.ConversionRequest) (*service.ConversionResult, error) {
			return nil, boom
		},
	}

	out, err := execute(t, Options{Converter: conv}, "eur", "usd")

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out)
}

func TestRootCmd_DebugRaisesLevel(t *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)

	_, err := execute(t, Options{Converter: fixedRates(), Level: &level}, "--debug", "eur", "usd")

	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

// Package cli implements the cur command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"curconv/internal/args"
	"curconv/internal/currency"
	"curconv/internal/format"
	"curconv/internal/service"
)

// Converter turns a request into a result. Satisfied by *service.ConversionService.
type Converter interface {
	Convert(ctx context.Context, req service.ConversionRequest) (*service.ConversionResult, error)
}

// UsageLine is printed when the tokens do not form a request.
const UsageLine = "Incorrect usage! Try: cur [amount] <currency> [to|as|in] <currency> [amount]"

// Options wires the root command to its collaborators.
type Options struct {
	Converter Converter
	// Level is raised to debug by --debug. Optional.
	Level *zap.AtomicLevel
}

// NewRootCmd creates the root Cobra command for the cur CLI.
func NewRootCmd(opts Options) *cobra.Command {
	var (
		long       bool
		list       bool
		currencies bool
		debug      bool
	)
	interp := args.NewInterpreter(currency.NewValidator())

	cmd := &cobra.Command{
		Use:     "cur [amount] <currency> [to|as|in] <currency> [amount]",
		Short:   "Convert an amount between currencies using ECB reference rates",
		Long:    rootCmdLong,
		Example: rootCmdExample,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug && opts.Level != nil {
				opts.Level.SetLevel(zapcore.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, tokens []string) error {
			out := cmd.OutOrStdout()

			if list || currencies {
				return printCurrencies(out)
			}

			req, err := interp.Interpret(tokens)
			if err != nil {
				if errors.Is(err, args.ErrUsage) {
					return printUsage(out)
				}
				return err
			}

			res, err := opts.Converter.Convert(cmd.Context(), req)
			if err != nil {
				return err
			}

			if long {
				_, err = fmt.Fprintln(out, format.Sentence(res.Amount, res.From, res.Converted, res.To))
			} else {
				_, err = fmt.Fprintln(out, format.Amount(res.Converted))
			}
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, `verbose output: "<amount> <CUR> is <amount> <CUR>"`)
	cmd.Flags().BoolVar(&list, "list", false, "list supported currencies")
	cmd.Flags().BoolVarP(&currencies, "currencies", "c", false, "list supported currencies")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Unknown flags and flag-like amounts such as -5 are usage errors.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, _ error) error {
		return printUsage(c.OutOrStdout())
	})

	return cmd
}

func printUsage(w io.Writer) error {
	_, err := fmt.Fprintln(w, UsageLine)
	return err
}

func printCurrencies(w io.Writer) error {
	for _, code := range currency.Supported() {
		if _, err := fmt.Fprintln(w, code); err != nil {
			return err
		}
	}
	return nil
}

var rootCmdLong = `cur converts an amount between two currencies using the European Central
Bank daily reference rates. The rate document is cached locally and only
refetched once a newer business-day snapshot should have been published
(15:00 UTC on weekdays).

The amount is optional (default 1) and may come first or last. Underscores
and commas in the amount are ignored. Currency codes are case-insensitive.
A negative amount must follow "--" so it is not read as a flag.

Connectors (optional, between the two currencies): ` + strings.Join(args.Connectors(), ", ")

const rootCmdExample = `  # How many US dollars is one euro
  cur eur usd

  # Convert 250 pounds to yen, verbose
  cur -l 250 gbp to jpy

  # Amount last, with separators
  cur usd in chf 1_000_000

  # Negative amount
  cur -- -5 eur usd

  # List supported currencies
  cur --currencies`

// Package cli implements the interactive terminal calculator.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/history"
	"github.com/amirasaad/kambialo/pkg/money"
	"github.com/amirasaad/kambialo/pkg/service/rates"
	"github.com/fatih/color"
)

const usage = "Commands: a USD price to convert, h history, c clear history, q quit"

// CLI reads prices from in and writes quotations to out. It owns the history
// of one terminal session.
type CLI struct {
	svc     *rates.Service
	tracker *history.Tracker
	in      *bufio.Scanner
	out     io.Writer

	label *color.Color
	value *color.Color
	warn  *color.Color
	fail  *color.Color
	muted *color.Color
}

// New creates a CLI. Colour is only emitted when useColor is set.
func New(svc *rates.Service, tracker *history.Tracker, in io.Reader, out io.Writer, useColor bool) *CLI {
	c := &CLI{
		svc:     svc,
		tracker: tracker,
		in:      bufio.NewScanner(in),
		out:     out,
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		muted:   color.New(color.Faint),
	}
	for _, col := range []*color.Color{c.label, c.value, c.warn, c.fail, c.muted} {
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// Run serves prompts until the user quits, input ends or ctx is done.
func (c *CLI) Run(ctx context.Context) error {
	c.println(c.muted.Sprint(usage))
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, ok := c.prompt("Price in USD: ")
		if !ok {
			return c.in.Err()
		}
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "h", "history":
			c.printHistory()
			continue
		case "c", "clear":
			c.tracker.Clear()
			c.println(c.muted.Sprint("History cleared"))
			continue
		}

		price, err := money.Parse(line)
		if err != nil || price < 0 {
			c.println(c.fail.Sprintf("Invalid price %q: enter a non-negative number", line))
			continue
		}
		if done := c.quote(ctx, price); done {
			return c.in.Err()
		}
	}
}

// quote runs one calculation, asking for manual rates when needed. It reports
// whether input ended while prompting.
func (c *CLI) quote(ctx context.Context, price float64) bool {
	req := rates.QuoteRequest{PriceUSD: price, History: c.tracker, Record: true}
	for {
		q, err := c.svc.Quote(ctx, req)
		var missing *domain.MissingRatesError
		switch {
		case errors.As(err, &missing):
			if missing.Official {
				v, ok := c.promptRate("Official rate unavailable. Enter VES per USD: ")
				if !ok {
					return true
				}
				req.ManualOfficial = &v
			}
			if missing.Market {
				v, ok := c.promptRate("Market rate unavailable. Enter VES per USDT: ")
				if !ok {
					return true
				}
				req.ManualMarket = &v
			}
			continue
		case err != nil:
			c.println(c.fail.Sprintf("Cannot compute: %v", err))
			return false
		}
		c.printQuotation(q)
		return false
	}
}

func (c *CLI) promptRate(msg string) (float64, bool) {
	for {
		line, ok := c.prompt(c.warn.Sprint(msg))
		if !ok {
			return 0, false
		}
		v, err := money.Parse(line)
		if err == nil && v >= 0 {
			return v, true
		}
		c.println(c.fail.Sprintf("Invalid rate %q", line))
	}
}

func (c *CLI) prompt(msg string) (string, bool) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *CLI) printQuotation(q *rates.Quotation) {
	res := q.Result
	c.row("Total", money.FormatCode(res.TotalLocalCurrency, money.VES))
	c.row("USDT needed", money.FormatCode(res.AssetUnitsNeeded, money.USDT))
	c.row("Market rate", money.Format(q.Market.Value)+" VES/USDT"+origin(q.Market))
	official := money.Format(q.Official.Value) + " VES/USD" + origin(q.Official)
	if q.OfficialQuote != nil && q.OfficialQuote.RetrievedAt != nil {
		official += " as of " + q.OfficialQuote.RetrievedAt.Local().Format(time.DateTime)
	}
	c.row("Official rate", official)
	if res.RateDifference != nil {
		c.row("Difference", money.FormatCode(*res.RateDifference, money.VES))
	}
	if offer := q.Offer; offer != nil {
		c.row("Counterparty", fmt.Sprintf("%s (limits %s - %s VES)",
			offer.CounterpartyLabel, money.Format(offer.MinAmount), money.Format(offer.MaxAmount)))
	}
}

func (c *CLI) printHistory() {
	entries := c.tracker.List()
	if len(entries) == 0 {
		c.println(c.muted.Sprint("No calculations yet"))
		return
	}
	for i, e := range entries {
		c.println(fmt.Sprintf("%2d. %s  %s USD -> %s  %s",
			i+1,
			c.muted.Sprint(e.RecordedAt.Local().Format(time.TimeOnly)),
			money.Format(e.PriceUSD),
			c.value.Sprint(money.FormatCode(e.TotalLocalCurrency, money.VES)),
			money.FormatCode(e.AssetUnitsNeeded, money.USDT),
		))
	}
}

func (c *CLI) row(label, value string) {
	c.println(c.label.Sprintf("%-14s", label+":") + " " + c.value.Sprint(value))
}

func (c *CLI) println(s string) {
	fmt.Fprintln(c.out, s)
}

func origin(r domain.Rate) string {
	if r.Origin == domain.RateManual {
		return " (manual)"
	}
	return ""
}

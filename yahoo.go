package folio

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ebezard/folio/date"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

// YahooQuotes resolves close prices from Yahoo Finance daily chart
// bars. Yahoo only has trading-day granularity; days without a bar
// are reported as misses, exactly what the reconstruction engine
// expects.
type YahooQuotes struct{}

// Close fetches the close price of ticker on a single day.
func (YahooQuotes) Close(_ context.Context, ticker string, on date.Date) (decimal.Decimal, bool, error) {
	bars, err := dailyBars(ticker, date.NewRange(on, on))
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	px, ok := bars.Get(on)
	if !ok {
		return decimal.Decimal{}, false, nil
	}
	return decimal.NewFromFloat(px), true, nil
}

// Closes fetches the dense close-price table for all tickers over the
// span. A ticker that cannot be fetched is logged and left unlisted
// rather than failing the whole table: its derived fields degrade to
// unavailable downstream.
func (YahooQuotes) Closes(_ context.Context, tickers []string, span date.Range) (*PriceTable, error) {
	table := NewPriceTable()
	for _, ticker := range tickers {
		bars, err := dailyBars(ticker, span)
		if err != nil {
			log.Printf("yahoo: no history for %s: %v", ticker, err)
			continue
		}
		for on, px := range bars.Values() {
			table.Append(ticker, on, px)
		}
	}
	return table, nil
}

// dailyBars fetches one-day bars for a ticker over a span and indexes
// the closes by day.
func dailyBars(ticker string, span date.Range) (*date.Series[float64], error) {
	start := span.From.Time()
	// Yahoo's end bound is exclusive.
	end := span.To.Add(1).Time()

	iter := chart.Get(&chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	series := new(date.Series[float64])
	for iter.Next() {
		bar := iter.Bar()
		on := date.New(time.Unix(int64(bar.Timestamp), 0).UTC().Date())
		px, _ := bar.Close.Float64()
		series.Append(on, px)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("fetching %s bars: %w", ticker, err)
	}
	return series, nil
}

var _ PriceLookup = YahooQuotes{}

// Package renderer projects the daily observation table into
// presentable documents: markdown reports and PNG charts.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/ebezard/folio"
	md "github.com/nao1215/markdown"
)

// Summary renders the latest observation of every tracked ticker as a
// markdown table. Monetary columns are formatted in the reporting
// currency; cells without market data read "n/a".
func Summary(h *folio.History, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio on %s", h.Span().To))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Position", "Close", "Valuation", "Balance", "Profit rate"},
		Rows:   [][]string{},
	}
	for _, ticker := range h.Tickers() {
		o, ok := h.Latest(ticker)
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, []string{
			o.Ticker,
			o.QuantityStock.String(),
			o.Close.Display(currency),
			o.Valuation.Display(currency),
			o.Balance.Display(currency),
			o.ProfitRate.Percent(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// HistoryTable renders one selectable series as a markdown table, one
// date column and one column per ticker, filtered by a minimum year.
func HistoryTable(h *folio.History, field folio.Field, minYear int, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s over time", field.Label()))

	tickers := h.Tickers()
	header := append([]string{"Date"}, tickers...)
	alignment := make([]md.TableAlignment, len(header))
	alignment[0] = md.AlignLeft
	for i := range tickers {
		alignment[i+1] = md.AlignRight
	}

	table := md.TableSet{Alignment: alignment, Header: header, Rows: [][]string{}}
	for day := range h.Span().Days() {
		if day.Year() < minYear {
			continue
		}
		row := []string{day.String()}
		for _, ticker := range tickers {
			o, ok := h.Get(ticker, day)
			if !ok {
				row = append(row, "n/a")
				continue
			}
			row = append(row, cell(o, field, currency))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}

func cell(o folio.DailyObservation, field folio.Field, currency string) string {
	if field == folio.FieldProfitRate {
		return o.ProfitRate.Percent()
	}
	return o.Valuation.Display(currency)
}

package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sales-analytics/models"
)

// NoDataMessage is the whole report when there is nothing to analyze.
const NoDataMessage = "No data available for analysis"

// reportCustomers is how many of the top customers the text report lists.
const reportCustomers = 5

var (
	sep  = strings.Repeat("=", 60)
	thin = strings.Repeat("-", 40)
)

// FormatReport renders the analysis as a fixed-layout text report. Ordering
// is taken as-is from the analysis.
func FormatReport(a *models.AnalysisResult) string {
	if a.Empty() {
		return NoDataMessage
	}

	p := message.NewPrinter(language.English)
	var b strings.Builder
	line := func(format string, args ...any) {
		b.WriteString(p.Sprintf(format, args...))
		b.WriteByte('\n')
	}

	line("%s", sep)
	line("SALES ANALYSIS REPORT")
	line("%s", sep)

	s := a.Summary
	line("\nSUMMARY STATISTICS:")
	line("%s", thin)
	line("Total Valid Records: %d", s.TotalRecords)
	line("Total Sales: $%.2f", money(s.TotalSales))
	line("Total Quantity Sold: %d", s.TotalQuantity)
	line("Average Unit Price: $%.2f", money(s.AverageUnitPrice))
	line("Unique Customers: %d", s.UniqueCustomers)
	line("Unique Products: %d", s.UniqueProducts)

	line("\nREGION-WISE ANALYSIS:")
	line("%s", thin)
	for _, r := range a.ByRegion {
		line("%s:", r.Region)
		line("  Total Sales: $%.2f", money(r.TotalSales))
		line("  Quantity Sold: %d", r.TotalQuantity.IntPart())
		line("  Transactions: %d", r.Transactions)
	}

	line("\nTOP SELLING PRODUCTS:")
	line("%s", thin)
	for i, pr := range a.ByProduct {
		line("%d. %s - %s", i+1, pr.ProductID, pr.ProductName)
		line("   Sales: $%.2f", money(pr.TotalSales))
		line("   Quantity: %d", pr.TotalQuantity.IntPart())
	}

	line("\nTOP CUSTOMERS:")
	line("%s", thin)
	for i, c := range a.TopCustomers {
		if i == reportCustomers {
			break
		}
		line("%d. Customer %s", i+1, c.CustomerID)
		line("   Total Spent: $%.2f", money(c.TotalSpent))
		line("   Transactions: %d", c.Transactions)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Print writes the formatted report to w.
func Print(w io.Writer, a *models.AnalysisResult) error {
	_, err := fmt.Fprintf(w, "\n%s\n", FormatReport(a))
	return err
}

// FormatInvalidSample renders the first n invalid records as an aligned table.
func FormatInvalidSample(invalid []*models.InvalidRecord, n int) string {
	if len(invalid) == 0 {
		return ""
	}
	if n > len(invalid) {
		n = len(invalid)
	}

	headers := []string{"#", "TransactionID", "Error", "Product"}
	rows := make([][]string, 0, n)
	for i, r := range invalid[:n] {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			runewidth.Truncate(r.Record.Raw.TransactionID, 16, "..."),
			runewidth.Truncate(r.Reason, 44, "..."),
			runewidth.Truncate(r.Record.ProductName, 28, "..."),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		b.WriteByte('\n')
	}

	writeRow(headers)
	rule := make([]string, len(headers))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatCategories renders the category rollups from enrichment.
func FormatCategories(categories []models.CategoryStat) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	for _, c := range categories {
		b.WriteString(p.Sprintf("%s:\n", c.Category))
		b.WriteString(p.Sprintf("  Sales: $%.2f\n", money(c.TotalSales)))
		b.WriteString(p.Sprintf("  Quantity: %d\n", c.TotalQuantity.IntPart()))
		b.WriteString(p.Sprintf("  Unique Products: %d\n", c.UniqueProducts))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatMoney renders an amount the way the report does, e.g. "$1,234.50".
func FormatMoney(d decimal.Decimal) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", money(d))
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

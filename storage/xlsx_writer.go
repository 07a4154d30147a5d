package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook, in creation order.
const (
	SheetSummary    = "Summary"
	SheetRegions    = "Regions"
	SheetProducts   = "Products"
	SheetCustomers  = "Customers"
	SheetTrends     = "Trends"
	SheetCategories = "Categories"
)

// WorkbookWriter writes the report as an xlsx workbook, one sheet per rollup.
type WorkbookWriter struct{}

func (WorkbookWriter) WriteReport(path string, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	for _, sheet := range workbookSheets(r) {
		if sheet.name != SheetSummary {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("xlsx: create sheet %s: %w", sheet.name, err)
			}
		}
		for i, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return fmt.Errorf("xlsx: %s row %d: %w", sheet.name, i+1, err)
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("xlsx: %s row %d: %w", sheet.name, i+1, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("xlsx: create output dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", path, err)
	}
	return nil
}

type sheetData struct {
	name string
	rows [][]any
}

func workbookSheets(r *Report) []sheetData {
	summary := sheetData{name: SheetSummary, rows: [][]any{
		{"Metric", "Value"},
		{"Run ID", r.RunID},
		{"Input File", r.InputFile},
		{"Total Parsed", r.Cleaning.TotalParsed},
		{"Invalid Removed", r.Cleaning.InvalidRemoved},
		{"Valid Kept", r.Cleaning.ValidKept},
	}}

	a := r.Analysis
	if a.Empty() {
		return []sheetData{summary}
	}

	s := a.Summary
	summary.rows = append(summary.rows,
		[]any{"Total Records", s.TotalRecords},
		[]any{"Total Sales", money(s.TotalSales)},
		[]any{"Total Quantity", s.TotalQuantity},
		[]any{"Average Unit Price", money(s.AverageUnitPrice)},
		[]any{"Unique Customers", s.UniqueCustomers},
		[]any{"Unique Products", s.UniqueProducts},
	)

	regions := sheetData{name: SheetRegions, rows: [][]any{{"Region", "Total Sales", "Total Quantity", "Transactions"}}}
	for _, x := range a.ByRegion {
		regions.rows = append(regions.rows, []any{x.Region, money(x.TotalSales), quantity(x.TotalQuantity), x.Transactions})
	}

	products := sheetData{name: SheetProducts, rows: [][]any{{"Product ID", "Product Name", "Total Sales", "Total Quantity", "Transactions"}}}
	for _, x := range a.ByProduct {
		products.rows = append(products.rows, []any{x.ProductID, x.ProductName, money(x.TotalSales), quantity(x.TotalQuantity), x.Transactions})
	}

	customers := sheetData{name: SheetCustomers, rows: [][]any{{"Customer ID", "Total Spent", "Transactions"}}}
	for _, x := range a.TopCustomers {
		customers.rows = append(customers.rows, []any{x.CustomerID, money(x.TotalSpent), x.Transactions})
	}

	trends := sheetData{name: SheetTrends, rows: [][]any{{"Date", "Total Sales"}}}
	for _, x := range a.SalesTrends {
		trends.rows = append(trends.rows, []any{x.Date, money(x.TotalSales)})
	}

	sheets := []sheetData{summary, regions, products, customers, trends}
	if r.Categories != nil {
		cats := sheetData{name: SheetCategories, rows: [][]any{{"Category", "Total Sales", "Total Quantity", "Unique Products"}}}
		for _, x := range r.Categories {
			cats.rows = append(cats.rows, []any{x.Category, money(x.TotalSales), quantity(x.TotalQuantity), x.UniqueProducts})
		}
		sheets = append(sheets, cats)
	}
	return sheets
}

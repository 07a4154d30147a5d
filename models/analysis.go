package models

import "github.com/shopspring/decimal"

// Summary holds the headline totals over all valid records.
type Summary struct {
	TotalRecords     int
	TotalSales       decimal.Decimal
	TotalQuantity    int64
	AverageUnitPrice decimal.Decimal
	UniqueCustomers  int
	UniqueProducts   int
}

// RegionStat is the rollup for a single region.
type RegionStat struct {
	Region        string
	TotalSales    decimal.Decimal
	TotalQuantity decimal.Decimal
	Transactions  int
}

// ProductStat is the rollup for a single product id.
type ProductStat struct {
	ProductID     string
	ProductName   string
	TotalSales    decimal.Decimal
	TotalQuantity decimal.Decimal
	Transactions  int
}

// CustomerStat is the rollup for a single customer id.
type CustomerStat struct {
	CustomerID   string
	TotalSpent   decimal.Decimal
	Transactions int
}

// DailySales is the total sales recorded on one date.
type DailySales struct {
	Date       string
	TotalSales decimal.Decimal
}

// AnalysisResult holds the computed analytics over the valid dataset.
// ByRegion keeps first-occurrence order, ByProduct and TopCustomers are
// ranked, SalesTrends is sorted by date.
type AnalysisResult struct {
	Summary      Summary
	ByRegion     []RegionStat
	ByProduct    []ProductStat
	TopCustomers []CustomerStat
	SalesTrends  []DailySales
}

// Empty reports whether the result was built from no records.
func (a *AnalysisResult) Empty() bool {
	return a == nil || a.Summary.TotalRecords == 0
}

// TopRegion returns the region with the highest total sales. The first
// region wins on ties.
func (a *AnalysisResult) TopRegion() (RegionStat, bool) {
	if a.Empty() || len(a.ByRegion) == 0 {
		return RegionStat{}, false
	}
	top := a.ByRegion[0]
	for _, r := range a.ByRegion[1:] {
		if r.TotalSales.GreaterThan(top.TotalSales) {
			top = r
		}
	}
	return top, true
}

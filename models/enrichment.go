package models

import "github.com/shopspring/decimal"

// ProductInfo is the catalog data attached to a product. Price and Rating
// are nil when the catalog had nothing to say.
type ProductInfo struct {
	APIProductID string
	Title        string
	Price        *float64
	Category     string
	Description  string
	Rating       *float64
}

// LookupResult is the outcome of one catalog lookup: either OK with Info, or
// a failure with Reason.
type LookupResult struct {
	ProductID string
	OK        bool
	Info      ProductInfo
	Reason    string
}

// EnrichedRecord is a valid record decorated with catalog information.
type EnrichedRecord struct {
	*ValidRecord
	ProductInfo ProductInfo
}

// CategoryStat is the rollup of enriched records for one catalog category.
type CategoryStat struct {
	Category       string
	TotalSales     decimal.Decimal
	TotalQuantity  decimal.Decimal
	Products       []string
	UniqueProducts int
}

package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"sales-analytics/models"
	"sales-analytics/utils"
)

// TopN is how many products and customers the rankings keep.
const TopN = 10

// InsightService aggregates valid records into an AnalysisResult.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Analyze computes the summary, per-region, per-product, per-customer and
// per-date rollups over valid in one pass. The same TotalPrice values feed
// every rollup. An empty input returns the empty result.
func (s *InsightService) Analyze(valid []*models.ValidRecord) *models.AnalysisResult {
	result := &models.AnalysisResult{
		ByRegion:     []models.RegionStat{},
		ByProduct:    []models.ProductStat{},
		TopCustomers: []models.CustomerStat{},
		SalesTrends:  []models.DailySales{},
	}
	if len(valid) == 0 {
		return result
	}

	var (
		totalSales    = decimal.Zero
		totalQuantity = decimal.Zero

		regions   []models.RegionStat
		products  []models.ProductStat
		customers []models.CustomerStat

		regionIdx   = make(map[string]int)
		productIdx  = make(map[string]int)
		customerIdx = make(map[string]int)
		dateSales   = make(map[string]decimal.Decimal)
	)
	for _, r := range valid {
		totalSales = totalSales.Add(r.TotalPrice)
		totalQuantity = totalQuantity.Add(r.Quantity)

		i, ok := regionIdx[r.Region]
		if !ok {
			i = len(regions)
			regionIdx[r.Region] = i
			regions = append(regions, models.RegionStat{Region: r.Region})
		}
		regions[i].TotalSales = regions[i].TotalSales.Add(r.TotalPrice)
		regions[i].TotalQuantity = regions[i].TotalQuantity.Add(r.Quantity)
		regions[i].Transactions++

		// The first name seen for a product id is the one reported.
		i, ok = productIdx[r.ProductID]
		if !ok {
			i = len(products)
			productIdx[r.ProductID] = i
			products = append(products, models.ProductStat{ProductID: r.ProductID, ProductName: r.ProductName})
		}
		products[i].TotalSales = products[i].TotalSales.Add(r.TotalPrice)
		products[i].TotalQuantity = products[i].TotalQuantity.Add(r.Quantity)
		products[i].Transactions++

		i, ok = customerIdx[r.CustomerID]
		if !ok {
			i = len(customers)
			customerIdx[r.CustomerID] = i
			customers = append(customers, models.CustomerStat{CustomerID: r.CustomerID})
		}
		customers[i].TotalSpent = customers[i].TotalSpent.Add(r.TotalPrice)
		customers[i].Transactions++

		dateSales[r.Date] = dateSales[r.Date].Add(r.TotalPrice)
	}

	avg := decimal.Zero
	if totalQuantity.IsPositive() {
		avg = totalSales.Div(totalQuantity)
	}

	result.Summary = models.Summary{
		TotalRecords:     len(valid),
		TotalSales:       totalSales,
		TotalQuantity:    totalQuantity.IntPart(),
		AverageUnitPrice: avg,
		UniqueCustomers:  len(customers),
		UniqueProducts:   len(products),
	}
	result.ByRegion = regions

	// Stable sorts keep encounter order for equal totals.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].TotalSales.GreaterThan(products[j].TotalSales)
	})
	result.ByProduct = products[:min(TopN, len(products))]

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].TotalSpent.GreaterThan(customers[j].TotalSpent)
	})
	result.TopCustomers = customers[:min(TopN, len(customers))]

	dates := make([]string, 0, len(dateSales))
	for d := range dateSales {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		result.SalesTrends = append(result.SalesTrends, models.DailySales{Date: d, TotalSales: dateSales[d]})
	}

	s.logger.Info("[insights] Analyzed %d records: %d regions, %d products, %d customers, %d dates",
		len(valid), len(regions), len(productIdx), len(customerIdx), len(dates))
	return result
}

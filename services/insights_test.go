package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-analytics/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(id, date, product, name, qty, price, customer, region string) *models.ValidRecord {
	q, p := d(qty), d(price)
	return &models.ValidRecord{
		TransactionID: id,
		Date:          date,
		ProductID:     product,
		ProductName:   name,
		Quantity:      q,
		UnitPrice:     p,
		CustomerID:    customer,
		Region:        region,
		TotalPrice:    q.Mul(p),
	}
}

func sampleSales() []*models.ValidRecord {
	return []*models.ValidRecord{
		sale("T1", "2024-03-16", "P001", "Wireless Mouse", "3", "19.99", "C001", "North"),
		sale("T2", "2024-03-15", "P002", "Keyboard", "1", "49.50", "C002", "South"),
		sale("T3", "2024-03-16", "P001", "Mouse (renamed)", "2", "19.99", "C002", "North"),
		sale("T4", "2024-03-14", "P003", "Monitor", "1", "199.00", "C003", "East"),
		sale("T5", "2024-03-15", "P002", "Keyboard", "2", "49.50", "C001", "South"),
	}
}

func TestInsightSummary(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Analyze(sampleSales())

	s := r.Summary
	assert.Equal(t, 5, s.TotalRecords)
	assert.True(t, s.TotalSales.Equal(d("447.45")), "TotalSales = %s", s.TotalSales)
	assert.Equal(t, int64(9), s.TotalQuantity)
	assert.Equal(t, "49.72", s.AverageUnitPrice.StringFixed(2))
	assert.Equal(t, 3, s.UniqueCustomers)
	assert.Equal(t, 3, s.UniqueProducts)
}

func TestInsightRegionsKeepFirstOccurrence(t *testing.T) {
	r := NewInsightService(newTestLogger()).Analyze(sampleSales())

	require.Len(t, r.ByRegion, 3)
	assert.Equal(t, "North", r.ByRegion[0].Region)
	assert.Equal(t, "South", r.ByRegion[1].Region)
	assert.Equal(t, "East", r.ByRegion[2].Region)
	assert.True(t, r.ByRegion[0].TotalSales.Equal(d("99.95")))
	assert.True(t, r.ByRegion[0].TotalQuantity.Equal(d("5")))
	assert.Equal(t, 2, r.ByRegion[0].Transactions)

	top, ok := r.TopRegion()
	require.True(t, ok)
	assert.Equal(t, "East", top.Region)
}

func TestInsightProductsRankedWithFirstName(t *testing.T) {
	r := NewInsightService(newTestLogger()).Analyze(sampleSales())

	require.Len(t, r.ByProduct, 3)
	assert.Equal(t, "P003", r.ByProduct[0].ProductID)
	assert.Equal(t, "P002", r.ByProduct[1].ProductID)
	assert.Equal(t, "P001", r.ByProduct[2].ProductID)
	assert.Equal(t, "Wireless Mouse", r.ByProduct[2].ProductName)
}

func TestInsightTopCustomers(t *testing.T) {
	r := NewInsightService(newTestLogger()).Analyze(sampleSales())

	require.Len(t, r.TopCustomers, 3)
	// C003 199.00, C001 59.97+99.00, C002 49.50+39.98
	assert.Equal(t, "C003", r.TopCustomers[0].CustomerID)
	assert.Equal(t, "C001", r.TopCustomers[1].CustomerID)
	assert.True(t, r.TopCustomers[1].TotalSpent.Equal(d("158.97")))
	assert.Equal(t, 2, r.TopCustomers[1].Transactions)
}

func TestInsightTrendsSortedByDate(t *testing.T) {
	r := NewInsightService(newTestLogger()).Analyze(sampleSales())

	dates := make([]string, 0, len(r.SalesTrends))
	for _, x := range r.SalesTrends {
		dates = append(dates, x.Date)
	}
	assert.Equal(t, []string{"2024-03-14", "2024-03-15", "2024-03-16"}, dates)
	assert.True(t, r.SalesTrends[1].TotalSales.Equal(d("148.50")))
}

func TestInsightTopTenTruncation(t *testing.T) {
	var sales []*models.ValidRecord
	for i := 1; i <= 15; i++ {
		sales = append(sales, sale(
			fmt.Sprintf("T%d", i), "2024-01-01",
			fmt.Sprintf("P%03d", i), "Item",
			"1", fmt.Sprintf("%d", i*10),
			fmt.Sprintf("C%03d", i), "North",
		))
	}
	r := NewInsightService(newTestLogger()).Analyze(sales)

	require.Len(t, r.ByProduct, TopN)
	require.Len(t, r.TopCustomers, TopN)
	assert.Equal(t, "P015", r.ByProduct[0].ProductID)
	assert.Equal(t, "P006", r.ByProduct[TopN-1].ProductID)
	for i := 1; i < len(r.ByProduct); i++ {
		assert.False(t, r.ByProduct[i].TotalSales.GreaterThan(r.ByProduct[i-1].TotalSales), "products not descending at %d", i)
	}
	assert.Equal(t, 15, r.Summary.UniqueProducts)
}

func TestInsightTiesKeepEncounterOrder(t *testing.T) {
	sales := []*models.ValidRecord{
		sale("T1", "2024-01-01", "P009", "A", "1", "10", "C1", "North"),
		sale("T2", "2024-01-01", "P001", "B", "1", "10", "C2", "North"),
		sale("T3", "2024-01-01", "P005", "C", "1", "10", "C3", "North"),
	}
	r := NewInsightService(newTestLogger()).Analyze(sales)
	assert.Equal(t, "P009", r.ByProduct[0].ProductID)
	assert.Equal(t, "P001", r.ByProduct[1].ProductID)
	assert.Equal(t, "P005", r.ByProduct[2].ProductID)
}

func TestInsightEmpty(t *testing.T) {
	r := NewInsightService(newTestLogger()).Analyze(nil)
	assert.True(t, r.Empty())
	assert.Empty(t, r.ByRegion)
	assert.Equal(t, NoDataMessage, FormatReport(r))
}

func TestInsightIdempotent(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	sales := sampleSales()
	assert.Equal(t, FormatReport(svc.Analyze(sales)), FormatReport(svc.Analyze(sales)))
	assert.Equal(t, svc.Analyze(sales), svc.Analyze(sales))
}

func TestInsightRollupsAgree(t *testing.T) {
	r := NewInsightService(newTestLogger()).Analyze(sampleSales())

	regionSum, dateSum := decimal.Zero, decimal.Zero
	regionTx := 0
	for _, x := range r.ByRegion {
		regionSum = regionSum.Add(x.TotalSales)
		regionTx += x.Transactions
	}
	for _, x := range r.SalesTrends {
		dateSum = dateSum.Add(x.TotalSales)
	}
	assert.True(t, regionSum.Equal(r.Summary.TotalSales))
	assert.True(t, dateSum.Equal(r.Summary.TotalSales))
	assert.Equal(t, r.Summary.TotalRecords, regionTx)

	// Fewer than TopN products, so the ranking covers them all.
	productSum := decimal.Zero
	for _, x := range r.ByProduct {
		productSum = productSum.Add(x.TotalSales)
	}
	assert.True(t, productSum.Equal(r.Summary.TotalSales))
}

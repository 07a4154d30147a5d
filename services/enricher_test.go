package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-analytics/models"
)

type fakeCatalog struct {
	mu    sync.Mutex
	calls map[string]int
	items map[string]models.ProductInfo
}

func newFakeCatalog(items map[string]models.ProductInfo) *fakeCatalog {
	return &fakeCatalog{calls: make(map[string]int), items: items}
}

func (f *fakeCatalog) Lookup(_ context.Context, productID string) (*models.ProductInfo, error) {
	f.mu.Lock()
	f.calls[productID]++
	f.mu.Unlock()

	info, ok := f.items[productID]
	if !ok {
		return nil, errors.New("not found")
	}
	return &info, nil
}

func catalogItems() map[string]models.ProductInfo {
	return map[string]models.ProductInfo{
		"P001": {APIProductID: "1", Title: "Mouse", Category: "electronics"},
		"P002": {APIProductID: "2", Title: "Keyboard", Category: "electronics"},
	}
}

func TestEnricherOneLookupPerProduct(t *testing.T) {
	cat := newFakeCatalog(catalogItems())
	e := NewEnricher(cat, newTestLogger(), 3, 0)

	results := e.Lookup(context.Background(), sampleSales())

	require.Len(t, results, 3)
	assert.Equal(t, []string{"P001", "P002", "P003"}, []string{results[0].ProductID, results[1].ProductID, results[2].ProductID})
	for id, n := range cat.calls {
		assert.Equal(t, 1, n, "product %s looked up %d times", id, n)
	}
	assert.True(t, results[0].OK)
	assert.False(t, results[2].OK)
	assert.Equal(t, "not found", results[2].Reason)
}

func TestEnricherFallsBackToDefault(t *testing.T) {
	e := NewEnricher(newFakeCatalog(catalogItems()), newTestLogger(), 2, 0)
	sales := sampleSales()

	enriched, _ := e.Enrich(context.Background(), sales)

	require.Len(t, enriched, len(sales))
	for i, r := range enriched {
		assert.Same(t, sales[i], r.ValidRecord)
	}
	assert.Equal(t, "Mouse", enriched[0].ProductInfo.Title)
	assert.Equal(t, DefaultProductInfo("Monitor"), enriched[3].ProductInfo)
	assert.Nil(t, enriched[3].ProductInfo.Price)
}

func TestEnricherDoesNotChangeAnalysis(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	sales := sampleSales()
	before := FormatReport(svc.Analyze(sales))

	_, _ = NewEnricher(newFakeCatalog(catalogItems()), newTestLogger(), 2, 0).Enrich(context.Background(), sales)

	assert.Equal(t, before, FormatReport(svc.Analyze(sales)))
}

func TestEnricherCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewEnricher(newFakeCatalog(catalogItems()), newTestLogger(), 1, 1000).Lookup(ctx, sampleSales())
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NotEmpty(t, r.ProductID)
		if !r.OK {
			assert.NotEmpty(t, r.Reason)
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	e := NewEnricher(newFakeCatalog(catalogItems()), newTestLogger(), 2, 0)
	enriched, _ := e.Enrich(context.Background(), sampleSales())

	stats := CategoryBreakdown(enriched)
	require.Len(t, stats, 2)

	assert.Equal(t, "electronics", stats[0].Category)
	assert.Equal(t, []string{"P001", "P002"}, stats[0].Products)
	assert.Equal(t, 2, stats[0].UniqueProducts)
	assert.True(t, stats[0].TotalSales.Equal(d("248.45")), "electronics sales = %s", stats[0].TotalSales)
	assert.True(t, stats[0].TotalQuantity.Equal(d("8")))

	assert.Equal(t, "Unknown", stats[1].Category)
	assert.True(t, stats[1].TotalSales.Equal(d("199")))

	top, ok := TopCategory(stats)
	require.True(t, ok)
	assert.Equal(t, "electronics", top.Category)

	_, ok = TopCategory(nil)
	assert.False(t, ok)
}

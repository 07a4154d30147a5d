package services

import (
	"context"

	"github.com/shopspring/decimal"

	"sales-analytics/models"
	"sales-analytics/utils"
)

// ProductCatalog is any source of product details.
type ProductCatalog interface {
	Lookup(ctx context.Context, productID string) (*models.ProductInfo, error)
}

// Enricher decorates valid records with catalog data. It never changes the
// records it is given; failed lookups fall back to DefaultProductInfo.
type Enricher struct {
	catalog     ProductCatalog
	logger      *utils.Logger
	concurrency int
	rateLimitMs int
}

func NewEnricher(catalog ProductCatalog, logger *utils.Logger, concurrency, rateLimitMs int) *Enricher {
	return &Enricher{
		catalog:     catalog,
		logger:      logger,
		concurrency: concurrency,
		rateLimitMs: rateLimitMs,
	}
}

// DefaultProductInfo is attached when the catalog has nothing for a record.
func DefaultProductInfo(productName string) models.ProductInfo {
	return models.ProductInfo{
		Title:       productName,
		Category:    "Unknown",
		Description: "No additional information available",
	}
}

// Lookup resolves every unique product id of valid, in encounter order.
func (e *Enricher) Lookup(ctx context.Context, valid []*models.ValidRecord) []models.LookupResult {
	ids := utils.NewKeySet()
	for _, r := range valid {
		ids.Add(r.ProductID)
	}
	e.logger.Info("[enricher] Fetching product information for %d unique products", ids.Size())
	keys := ids.Keys()

	results := make([]models.LookupResult, len(keys))
	pool := utils.NewWorkerPool(ctx, e.concurrency, e.rateLimitMs)
	for i, id := range keys {
		i, id := i, id // per-iteration copies; go.mod targets Go 1.21 loop semantics
		pool.Submit(func(ctx context.Context) error {
			results[i] = e.lookupOne(ctx, id)
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		// Only the rate limiter can fail here, when ctx ends early.
		e.logger.Warn("[enricher] Lookups interrupted: %v", err)
		for i, id := range keys {
			if results[i].ProductID == "" {
				results[i] = models.LookupResult{ProductID: id, Reason: err.Error()}
			}
		}
	}
	return results
}

func (e *Enricher) lookupOne(ctx context.Context, productID string) models.LookupResult {
	info, err := e.catalog.Lookup(ctx, productID)
	if err != nil {
		e.logger.Warn("[enricher] Lookup for %s failed: %v", productID, err)
		return models.LookupResult{ProductID: productID, Reason: err.Error()}
	}
	if info == nil {
		return models.LookupResult{ProductID: productID, Reason: "empty catalog response"}
	}
	return models.LookupResult{ProductID: productID, OK: true, Info: *info}
}

// Enrich attaches catalog data to each valid record, in input order.
func (e *Enricher) Enrich(ctx context.Context, valid []*models.ValidRecord) ([]models.EnrichedRecord, []models.LookupResult) {
	results := e.Lookup(ctx, valid)

	found := make(map[string]models.ProductInfo, len(results))
	for _, res := range results {
		if res.OK {
			found[res.ProductID] = res.Info
		}
	}

	enriched := make([]models.EnrichedRecord, 0, len(valid))
	for _, r := range valid {
		info, ok := found[r.ProductID]
		if !ok {
			info = DefaultProductInfo(r.ProductName)
		}
		enriched = append(enriched, models.EnrichedRecord{ValidRecord: r, ProductInfo: info})
	}

	e.logger.Info("[enricher] Enriched %d records (%d of %d products found)",
		len(enriched), len(found), len(results))
	return enriched, results
}

// CategoryBreakdown rolls enriched records up by catalog category, in order
// of first appearance.
func CategoryBreakdown(enriched []models.EnrichedRecord) []models.CategoryStat {
	var stats []models.CategoryStat
	idx := make(map[string]int)
	products := make(map[string]*utils.KeySet)

	for _, r := range enriched {
		cat := r.ProductInfo.Category
		if cat == "" {
			cat = "Unknown"
		}
		i, ok := idx[cat]
		if !ok {
			i = len(stats)
			idx[cat] = i
			stats = append(stats, models.CategoryStat{Category: cat, TotalSales: decimal.Zero, TotalQuantity: decimal.Zero})
			products[cat] = utils.NewKeySet()
		}
		stats[i].TotalSales = stats[i].TotalSales.Add(r.TotalPrice)
		stats[i].TotalQuantity = stats[i].TotalQuantity.Add(r.Quantity)
		products[cat].Add(r.ProductID)
	}

	for i := range stats {
		stats[i].Products = products[stats[i].Category].Keys()
		stats[i].UniqueProducts = len(stats[i].Products)
	}
	return stats
}

// TopCategory returns the category with the highest sales; the first wins ties.
func TopCategory(stats []models.CategoryStat) (models.CategoryStat, bool) {
	if len(stats) == 0 {
		return models.CategoryStat{}, false
	}
	top := stats[0]
	for _, s := range stats[1:] {
		if s.TotalSales.GreaterThan(top.TotalSales) {
			top = s
		}
	}
	return top, true
}

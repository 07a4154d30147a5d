package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"sales-analytics/models"
)

// SampleSize is how many valid records the report embeds.
const SampleSize = 5

// Report is everything persisted at the end of a run.
type Report struct {
	GeneratedAt time.Time
	RunID       string
	InputFile   string
	Cleaning    CleaningCounts
	Analysis    *models.AnalysisResult
	// Categories is nil when enrichment did not run.
	Categories []models.CategoryStat
	Valid      []*models.ValidRecord
}

// JSONWriter writes the report as indented JSON. Keyed rollups are emitted
// as objects in the order the analysis produced them.
type JSONWriter struct{}

func (JSONWriter) WriteReport(path string, r *Report) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("json: write %q: %w", path, err)
	}
	return nil
}

// MarshalReport renders r as indented JSON.
func MarshalReport(r *Report) ([]byte, error) {
	sample := r.Valid
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	records := make([]object, 0, len(sample))
	for _, v := range sample {
		records = append(records, validRecordObject(v))
	}

	doc := object{
		{"generated_at", r.GeneratedAt.Format(time.RFC3339)},
		{"run_id", r.RunID},
		{"input_file", r.InputFile},
		{"cleaning_summary", r.Cleaning},
		{"analysis", analysisObject(r.Analysis, r.Categories)},
		{"sample_valid_records", records},
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("json: marshal report: %w", err)
	}
	return data, nil
}

func analysisObject(a *models.AnalysisResult, categories []models.CategoryStat) object {
	if a.Empty() {
		return object{}
	}

	s := a.Summary
	summary := object{
		{"total_records", s.TotalRecords},
		{"total_sales", money(s.TotalSales)},
		{"total_quantity", s.TotalQuantity},
		{"average_unit_price", money(s.AverageUnitPrice)},
		{"unique_customers", s.UniqueCustomers},
		{"unique_products", s.UniqueProducts},
	}

	regions := make(object, 0, len(a.ByRegion))
	for _, r := range a.ByRegion {
		regions = append(regions, field{r.Region, object{
			{"total_sales", money(r.TotalSales)},
			{"total_quantity", quantity(r.TotalQuantity)},
			{"transactions", r.Transactions},
		}})
	}

	products := make(object, 0, len(a.ByProduct))
	for _, p := range a.ByProduct {
		products = append(products, field{p.ProductID, object{
			{"product_name", p.ProductName},
			{"total_sales", money(p.TotalSales)},
			{"total_quantity", quantity(p.TotalQuantity)},
			{"transactions", p.Transactions},
		}})
	}

	customers := make([]object, 0, len(a.TopCustomers))
	for _, c := range a.TopCustomers {
		customers = append(customers, object{
			{"customer_id", c.CustomerID},
			{"total_spent", money(c.TotalSpent)},
			{"transactions", c.Transactions},
		})
	}

	trends := make(object, 0, len(a.SalesTrends))
	for _, d := range a.SalesTrends {
		trends = append(trends, field{d.Date, money(d.TotalSales)})
	}

	out := object{
		{"summary", summary},
		{"by_region", regions},
		{"by_product", products},
		{"top_customers", customers},
		{"sales_trends", trends},
	}

	if categories != nil {
		cats := make(object, 0, len(categories))
		for _, c := range categories {
			cats = append(cats, field{c.Category, object{
				{"total_sales", money(c.TotalSales)},
				{"total_quantity", quantity(c.TotalQuantity)},
				{"products", c.Products},
				{"unique_products", c.UniqueProducts},
			}})
		}
		out = append(out, field{"product_categories", cats})
	}
	return out
}

func validRecordObject(v *models.ValidRecord) object {
	return object{
		{"TransactionID", v.TransactionID},
		{"Date", v.Date},
		{"ProductID", v.ProductID},
		{"ProductName", v.ProductName},
		{"Quantity", quantity(v.Quantity)},
		{"UnitPrice", quantity(v.UnitPrice)},
		{"CustomerID", v.CustomerID},
		{"Region", v.Region},
		{"TotalPrice", quantity(v.TotalPrice)},
	}
}

type field struct {
	key   string
	value any
}

// object is a JSON object that keeps its key order.
type object []field

func (o object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func quantity(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

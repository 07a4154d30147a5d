package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"sales-analytics/models"
)

// NormalizeText replaces commas with spaces, collapses whitespace runs to a
// single space and trims both ends.
//
//	"Wireless, Mouse" → "Wireless Mouse"
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), " ")
}

// NormalizeNumber strips thousands separators and surrounding whitespace and
// parses what is left. Negative values are never accepted, "-0" included.
//
//	"1,250.50" → 1250.50
//	"-5"       → unparsable
func NormalizeNumber(s string) models.Number {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" || strings.HasPrefix(cleaned, "-") {
		return models.Number{}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return models.Number{}
	}
	return models.Number{Value: d, Valid: true}
}

// Normalize builds the NormalizedRecord for a raw record.
func Normalize(r *models.RawRecord) *models.NormalizedRecord {
	return &models.NormalizedRecord{
		Raw:         *r,
		ProductName: NormalizeText(r.ProductName),
		Quantity:    NormalizeNumber(r.Quantity),
		UnitPrice:   NormalizeNumber(r.UnitPrice),
	}
}

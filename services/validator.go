package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"sales-analytics/models"
)

// Rule names reported on rejected records.
const (
	RuleTransactionID = "transaction_id"
	RuleCustomerID    = "customer_id"
	RuleRegion        = "region"
	RuleQuantity      = "quantity"
	RuleUnitPrice     = "unit_price"
	RuleDate          = "date"
	RuleProductID     = "product_id"
)

const dateLayout = "2006-01-02"

// dateRegexp pins the exact digit counts; time.Parse checks the calendar.
var dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationRule is one business constraint: Check reports whether the
// record satisfies it and Reason describes the failure.
type ValidationRule struct {
	Name   string
	Check  func(r *models.NormalizedRecord) bool
	Reason func(r *models.NormalizedRecord) string
}

var validationRules = []ValidationRule{
	{
		Name:  RuleTransactionID,
		Check: func(r *models.NormalizedRecord) bool { return strings.HasPrefix(r.Raw.TransactionID, "T") },
		Reason: func(r *models.NormalizedRecord) string {
			return fmt.Sprintf("TransactionID must start with 'T', got %q", r.Raw.TransactionID)
		},
	},
	{
		Name:   RuleCustomerID,
		Check:  func(r *models.NormalizedRecord) bool { return strings.TrimSpace(r.Raw.CustomerID) != "" },
		Reason: func(*models.NormalizedRecord) string { return "Missing CustomerID" },
	},
	{
		Name:   RuleRegion,
		Check:  func(r *models.NormalizedRecord) bool { return strings.TrimSpace(r.Raw.Region) != "" },
		Reason: func(*models.NormalizedRecord) string { return "Missing Region" },
	},
	{
		Name:   RuleQuantity,
		Check:  func(r *models.NormalizedRecord) bool { return positive(r.Quantity) },
		Reason: func(r *models.NormalizedRecord) string { return "Invalid Quantity: " + r.Raw.Quantity },
	},
	{
		Name:   RuleUnitPrice,
		Check:  func(r *models.NormalizedRecord) bool { return positive(r.UnitPrice) },
		Reason: func(r *models.NormalizedRecord) string { return "Invalid UnitPrice: " + r.Raw.UnitPrice },
	},
	{
		Name:   RuleDate,
		Check:  func(r *models.NormalizedRecord) bool { return validDate(r.Raw.Date) },
		Reason: func(r *models.NormalizedRecord) string { return "Invalid Date format: " + r.Raw.Date },
	},
	{
		Name:   RuleProductID,
		Check:  func(r *models.NormalizedRecord) bool { return strings.HasPrefix(r.Raw.ProductID, "P") },
		Reason: func(r *models.NormalizedRecord) string { return "Invalid ProductID: " + r.Raw.ProductID },
	},
}

// ValidationRules returns the rules in evaluation order.
func ValidationRules() []ValidationRule {
	out := make([]ValidationRule, len(validationRules))
	copy(out, validationRules)
	return out
}

// Validate evaluates the rules in order and reports the first one that fails.
// A nil record is treated as a record with every field empty.
func Validate(r *models.NormalizedRecord) models.ValidationOutcome {
	if r == nil {
		r = &models.NormalizedRecord{}
	}
	for _, rule := range validationRules {
		if !rule.Check(r) {
			return models.ValidationOutcome{Rule: rule.Name, Reason: rule.Reason(r)}
		}
	}
	return models.ValidationOutcome{Valid: true}
}

func positive(n models.Number) bool {
	return n.Valid && n.Value.IsPositive()
}

func validDate(s string) bool {
	if !dateRegexp.MatchString(s) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

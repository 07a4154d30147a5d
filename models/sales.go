package models

import "github.com/shopspring/decimal"

// RawRecord holds the eight text fields of one input line exactly as parsed.
// Nothing is typed or validated yet.
type RawRecord struct {
	TransactionID string
	Date          string
	ProductID     string
	ProductName   string
	Quantity      string
	UnitPrice     string
	CustomerID    string
	Region        string
}

// Number is a normalized numeric field. Valid is false when the raw text
// could not be accepted as a number.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

// NormalizedRecord is a RawRecord with the product name cleaned and the
// numeric fields converted.
type NormalizedRecord struct {
	Raw         RawRecord
	ProductName string
	Quantity    Number
	UnitPrice   Number
}

// ValidationOutcome is the verdict of the validator for one record.
// Rule and Reason are only set when Valid is false.
type ValidationOutcome struct {
	Valid  bool
	Rule   string
	Reason string
}

// ValidRecord is a record that passed every rule and is ready for aggregation.
type ValidRecord struct {
	TransactionID string
	Date          string
	ProductID     string
	ProductName   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	CustomerID    string
	Region        string
	TotalPrice    decimal.Decimal
}

// InvalidRecord is a rejected record together with the first rule it broke.
type InvalidRecord struct {
	Record NormalizedRecord
	Rule   string
	Reason string
}

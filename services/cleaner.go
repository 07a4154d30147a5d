package services

import (
	"sales-analytics/models"
	"sales-analytics/utils"
)

// Cleaner normalizes and validates raw records, splitting them into valid
// and invalid sets.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanAndValidate routes every raw record to exactly one of the two returned
// slices, keeping input order. Nil entries are skipped; a record with blank
// fields is still validated and rejected.
func (c *Cleaner) CleanAndValidate(raw []*models.RawRecord) ([]*models.ValidRecord, []*models.InvalidRecord) {
	valid := make([]*models.ValidRecord, 0, len(raw))
	var invalid []*models.InvalidRecord

	for _, r := range raw {
		if r == nil {
			continue
		}

		n := Normalize(r)
		outcome := Validate(n)
		if !outcome.Valid {
			c.logger.Debug("[cleaner] Rejected %s (%s): %s", r.TransactionID, outcome.Rule, outcome.Reason)
			invalid = append(invalid, &models.InvalidRecord{
				Record: *n,
				Rule:   outcome.Rule,
				Reason: outcome.Reason,
			})
			continue
		}

		valid = append(valid, &models.ValidRecord{
			TransactionID: r.TransactionID,
			Date:          r.Date,
			ProductID:     r.ProductID,
			ProductName:   n.ProductName,
			Quantity:      n.Quantity.Value,
			UnitPrice:     n.UnitPrice.Value,
			CustomerID:    r.CustomerID,
			Region:        r.Region,
			TotalPrice:    n.Quantity.Value.Mul(n.UnitPrice.Value),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d records: %d valid, %d invalid",
		len(valid)+len(invalid), len(valid), len(invalid))
	return valid, invalid
}

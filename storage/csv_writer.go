package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sales-analytics/models"
)

// ValidHeader is the column layout of the cleaned data file.
var ValidHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region", "TotalPrice",
}

// InvalidHeader is the column layout of the rejected records file.
var InvalidHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region", "Rule", "Error",
}

// CSVWriter writes records to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteValid appends one row per valid record.
func (c *CSVWriter) WriteValid(records []*models.ValidRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		row := []string{
			r.TransactionID,
			r.Date,
			r.ProductID,
			r.ProductName,
			r.Quantity.String(),
			r.UnitPrice.String(),
			r.CustomerID,
			r.Region,
			r.TotalPrice.String(),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// WriteInvalid appends one row per rejected record, raw values as read.
func (c *CSVWriter) WriteInvalid(records []*models.InvalidRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		raw := r.Record.Raw
		row := []string{
			raw.TransactionID,
			raw.Date,
			raw.ProductID,
			r.Record.ProductName,
			raw.Quantity,
			raw.UnitPrice,
			raw.CustomerID,
			raw.Region,
			r.Rule,
			r.Reason,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

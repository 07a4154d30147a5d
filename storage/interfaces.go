package storage

import "sales-analytics/models"

// ValidRecordWriter persists records that passed validation.
type ValidRecordWriter interface {
	WriteValid(records []*models.ValidRecord) error
	Close() error
}

// InvalidRecordWriter persists rejected records with their reasons.
type InvalidRecordWriter interface {
	WriteInvalid(records []*models.InvalidRecord) error
	Close() error
}

// ReportWriter persists the end-of-run report in some format.
type ReportWriter interface {
	WriteReport(path string, report *Report) error
}

var (
	_ ValidRecordWriter   = (*CSVWriter)(nil)
	_ InvalidRecordWriter = (*CSVWriter)(nil)
	_ ReportWriter        = JSONWriter{}
	_ ReportWriter        = WorkbookWriter{}
)

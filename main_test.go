package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-analytics/ingest/salesfile"
	"sales-analytics/services"
	"sales-analytics/utils"
)

func TestCleaningCountsAddUp(t *testing.T) {
	content := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
		"T1|2024-03-15|P001|Wireless, Mouse|3|19.99|C001|North\n" +
		"|||||||\n" +
		"T2|2024-03-16|P002|Keyboard|1|49.50|C002|South\n" +
		"T3|2024-03-16|P002|Keyboard|1\n" +
		"\n" +
		"X4|2024-03-16|P002|Keyboard|1|49.50|C002|South\n"
	path := filepath.Join(t.TempDir(), "sales.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	logger := utils.NewLoggerWithWriter(io.Discard, "error")
	parsed, err := salesfile.New("|", true, logger).Read(path)
	require.NoError(t, err)
	require.Len(t, parsed.Records, 4)
	require.Equal(t, 1, parsed.Malformed)

	valid, invalid := services.NewCleaner(logger).CleanAndValidate(parsed.Records)
	counts := cleaningCounts(parsed, valid, invalid)

	assert.Equal(t, 4, counts.TotalParsed)
	assert.Equal(t, 2, counts.ValidKept)
	assert.Equal(t, 2, counts.InvalidRemoved)
	assert.Equal(t, counts.TotalParsed, counts.ValidKept+counts.InvalidRemoved)
}

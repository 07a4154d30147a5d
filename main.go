package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"sales-analytics/catalog"
	"sales-analytics/config"
	"sales-analytics/ingest/salesfile"
	"sales-analytics/models"
	"sales-analytics/services"
	"sales-analytics/storage"
	"sales-analytics/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return 1
	}
	logger.SetLevel(cfg.LogLevel)

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	metrics := utils.NewRunMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Sales Data Analysis starting ===")
	logger.Info("Config: input: %s | output: %s | enrichment: %v | concurrency: %d | rate: %dms",
		cfg.InputFile, cfg.OutputDir, cfg.Enrichment.Enabled,
		cfg.Enrichment.MaxConcurrency, cfg.Enrichment.RateLimitMs)

	reader := salesfile.New(cfg.Delimiter, cfg.SkipHeader, logger)
	parsed, err := reader.Read(cfg.InputFile)
	if err != nil {
		logger.Error("Failed to read sales data: %v", err)
		return 1
	}
	metrics.RecordsRead.Add(float64(parsed.TotalRecords))
	metrics.RecordsMalformed.Add(float64(parsed.Malformed))

	if len(parsed.Records) == 0 {
		logger.Error("No records were parsed from %s. Exiting.", cfg.InputFile)
		return 1
	}

	cleaner := services.NewCleaner(logger)
	valid, invalid := cleaner.CleanAndValidate(parsed.Records)

	counts := cleaningCounts(parsed, valid, invalid)
	metrics.RecordsValid.Add(float64(len(valid)))
	for _, r := range invalid {
		metrics.RecordsInvalid.WithLabelValues(r.Rule).Inc()
	}

	fmt.Println("\nDATA CLEANING RESULTS:")
	fmt.Printf("Total records parsed: %d\n", counts.TotalParsed)
	fmt.Printf("Invalid records removed: %d\n", counts.InvalidRemoved)
	fmt.Printf("Valid records after cleaning: %d\n", counts.ValidKept)
	if len(invalid) > 0 {
		fmt.Println("\nSample invalid records:")
		fmt.Println(services.FormatInvalidSample(invalid, 3))
	}

	if err := storage.WriteSummary(cfg.SummaryPath(), counts); err != nil {
		logger.Error("Cleaning summary write failed: %v", err)
	}

	if len(valid) == 0 {
		logger.Error("All records were rejected during cleaning. Exiting.")
		return 1
	}

	writeRecords(cfg, logger, valid, invalid)

	insightSvc := services.NewInsightService(logger)
	analysis := insightSvc.Analyze(valid)
	metrics.TotalSales.Set(analysis.Summary.TotalSales.InexactFloat64())

	if err := services.Print(os.Stdout, analysis); err != nil {
		logger.Error("Report print failed: %v", err)
	}
	if err := storage.WriteText(cfg.AnalysisReportPath(), services.FormatReport(analysis)); err != nil {
		logger.Error("Analysis report write failed: %v", err)
	}

	var categories []models.CategoryStat
	if cfg.Enrichment.Enabled {
		categories = enrich(ctx, cfg, logger, metrics, valid)
	}

	report := &storage.Report{
		GeneratedAt: time.Now(),
		RunID:       runID,
		InputFile:   cfg.InputFile,
		Cleaning:    counts,
		Analysis:    analysis,
		Categories:  categories,
		Valid:       valid,
	}
	outputs := []string{cfg.CleanDataPath(), cfg.InvalidDataPath(), cfg.SummaryPath(), cfg.AnalysisReportPath()}

	writers := []struct {
		enabled bool
		path    string
		writer  storage.ReportWriter
	}{
		{true, cfg.JSONReportPath(), storage.JSONWriter{}},
		{cfg.WriteWorkbook, cfg.WorkbookPath(), storage.WorkbookWriter{}},
	}
	for _, w := range writers {
		if !w.enabled {
			continue
		}
		if err := w.writer.WriteReport(w.path, report); err != nil {
			logger.Error("Report write failed: %v", err)
			continue
		}
		outputs = append(outputs, w.path)
	}

	if cfg.WriteMetrics {
		if err := metrics.WriteTextfile(cfg.MetricsPath()); err != nil {
			logger.Error("Metrics write failed: %v", err)
		} else {
			outputs = append(outputs, cfg.MetricsPath())
		}
	}

	fmt.Println("\nKEY FINDINGS:")
	fmt.Printf("Total Sales: %s\n", services.FormatMoney(analysis.Summary.TotalSales))
	if top, ok := analysis.TopRegion(); ok {
		fmt.Printf("Top Region: %s (%s)\n", top.Region, services.FormatMoney(top.TotalSales))
	}
	if top, ok := services.TopCategory(categories); ok {
		fmt.Printf("Top Category: %s (%s)\n", top.Category, services.FormatMoney(top.TotalSales))
	}

	fmt.Println("\nGenerated files:")
	for _, p := range outputs {
		fmt.Printf("  - %s\n", p)
	}
	fmt.Println()

	logger.Info("=== Sales Data Analysis finished ===")
	return 0
}

// cleaningCounts reports totals over the records that parsed. Malformed lines
// never reach the cleaner, so they are left out of TotalParsed.
func cleaningCounts(parsed *salesfile.Result, valid []*models.ValidRecord, invalid []*models.InvalidRecord) storage.CleaningCounts {
	return storage.CleaningCounts{
		TotalParsed:    len(parsed.Records),
		InvalidRemoved: len(invalid),
		ValidKept:      len(valid),
	}
}

func writeRecords(cfg *config.Config, logger *utils.Logger, valid []*models.ValidRecord, invalid []*models.InvalidRecord) {
	validWriter, err := storage.NewCSVWriter(cfg.CleanDataPath(), storage.ValidHeader)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		if err := validWriter.WriteValid(valid); err != nil {
			logger.Error("Cleaned data write failed: %v", err)
		}
		if err := validWriter.Close(); err != nil {
			logger.Error("Cleaned data close failed: %v", err)
		}
		logger.Info("Cleaned data saved to %s", cfg.CleanDataPath())
	}

	invalidWriter, err := storage.NewCSVWriter(cfg.InvalidDataPath(), storage.InvalidHeader)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		return
	}
	if err := invalidWriter.WriteInvalid(invalid); err != nil {
		logger.Error("Invalid records write failed: %v", err)
	}
	if err := invalidWriter.Close(); err != nil {
		logger.Error("Invalid records close failed: %v", err)
	}
	logger.Info("Invalid records saved to %s", cfg.InvalidDataPath())
}

// enrich looks up catalog data and returns the category rollups. It never
// fails the run; lookups that fail just fall back to default info.
func enrich(ctx context.Context, cfg *config.Config, logger *utils.Logger, metrics *utils.RunMetrics, valid []*models.ValidRecord) []models.CategoryStat {
	e := cfg.Enrichment
	client := catalog.NewClient(e.BaseURL, e.Timeout, e.MaxRetries, logger)
	enricher := services.NewEnricher(client, logger, e.MaxConcurrency, e.RateLimitMs)

	enriched, results := enricher.Enrich(ctx, valid)
	for _, r := range results {
		outcome := "found"
		if !r.OK {
			outcome = "failed"
		}
		metrics.CatalogLookups.WithLabelValues(outcome).Inc()
	}

	categories := services.CategoryBreakdown(enriched)
	fmt.Println("\nPRODUCT CATEGORY ANALYSIS:")
	fmt.Println(services.FormatCategories(categories))
	return categories
}

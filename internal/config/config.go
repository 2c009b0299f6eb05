package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Input
	InputBackend string
	InputPath    string

	// Output
	OutputDir   string
	SummaryJSON string
	ReportHTML  string

	// Analysis
	Currency       string
	DetailMerchant string
	TopMerchants   int
	TopAreas       int
	PivotAreas     int

	// Report rendering
	ReportFont string

	// AMQP (optional; empty URL disables notifications)
	AMQPURL          string
	AMQPExchange     string
	AMQPRequestQueue string
	AMQPResultQueue  string

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	cfg := &Config{
		InputBackend: getEnv("INPUT_BACKEND", "csv"),
		InputPath:    getEnv("INPUT_PATH", "./expenses.csv"),

		OutputDir:   getEnv("OUTPUT_DIR", "./expense_analysis"),
		SummaryJSON: getEnv("SUMMARY_JSON", "summary.json"),
		ReportHTML:  getEnv("REPORT_HTML", "report.html"),

		Currency:       getEnv("CURRENCY", "KES"),
		DetailMerchant: getEnv("DETAIL_MERCHANT", "Shell"),
		TopMerchants:   getEnvInt("TOP_MERCHANTS", 10),
		TopAreas:       getEnvInt("TOP_AREAS", 10),
		PivotAreas:     getEnvInt("PIVOT_AREAS", 8),

		ReportFont: getEnv("REPORT_FONT", ""),

		AMQPURL:          getEnv("AMQP_URL", ""),
		AMQPExchange:     getEnv("AMQP_EXCHANGE", "matumizi"),
		AMQPRequestQueue: getEnv("AMQP_REQUEST_QUEUE", "analyze_requests"),
		AMQPResultQueue:  getEnv("AMQP_RESULT_QUEUE", "analysis_done"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),
	}

	return cfg
}

// Validate checks the configuration for a one-shot run and returns every
// problem at once.
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateWorker checks the configuration for the request-driven worker.
// Input paths arrive with each request, so the configured default input file
// does not have to exist at startup; a missing file surfaces when the
// request is read.
func (c *Config) ValidateWorker() error {
	return c.validate(false)
}

func (c *Config) validate(requireInputFile bool) error {
	var errors []string

	validBackends := []string{"csv", "sheets", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.InputBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid input backend '%s': must be one of %v", c.InputBackend, validBackends))
	}

	if c.InputBackend == "csv" {
		if c.InputPath == "" {
			errors = append(errors, "input path cannot be empty when using csv backend")
		} else if requireInputFile {
			if _, err := os.Stat(c.InputPath); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("input file does not exist: %s", c.InputPath))
			}
		}
	}

	if c.InputBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
	}

	if c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty")
	}
	if c.SummaryJSON == "" {
		errors = append(errors, "summary file name cannot be empty")
	}
	if c.ReportHTML == "" {
		errors = append(errors, "report file name cannot be empty")
	}

	if c.Currency == "" {
		errors = append(errors, "currency cannot be empty")
	}
	if c.TopMerchants < 1 {
		errors = append(errors, fmt.Sprintf("invalid top merchants %d: must be at least 1", c.TopMerchants))
	}
	if c.TopAreas < 1 {
		errors = append(errors, fmt.Sprintf("invalid top areas %d: must be at least 1", c.TopAreas))
	}
	if c.PivotAreas < 1 {
		errors = append(errors, fmt.Sprintf("invalid pivot areas %d: must be at least 1", c.PivotAreas))
	}

	if c.ReportFont != "" {
		if _, err := os.Stat(c.ReportFont); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("report font file does not exist: %s", c.ReportFont))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRequestQueue == "" {
			errors = append(errors, "AMQP request queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPResultQueue == "" {
			errors = append(errors, "AMQP result queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SummaryPath is the full path of the summary artifact.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.OutputDir, c.SummaryJSON)
}

// ReportPath is the full path of the report artifact.
func (c *Config) ReportPath() string {
	return filepath.Join(c.OutputDir, c.ReportHTML)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// =============================================================================
// Store Sales Analyzer - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration. Everything has
// a sensible default, so the analyzer runs without any configuration file at
// all; a YAML file can override individual settings.
//
// CONFIGURATION AREAS:
//   1. Column labels  : Header names in the POS export (Japanese by default)
//   2. CSV settings   : Encoding and leading non-data rows of CSV exports
//   3. XLSX settings  : Physical header row of spreadsheet exports
//   4. Output settings: Workbook destination and file naming
//   5. Server settings: Listen address for the HTTP viewer
//   6. Master tables  : Store-code map and product units-per-package map
//
// The two master tables are fixed reference data, loaded once at startup and
// read-only for the life of the process.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// Columns maps logical fields to the header labels used in the export.
	Columns ColumnLabels `yaml:"columns"`

	// CSV contains settings for parsing delimited-text exports.
	CSV CSVSettings `yaml:"csv"`

	// XLSX contains settings for parsing spreadsheet exports.
	XLSX XLSXSettings `yaml:"xlsx"`

	// Output contains settings for the generated workbook artifact.
	Output OutputSettings `yaml:"output"`

	// Server contains settings for the HTTP viewer.
	Server ServerSettings `yaml:"server"`

	// Stores maps the numeric store code embedded in a receipt number to a
	// store name. Codes not present in the map stay unresolved, and rows
	// carrying them drop out of every store-keyed aggregate.
	Stores map[string]string `yaml:"stores"`

	// ProductUnits maps a product name to the number of pieces in one
	// package. Products not present in the map are non-retail line items:
	// they never appear in the product matrix and contribute zero units.
	ProductUnits map[string]int `yaml:"product_units"`
}

// ColumnLabels holds the header labels of the fields the pipeline reads.
// The defaults match the POS system's Japanese export headers.
type ColumnLabels struct {
	// Receipt is the receipt-number column (format "No.<code>-<sequence>").
	Receipt string `yaml:"receipt"`

	// Product is the product-name column.
	Product string `yaml:"product"`

	// Quantity is the line-item quantity column.
	Quantity string `yaml:"quantity"`

	// Total is the receipt-total amount column (string-formatted with
	// thousands separators).
	Total string `yaml:"total"`

	// Timestamp is the sale date-time column. The column is optional in the
	// export; when it is missing, the time-bucket aggregates are skipped.
	Timestamp string `yaml:"timestamp"`
}

// CSVSettings contains settings for parsing CSV exports.
type CSVSettings struct {
	// SkipRows is the number of leading non-data rows before the header row.
	// The POS system emits 2 banner rows before the header.
	SkipRows int `yaml:"skip_rows"`

	// Encoding is the character encoding of the CSV file.
	// Supported values: "cp932" (alias "shift_jis") and "utf-8".
	// The POS system exports CP932.
	Encoding string `yaml:"encoding"`
}

// XLSXSettings contains settings for parsing spreadsheet exports.
type XLSXSettings struct {
	// HeaderRow is the 1-based physical row holding the column headers.
	// The POS system places it on row 4; data starts on the next row.
	HeaderRow int `yaml:"header_row"`
}

// OutputSettings contains settings for the generated workbook.
type OutputSettings struct {
	// Dir is the directory where the CLI writes the workbook.
	Dir string `yaml:"dir"`

	// FilenameFormat is the workbook file name. Placeholders:
	//   {timestamp} - run timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	FilenameFormat string `yaml:"filename_format"`
}

// ServerSettings contains settings for the HTTP viewer.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8780".
	Addr string `yaml:"addr"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// defaultStores returns the 店舗番号→店舗名 master table.
func defaultStores() map[string]string {
	return map[string]string{
		"2": "隼人", "3": "鷹尾", "4": "中町", "5": "三股", "7": "宮崎", "8": "熊本",
		"14": "鹿屋", "15": "吉野", "16": "花山手東", "17": "大根田", "18": "中山",
		"21": "土井", "22": "空港東", "23": "有田", "24": "春日", "25": "長嶺",
	}
}

// defaultProductUnits returns the 商品ごとの個数 master table.
func defaultProductUnits() map[string]int {
	return map[string]int{
		"ぎょうざ２０個": 20, "ぎょうざ３０個": 30, "ぎょうざ４０個": 40, "ぎょうざ５０個": 50,
		"生姜入ぎょうざ３０個": 30,
		"宅配ぎょうざ40個":  40, "宅配ぎょうざ50個": 50,
		"宅配生姜40個餃子":  40, "宅配生姜50個餃子": 50,
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in every unset configuration value.
func applyDefaults(cfg *Config) {
	if cfg.Columns.Receipt == "" {
		cfg.Columns.Receipt = "レシート番号"
	}
	if cfg.Columns.Product == "" {
		cfg.Columns.Product = "商品名"
	}
	if cfg.Columns.Quantity == "" {
		cfg.Columns.Quantity = "数量"
	}
	if cfg.Columns.Total == "" {
		cfg.Columns.Total = "合計"
	}
	if cfg.Columns.Timestamp == "" {
		cfg.Columns.Timestamp = "販売日時"
	}
	if cfg.CSV.SkipRows == 0 {
		cfg.CSV.SkipRows = 2
	}
	if cfg.CSV.Encoding == "" {
		cfg.CSV.Encoding = "cp932"
	}
	if cfg.XLSX.HeaderRow == 0 {
		cfg.XLSX.HeaderRow = 4
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./output"
	}
	if cfg.Output.FilenameFormat == "" {
		cfg.Output.FilenameFormat = "販売分析結果.xlsx"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8780"
	}
	if cfg.Stores == nil {
		cfg.Stores = defaultStores()
	}
	if cfg.ProductUnits == nil {
		cfg.ProductUnits = defaultProductUnits()
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults for any
// unset values and validates the result. An empty path returns the default
// configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// validate checks the configuration for values the pipeline cannot work with.
func validate(cfg *Config) error {
	if cfg.CSV.SkipRows < 0 {
		return fmt.Errorf("csv.skip_rows must not be negative")
	}
	switch cfg.CSV.Encoding {
	case "cp932", "shift_jis", "utf-8":
	default:
		return fmt.Errorf("csv.encoding %q is not supported (use cp932, shift_jis or utf-8)", cfg.CSV.Encoding)
	}
	if cfg.XLSX.HeaderRow < 1 {
		return fmt.Errorf("xlsx.header_row must be at least 1")
	}
	if len(cfg.Stores) == 0 {
		return fmt.Errorf("stores map must not be empty")
	}
	if len(cfg.ProductUnits) == 0 {
		return fmt.Errorf("product_units map must not be empty")
	}
	for name, units := range cfg.ProductUnits {
		if units <= 0 {
			return fmt.Errorf("product_units[%s] must be positive, got %d", name, units)
		}
	}
	return nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

// StoreName resolves a store code to a store name.
// The second return value is false for codes not in the master table.
func (c *Config) StoreName(code string) (string, bool) {
	name, ok := c.Stores[code]
	return name, ok
}

// UnitsPerPackage returns the pieces-per-package multiplier for a product.
// Unrecognized products return 0, which keeps them out of unit totals.
func (c *Config) UnitsPerPackage(product string) int {
	return c.ProductUnits[product]
}

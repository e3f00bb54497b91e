package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "レシート番号", cfg.Columns.Receipt)
	assert.Equal(t, "商品名", cfg.Columns.Product)
	assert.Equal(t, "数量", cfg.Columns.Quantity)
	assert.Equal(t, "合計", cfg.Columns.Total)
	assert.Equal(t, "販売日時", cfg.Columns.Timestamp)

	assert.Equal(t, 2, cfg.CSV.SkipRows)
	assert.Equal(t, "cp932", cfg.CSV.Encoding)
	assert.Equal(t, 4, cfg.XLSX.HeaderRow)

	// The master tables are fixed reference data.
	assert.Len(t, cfg.Stores, 16)
	assert.Len(t, cfg.ProductUnits, 9)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
csv:
  encoding: utf-8
  skip_rows: 1
output:
  dir: /tmp/reports
stores:
  "3": 鷹尾
product_units:
  ぎょうざ２０個: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "utf-8", cfg.CSV.Encoding)
	assert.Equal(t, 1, cfg.CSV.SkipRows)
	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)

	// Overriding a master table replaces it wholesale.
	assert.Len(t, cfg.Stores, 1)
	assert.Len(t, cfg.ProductUnits, 1)

	// Unset areas keep their defaults.
	assert.Equal(t, "レシート番号", cfg.Columns.Receipt)
	assert.Equal(t, 4, cfg.XLSX.HeaderRow)
}

func TestLoadRejectsUnknownEncoding(t *testing.T) {
	path := writeConfig(t, `
csv:
  encoding: ebcdic
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding")
}

func TestLoadRejectsNonPositiveUnits(t *testing.T) {
	path := writeConfig(t, `
product_units:
  ぎょうざ２０個: 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_units")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestStoreName(t *testing.T) {
	cfg := Default()

	name, ok := cfg.StoreName("3")
	require.True(t, ok)
	assert.Equal(t, "鷹尾", name)

	_, ok = cfg.StoreName("99")
	assert.False(t, ok)
}

func TestUnitsPerPackage(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 20, cfg.UnitsPerPackage("ぎょうざ２０個"))
	assert.Equal(t, 40, cfg.UnitsPerPackage("宅配生姜40個餃子"))
	assert.Equal(t, 0, cfg.UnitsPerPackage("餃子のタレ"))
}

// writeConfig drops YAML into a temp file and returns its path.
func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

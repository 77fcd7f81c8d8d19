package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/matsched/pkg/matsched/annotate"
	"github.com/cognicore/matsched/pkg/matsched/breakdown"
	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
)

// CatalogFile is the file form of a breakdown catalog.
type CatalogFile struct {
	Materials []MaterialEntry `yaml:"materials" toml:"materials"`
}

// MaterialEntry is one catalog entry. Family selects which of the shape
// fields are read: ratio-table uses Ratios, sized-price-map uses
// DefaultSize and Sizes, graded-bar-list uses DefaultSize, Bars and
// Accessories, direct-price-list uses Items.
type MaterialEntry struct {
	Key              string                  `yaml:"key" toml:"key"`
	Label            string                  `yaml:"label" toml:"label"`
	Category         string                  `yaml:"category" toml:"category"`
	DefaultUnit      string                  `yaml:"defaultUnit" toml:"defaultUnit"`
	Requirements     []string                `yaml:"requirements" toml:"requirements"`
	PreparationSteps []string                `yaml:"preparationSteps" toml:"preparationSteps"`
	Relationships    []material.Relationship `yaml:"relationships" toml:"relationships"`

	Family      string       `yaml:"family" toml:"family"`
	Ratios      []RatioEntry `yaml:"ratios" toml:"ratios"`
	DefaultSize string       `yaml:"defaultSize" toml:"defaultSize"`
	Sizes       []SizeEntry  `yaml:"sizes" toml:"sizes"`
	Bars        []BarEntry   `yaml:"bars" toml:"bars"`
	Accessories []RatioEntry `yaml:"accessories" toml:"accessories"`
	Items       []RatioEntry `yaml:"items" toml:"items"`
}

type RatioEntry struct {
	Material string  `yaml:"material" toml:"material"`
	Unit     string  `yaml:"unit" toml:"unit"`
	Ratio    float64 `yaml:"ratio" toml:"ratio"`
	Element  string  `yaml:"element" toml:"element"`
	Price    float64 `yaml:"price" toml:"price"`
}

type SizeEntry struct {
	Size   string       `yaml:"size" toml:"size"`
	Match  []string     `yaml:"match" toml:"match"`
	Ratios []RatioEntry `yaml:"ratios" toml:"ratios"`
}

type BarEntry struct {
	Size       string  `yaml:"size" toml:"size"`
	KgPerMeter float64 `yaml:"kgPerMeter" toml:"kgPerMeter"`
	Price      float64 `yaml:"price" toml:"price"`
}

// decodeFile reads path as TOML when it has a .toml extension and as YAML
// otherwise.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// LoadCatalog loads breakdown configs from a YAML or TOML file.
func LoadCatalog(path string) ([]breakdown.Config, error) {
	var file CatalogFile
	if err := decodeFile(path, &file); err != nil {
		return nil, err
	}

	configs := make([]breakdown.Config, 0, len(file.Materials))
	for i, m := range file.Materials {
		cfg, err := m.Config()
		if err != nil {
			return nil, fmt.Errorf("materials[%d]: %w", i, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Config converts the entry into a breakdown config.
func (m MaterialEntry) Config() (breakdown.Config, error) {
	cfg := breakdown.Config{
		Key:              m.Key,
		Label:            m.Label,
		Category:         m.Category,
		DefaultUnit:      m.DefaultUnit,
		Requirements:     m.Requirements,
		PreparationSteps: m.PreparationSteps,
		Relationships:    m.Relationships,
	}
	switch strings.ToLower(strings.TrimSpace(m.Family)) {
	case "", "ratio-table":
		cfg.Family = breakdown.RatioTable{Materials: ratios(m.Ratios)}
	case "sized-price-map":
		sizes := make([]breakdown.SizedEntry, len(m.Sizes))
		for i, s := range m.Sizes {
			sizes[i] = breakdown.SizedEntry{Size: s.Size, Match: s.Match, Materials: ratios(s.Ratios)}
		}
		cfg.Family = breakdown.SizedPriceMap{DefaultSize: m.DefaultSize, Sizes: sizes}
	case "graded-bar-list":
		bars := make([]breakdown.BarGrade, len(m.Bars))
		for i, b := range m.Bars {
			bars[i] = breakdown.BarGrade{Size: b.Size, KgPerMeter: b.KgPerMeter, Price: b.Price}
		}
		cfg.Family = breakdown.GradedBarList{DefaultSize: m.DefaultSize, Bars: bars, Accessories: ratios(m.Accessories)}
	case "direct-price-list":
		items := make([]breakdown.PricedItem, len(m.Items))
		for i, it := range m.Items {
			items[i] = breakdown.PricedItem{Material: it.Material, Unit: it.Unit, Ratio: it.Ratio, Price: it.Price}
		}
		cfg.Family = breakdown.DirectPriceList{Items: items}
	default:
		return breakdown.Config{}, fmt.Errorf("%w: %s: unknown family %q", internalerr.ErrInvalidConfig, m.Key, m.Family)
	}
	return cfg, nil
}

func ratios(entries []RatioEntry) []breakdown.Ratio {
	out := make([]breakdown.Ratio, len(entries))
	for i, e := range entries {
		out[i] = breakdown.Ratio{Material: e.Material, Unit: e.Unit, Ratio: e.Ratio, Element: e.Element, Price: e.Price}
	}
	return out
}

// DefaultsFile is the file form of kind-level annotation defaults.
type DefaultsFile struct {
	Kinds map[string]annotate.Properties `yaml:"kinds" toml:"kinds"`
}

// LoadDefaults loads kind-level requirements and preparation steps. Every
// key must be a known material kind.
func LoadDefaults(path string) (map[material.Kind]annotate.Properties, error) {
	var file DefaultsFile
	if err := decodeFile(path, &file); err != nil {
		return nil, err
	}

	out := make(map[material.Kind]annotate.Properties, len(file.Kinds))
	for name, props := range file.Kinds {
		kind, err := material.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: kinds: %v", internalerr.ErrInvalidConfig, err)
		}
		out[kind] = props
	}
	return out, nil
}

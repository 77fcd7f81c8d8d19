// Package breakdown expands composite line items into the elementary
// materials they consume, using a static catalog of per-family ratios.
package breakdown

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
)

// Config describes one breakdown family in the catalog.
type Config struct {
	Key              string
	Label            string
	Category         string
	DefaultUnit      string
	Requirements     []string
	PreparationSteps []string
	Relationships    []material.Relationship
	Family           Family
}

// Catalog maps lower-case configuration keys to breakdown configs. A
// Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	entries map[string]Config
}

// NormalizeKey derives a catalog key from a free-text category.
func NormalizeKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// NewCatalog builds a catalog. Later configs replace earlier ones with the
// same key.
func NewCatalog(configs ...Config) *Catalog {
	c := &Catalog{entries: make(map[string]Config, len(configs))}
	for _, cfg := range configs {
		cfg.Key = NormalizeKey(cfg.Key)
		c.entries[cfg.Key] = cfg
	}
	return c
}

// With returns a new catalog with overrides applied on top of c.
func (c *Catalog) With(overrides ...Config) *Catalog {
	all := make([]Config, 0, len(c.entries)+len(overrides))
	for _, k := range c.Keys() {
		all = append(all, c.entries[k])
	}
	all = append(all, overrides...)
	return NewCatalog(all...)
}

// Lookup finds the config for a category, case-insensitively.
func (c *Catalog) Lookup(category string) (Config, bool) {
	if c == nil {
		return Config{}, false
	}
	cfg, ok := c.entries[NormalizeKey(category)]
	return cfg, ok
}

// Keys returns the sorted catalog keys.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

func validRatio(r float64) bool {
	return !math.IsNaN(r) && !math.IsInf(r, 0) && r > 0
}

// Validate checks every entry for completeness and positive ratios.
func (c *Catalog) Validate() []error {
	var errs []error
	for _, key := range c.Keys() {
		errs = append(errs, validateConfig(c.entries[key])...)
	}
	return errs
}

func validateConfig(cfg Config) []error {
	var errs []error
	fail := func(field, msg string) {
		errs = append(errs, fmt.Errorf("%w: %s: %s: %s", internalerr.ErrInvalidConfig, cfg.Key, field, msg))
	}
	if cfg.Key == "" {
		fail("key", "material key is required")
	}
	if cfg.Label == "" {
		fail("label", "material label is required")
	}
	if cfg.Category == "" {
		fail("category", "material category is required")
	}
	if cfg.DefaultUnit == "" {
		fail("defaultUnit", "default unit is required")
	}
	for i, rel := range cfg.Relationships {
		if rel.Material == "" || !rel.Type.Valid() || rel.Description == "" {
			fail(fmt.Sprintf("relationships[%d]", i), "incomplete relationship definition")
		}
	}

	checkRatios := func(prefix string, rs []Ratio) {
		for _, r := range rs {
			if r.Material == "" {
				fail(prefix, "ratio without material name")
			}
			if !validRatio(r.Ratio) {
				fail(prefix+"."+r.Material, "ratio must be a positive number")
			}
		}
	}
	switch f := cfg.Family.(type) {
	case RatioTable:
		if len(f.Materials) == 0 {
			fail("ratios", "at least one ratio must be defined")
		}
		checkRatios("ratios", f.Materials)
	case SizedPriceMap:
		if len(f.Sizes) == 0 {
			fail("sizes", "at least one size must be defined")
		}
		for _, s := range f.Sizes {
			if len(s.Materials) == 0 {
				fail("sizes."+s.Size, "at least one ratio must be defined")
			}
			checkRatios("sizes."+s.Size, s.Materials)
		}
	case GradedBarList:
		if len(f.Bars) == 0 {
			fail("bars", "at least one bar grade must be defined")
		}
		for _, b := range f.Bars {
			if !validRatio(b.KgPerMeter) {
				fail("bars."+b.Size, "kg per metre must be a positive number")
			}
		}
		checkRatios("accessories", f.Accessories)
	case DirectPriceList:
		if len(f.Items) == 0 {
			fail("items", "at least one item must be defined")
		}
		for _, it := range f.Items {
			if !validRatio(it.Ratio) {
				fail("items."+it.Material, "ratio must be a positive number")
			}
		}
	case nil:
		fail("family", "breakdown family is required")
	default:
		fail("family", fmt.Sprintf("unsupported family %T", f))
	}
	return errs
}

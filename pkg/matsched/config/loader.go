package config

import (
	"errors"
	"fmt"

	"github.com/cognicore/matsched/pkg/matsched/annotate"
	"github.com/cognicore/matsched/pkg/matsched/breakdown"
	"github.com/cognicore/matsched/pkg/matsched/material"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	CatalogPath  string
	DefaultsPath string
}

// Components holds the engine configuration built from files and built-ins.
type Components struct {
	Catalog  *breakdown.Catalog
	Defaults map[material.Kind]annotate.Properties
}

// Load reads the configured files. Missing paths keep the built-in
// catalog and defaults; file entries replace built-ins with the same key.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Catalog: breakdown.DefaultCatalog()}

	if l.CatalogPath != "" {
		configs, err := LoadCatalog(l.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		comp.Catalog = comp.Catalog.With(configs...)
		if errs := comp.Catalog.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("load catalog: %w", errors.Join(errs...))
		}
	}

	if l.DefaultsPath != "" {
		overrides, err := LoadDefaults(l.DefaultsPath)
		if err != nil {
			return nil, fmt.Errorf("load defaults: %w", err)
		}
		comp.Defaults = annotate.WithOverrides(overrides)
	} else {
		comp.Defaults = annotate.DefaultProperties()
	}

	return comp, nil
}

package pagesift

import (
	"github.com/pagesift/pagesift/figures"
	"github.com/pagesift/pagesift/tables"
)

// ExtractOptions holds configuration for the extraction pipelines.
type ExtractOptions struct {
	// Page selection for table and figure extraction (1-indexed).
	// The citation pass always covers the whole document: the global
	// index invariant requires every page in order.
	pages []int

	// Table detection tolerances and gate thresholds
	tableConfig tables.Config

	// Figure acceptance thresholds
	filterConfig figures.FilterConfig
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:        nil, // nil means all pages
		tableConfig:  tables.DefaultConfig(),
		filterConfig: figures.DefaultFilterConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		tableConfig:  o.tableConfig,
		filterConfig: o.filterConfig,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

package models

import "regexp"

// CategoryConfig represents one category in the keyword configuration file.
// Order matters: keyword scoring ties resolve to the earliest category.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// VendorMapRow mirrors one line of the vendor_map.csv file.
type VendorMapRow struct {
	Vendor     string `csv:"vendor"`
	Category   string `csv:"category"`
	AliasRegex string `csv:"alias_regex"`
}

// VendorRule is a compiled vendor-map entry. Rules are checked in file order
// and the first match wins over every keyword heuristic.
type VendorRule struct {
	Pattern  *regexp.Regexp
	Category string
	Vendor   string
}

// Package catalog holds the static catalog of EDI transaction types offered
// by the onboarding form, grouped by industry. The catalog is configuration
// data embedded at build time, not logic.
package catalog

import (
	_ "embed"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Category is one industry group of transaction types.
type Category struct {
	Label   string   `yaml:"label" json:"label"`
	Options []string `yaml:"options" json:"options"`
}

type document struct {
	Categories []Category `yaml:"categories"`
}

var (
	once       sync.Once
	categories []Category
	loadErr    error
)

func load() {
	var doc document
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		loadErr = err
		return
	}
	categories = doc.Categories
}

// Categories returns the transaction type catalog in display order.
func Categories() ([]Category, error) {
	once.Do(load)
	return categories, loadErr
}

// Contains reports whether typeCode is one of the catalog's transaction codes.
func Contains(typeCode string) bool {
	cats, err := Categories()
	if err != nil {
		return false
	}
	for _, c := range cats {
		for _, opt := range c.Options {
			if opt == typeCode {
				return true
			}
		}
	}
	return false
}

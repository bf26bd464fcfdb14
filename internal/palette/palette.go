// Package palette holds the static clothing color recommendations for each
// skin tone tier.
package palette

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/andresmejia3/tonematch/internal/tone"
	"gopkg.in/yaml.v3"
)

//go:embed palette.yaml
var paletteYAML []byte

const (
	BestCount  = 5
	AvoidCount = 3
)

var ErrInvalidTable = errors.New("invalid recommendation table")

// Recommendation is the ordered pair of color lists for one tier.
type Recommendation struct {
	Best  []string `yaml:"best"`
	Avoid []string `yaml:"avoid"`
}

type document struct {
	Tiers map[string]Recommendation `yaml:"tiers"`
}

// Table is an immutable tier -> Recommendation mapping. Build it with Parse
// or Default; the zero value answers every lookup with empty lists.
type Table struct {
	entries map[tone.Tier]Recommendation
}

// Parse decodes a YAML table and checks that every tier is present with the
// expected number of entries.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	entries := make(map[tone.Tier]Recommendation, len(doc.Tiers))
	for name, rec := range doc.Tiers {
		tier := tone.Tier(name)
		if !tier.Valid() {
			return nil, fmt.Errorf("%w: unknown tier %q", ErrInvalidTable, name)
		}
		if len(rec.Best) != BestCount {
			return nil, fmt.Errorf("%w: tier %s has %d best colors, want %d", ErrInvalidTable, name, len(rec.Best), BestCount)
		}
		if len(rec.Avoid) != AvoidCount {
			return nil, fmt.Errorf("%w: tier %s has %d colors to avoid, want %d", ErrInvalidTable, name, len(rec.Avoid), AvoidCount)
		}
		entries[tier] = rec
	}

	for _, tier := range tone.Tiers() {
		if _, ok := entries[tier]; !ok {
			return nil, fmt.Errorf("%w: missing tier %s", ErrInvalidTable, tier)
		}
	}

	return &Table{entries: entries}, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table, parsed on first use.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(paletteYAML)
		if err != nil {
			panic("failed to parse embedded palette.yaml: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

// Lookup returns copies of the Best and Avoid lists for tier. Unknown tiers
// get two empty lists.
func (t *Table) Lookup(tier string) Recommendation {
	if t == nil {
		return Recommendation{Best: []string{}, Avoid: []string{}}
	}
	rec, ok := t.entries[tone.Tier(tier)]
	if !ok {
		return Recommendation{Best: []string{}, Avoid: []string{}}
	}
	return Recommendation{
		Best:  append([]string(nil), rec.Best...),
		Avoid: append([]string(nil), rec.Avoid...),
	}
}

// Top returns at most n leading entries of list.
func Top(list []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(list) < n {
		n = len(list)
	}
	return list[:n]
}

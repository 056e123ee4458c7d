package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

// PriceTier is one entry of the tier price table.
type PriceTier struct {
	Tier  int             `yaml:"tier" json:"tier"`
	Label string          `yaml:"label" json:"label"`
	Price decimal.Decimal `yaml:"-" json:"price"`
}

type priceTierYAML struct {
	Tier  int       `yaml:"tier"`
	Label string    `yaml:"label"`
	Price yaml.Node `yaml:"price"`
}

type priceFile struct {
	Tiers []priceTierYAML `yaml:"tiers"`
}

// DefaultPriceTiers is used when no PRICE_FILE is configured.
func DefaultPriceTiers() []PriceTier {
	return []PriceTier{
		{Tier: 1, Label: "Premium", Price: decimal.NewFromInt(150)},
		{Tier: 2, Label: "Standard", Price: decimal.NewFromInt(100)},
		{Tier: 3, Label: "Economy", Price: decimal.NewFromInt(75)},
	}
}

// LoadPriceTiers reads a YAML tier table:
//
//	tiers:
//	  - tier: 1
//	    label: Premium
//	    price: 150.00
//
// An empty path returns DefaultPriceTiers.  Tiers are returned sorted.
func LoadPriceTiers(path string) ([]PriceTier, error) {
	if path == "" {
		return DefaultPriceTiers(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading price file: %w", err)
	}
	return ParsePriceTiers(data)
}

// ParsePriceTiers parses the YAML form accepted by LoadPriceTiers.
func ParsePriceTiers(data []byte) ([]PriceTier, error) {
	var f priceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing price YAML: %w", err)
	}
	seen := make(map[int]bool, len(f.Tiers))
	out := make([]PriceTier, 0, len(f.Tiers))
	for _, t := range f.Tiers {
		if seen[t.Tier] {
			return nil, fmt.Errorf("duplicate price tier %d", t.Tier)
		}
		seen[t.Tier] = true
		price, err := decimal.NewFromString(t.Price.Value)
		if err != nil {
			return nil, fmt.Errorf("price tier %d: invalid price %q", t.Tier, t.Price.Value)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("price tier %d: negative price", t.Tier)
		}
		out = append(out, PriceTier{Tier: t.Tier, Label: t.Label, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out, nil
}

// PriceTable converts tiers into the lookup table the normalizer closes over.
func PriceTable(tiers []PriceTier) seatmap.PriceTable {
	t := make(seatmap.PriceTable, len(tiers))
	for _, p := range tiers {
		t[p.Tier] = p.Price
	}
	return t
}

package memory

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	aggregation "commerce-views/internal/aggregation/domain"
)

// seedRecord is the yaml form of a fixture record. Prices are yaml strings
// so they survive the trip into decimal without float rounding.
type seedRecord struct {
	CustomerID   int64  `yaml:"customer_id"`
	CustomerName string `yaml:"customer_name"`
	ProductName  string `yaml:"product_name"`
	Quantity     int64  `yaml:"quantity"`
	UnitPrice    string `yaml:"unit_price"`
}

type seedFile struct {
	Invoicing []seedRecord `yaml:"invoicing"`
	Shipment  []seedRecord `yaml:"shipment"`
}

// LoadSeedFile reads fixture seeds for both resource groups from a yaml file.
func LoadSeedFile(path string) (invoicing, shipment []aggregation.FixtureOrder, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, err
	}
	invoicing, err = buildSeed(file.Invoicing)
	if err != nil {
		return nil, nil, fmt.Errorf("seed invoicing: %w", err)
	}
	shipment, err = buildSeed(file.Shipment)
	if err != nil {
		return nil, nil, fmt.Errorf("seed shipment: %w", err)
	}
	return invoicing, shipment, nil
}

func buildSeed(records []seedRecord) ([]aggregation.FixtureOrder, error) {
	out := make([]aggregation.FixtureOrder, 0, len(records))
	for i, rec := range records {
		price := decimal.Zero
		if rec.UnitPrice != "" {
			parsed, err := decimal.NewFromString(rec.UnitPrice)
			if err != nil {
				return nil, fmt.Errorf("record %d: unit_price %q: %w", i+1, rec.UnitPrice, err)
			}
			price = parsed
		}
		order := aggregation.FixtureOrder{
			ID:           int64(i + 1),
			CustomerID:   rec.CustomerID,
			CustomerName: rec.CustomerName,
			ProductName:  rec.ProductName,
			Quantity:     rec.Quantity,
			UnitPrice:    price,
		}
		if err := order.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, order)
	}
	return out, nil
}

// DefaultInvoicingSeed returns the built-in demo data for the monetary view.
func DefaultInvoicingSeed() []aggregation.FixtureOrder {
	return []aggregation.FixtureOrder{
		{ID: 1, CustomerID: 1, CustomerName: "Maria Anders", ProductName: "Notebook", Quantity: 2, UnitPrice: decimal.RequireFromString("899.90")},
		{ID: 2, CustomerID: 2, CustomerName: "Thomas Hardy", ProductName: "Monitor", Quantity: 1, UnitPrice: decimal.RequireFromString("249.00")},
		{ID: 3, CustomerID: 1, CustomerName: "Maria Anders", ProductName: "Dockingstation", Quantity: 1, UnitPrice: decimal.RequireFromString("119.50")},
	}
}

// DefaultShipmentSeed returns the built-in demo data for the quantity view.
func DefaultShipmentSeed() []aggregation.FixtureOrder {
	return []aggregation.FixtureOrder{
		{ID: 1, CustomerID: 1, CustomerName: "Maria Anders", ProductName: "Notebook", Quantity: 2},
		{ID: 2, CustomerID: 2, CustomerName: "Thomas Hardy", ProductName: "Monitor", Quantity: 5},
		{ID: 3, CustomerID: 3, CustomerName: "Hanna Moos", ProductName: "Keyboard", Quantity: 1},
	}
}

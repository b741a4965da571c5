package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadSeedFile(t *testing.T) {
	content := `invoicing:
  - customer_id: 1
    customer_name: Alice
    product_name: Widget
    quantity: 2
    unit_price: "9.50"
shipment:
  - customer_id: 2
    customer_name: Bob
    product_name: Crate
    quantity: 4
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	invoicing, shipment, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if len(invoicing) != 1 || len(shipment) != 1 {
		t.Fatalf("unexpected seed sizes: %d/%d", len(invoicing), len(shipment))
	}
	if invoicing[0].ID != 1 || !invoicing[0].UnitPrice.Equal(decimal.RequireFromString("9.50")) {
		t.Fatalf("unexpected invoicing seed: %+v", invoicing[0])
	}
	if shipment[0].CustomerName != "Bob" || shipment[0].Quantity != 4 {
		t.Fatalf("unexpected shipment seed: %+v", shipment[0])
	}
}

func TestLoadSeedFileRejectsBadPrice(t *testing.T) {
	content := `invoicing:
  - customer_id: 1
    customer_name: Alice
    quantity: 1
    unit_price: "not-a-number"
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, _, err := LoadSeedFile(path); err == nil {
		t.Fatalf("expected error for invalid unit_price")
	}
}

func TestDefaultSeedsValidate(t *testing.T) {
	for _, rec := range DefaultInvoicingSeed() {
		if err := rec.Validate(); err != nil {
			t.Fatalf("invoicing seed %d invalid: %v", rec.ID, err)
		}
	}
	for _, rec := range DefaultShipmentSeed() {
		if err := rec.Validate(); err != nil {
			t.Fatalf("shipment seed %d invalid: %v", rec.ID, err)
		}
	}
}

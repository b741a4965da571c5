package aggregation

import "github.com/shopspring/decimal"

// Order is a normalized order record as served by the order collaborator.
type Order struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	Quantity   int64
}

// Customer is a customer record as served by the customer collaborator.
type Customer struct {
	ID   int64
	Name string
}

// Product is a catalog record as served by the catalog collaborator.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// FixtureOrder is the denormalized record held by the fixture store. It
// carries the customer and product fields inline so the demo variant needs
// no collaborators.
type FixtureOrder struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	ProductName  string
	Quantity     int64
	UnitPrice    decimal.Decimal
}

// Amount returns the monetary value of the fixture record.
func (f FixtureOrder) Amount() decimal.Decimal {
	return f.UnitPrice.Mul(decimal.NewFromInt(f.Quantity))
}

// Validate checks fixture record invariants before it enters the store.
func (f FixtureOrder) Validate() error {
	if f.CustomerID <= 0 {
		return ErrInvalidCustomerID
	}
	if f.CustomerName == "" {
		return ErrEmptyCustomerName
	}
	if f.Quantity < 0 {
		return ErrNegativeValue
	}
	if f.UnitPrice.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

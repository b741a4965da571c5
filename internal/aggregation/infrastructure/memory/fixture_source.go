package memory

import (
	"context"
	"errors"

	aggregation "commerce-views/internal/aggregation/domain"
)

// FixtureSource adapts an OrderStore to the record source contract by
// deriving the three collections from the denormalized fixture records:
// every record yields one order, its first-seen customer name and a
// synthetic product keyed by the record id. Derived orders always join.
type FixtureSource struct {
	store *OrderStore
}

// NewFixtureSource constructs a source over a store.
func NewFixtureSource(store *OrderStore) (*FixtureSource, error) {
	if store == nil {
		return nil, errors.New("fixture source: nil store")
	}
	return &FixtureSource{store: store}, nil
}

// Orders derives normalized orders from the fixture records.
func (f *FixtureSource) Orders(ctx context.Context) ([]aggregation.Order, error) {
	_ = ctx
	records := f.store.Snapshot()
	orders := make([]aggregation.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, aggregation.Order{
			ID:         rec.ID,
			CustomerID: rec.CustomerID,
			ProductID:  rec.ID,
			Quantity:   rec.Quantity,
		})
	}
	return orders, nil
}

// Customers derives one customer per distinct customer id; the first
// recorded name wins.
func (f *FixtureSource) Customers(ctx context.Context) ([]aggregation.Customer, error) {
	_ = ctx
	records := f.store.Snapshot()
	seen := make(map[int64]bool, len(records))
	customers := make([]aggregation.Customer, 0, len(records))
	for _, rec := range records {
		if seen[rec.CustomerID] {
			continue
		}
		seen[rec.CustomerID] = true
		customers = append(customers, aggregation.Customer{ID: rec.CustomerID, Name: rec.CustomerName})
	}
	return customers, nil
}

// Products derives one product per record, identified by the record id.
func (f *FixtureSource) Products(ctx context.Context) ([]aggregation.Product, error) {
	_ = ctx
	records := f.store.Snapshot()
	products := make([]aggregation.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, aggregation.Product{
			ID:    rec.ID,
			Name:  rec.ProductName,
			Price: rec.UnitPrice,
		})
	}
	return products, nil
}

package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	aggregation "commerce-views/internal/aggregation/domain"
)

// Source fetches the three collections from the configured collaborators.
// Each call is one GET with a bounded timeout; any transport failure,
// non-200 status or undecodable body surfaces as an error that callers
// degrade to an empty collection.
type Source struct {
	orderURL    string
	customerURL string
	catalogURL  string
	client      *http.Client
}

// NewSource constructs a remote source.
func NewSource(orderURL, customerURL, catalogURL string, timeout time.Duration) (*Source, error) {
	if orderURL == "" || customerURL == "" || catalogURL == "" {
		return nil, errors.New("remote source: empty upstream url")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Source{
		orderURL:    orderURL,
		customerURL: customerURL,
		catalogURL:  catalogURL,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

type orderRecord struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int64 `json:"quantity"`
}

type customerRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productRecord struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Orders fetches all orders from the order collaborator.
func (s *Source) Orders(ctx context.Context) ([]aggregation.Order, error) {
	var records []orderRecord
	if err := s.getJSON(ctx, s.orderURL, &records); err != nil {
		return nil, err
	}
	orders := make([]aggregation.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, aggregation.Order(rec))
	}
	return orders, nil
}

// Customers fetches all customers from the customer collaborator.
func (s *Source) Customers(ctx context.Context) ([]aggregation.Customer, error) {
	var records []customerRecord
	if err := s.getJSON(ctx, s.customerURL, &records); err != nil {
		return nil, err
	}
	customers := make([]aggregation.Customer, 0, len(records))
	for _, rec := range records {
		customers = append(customers, aggregation.Customer(rec))
	}
	return customers, nil
}

// Products fetches the catalog from the catalog collaborator.
func (s *Source) Products(ctx context.Context) ([]aggregation.Product, error) {
	var records []productRecord
	if err := s.getJSON(ctx, s.catalogURL, &records); err != nil {
		return nil, err
	}
	products := make([]aggregation.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, aggregation.Product(rec))
	}
	return products, nil
}

func (s *Source) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote source: %s returned http %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

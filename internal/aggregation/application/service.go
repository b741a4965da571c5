package application

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	aggregation "commerce-views/internal/aggregation/domain"
)

// RecordSource supplies the three unordered collections for one request.
type RecordSource interface {
	Orders(ctx context.Context) ([]aggregation.Order, error)
	Customers(ctx context.Context) ([]aggregation.Customer, error)
	Products(ctx context.Context) ([]aggregation.Product, error)
}

// ViewService runs the aggregation pipeline for one resource group: fetch
// the three collections, build the reference index, fold the orders.
type ViewService struct {
	source RecordSource
	mode   aggregation.Mode
	logger *log.Logger
}

// NewViewService constructs a service.
func NewViewService(source RecordSource, mode aggregation.Mode, logger *log.Logger) (*ViewService, error) {
	if source == nil {
		return nil, errors.New("view service: nil source")
	}
	if mode != aggregation.ModeMonetary && mode != aggregation.ModeQuantity {
		return nil, errors.New("view service: unknown mode")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ViewService{source: source, mode: mode, logger: logger}, nil
}

// Mode returns the accounting mode of this view.
func (s *ViewService) Mode() aggregation.Mode { return s.mode }

// Build fetches and aggregates. The three fetches run concurrently; an
// unavailable collaborator degrades to an empty collection with a log line,
// so a partial outage shrinks the result instead of failing the request.
func (s *ViewService) Build(ctx context.Context) *aggregation.Result {
	var (
		orders    []aggregation.Order
		customers []aggregation.Customer
		products  []aggregation.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := s.source.Orders(gctx)
		if err != nil {
			s.logger.Printf("orders upstream degraded: %v", err)
			return nil
		}
		orders = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := s.source.Customers(gctx)
		if err != nil {
			s.logger.Printf("customers upstream degraded: %v", err)
			return nil
		}
		customers = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := s.source.Products(gctx)
		if err != nil {
			s.logger.Printf("catalog upstream degraded: %v", err)
			return nil
		}
		products = fetched
		return nil
	})
	_ = g.Wait()

	idx := aggregation.NewIndex(customers, products)
	return aggregation.Aggregate(orders, idx, s.mode)
}

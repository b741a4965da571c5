package aggregation

import "github.com/shopspring/decimal"

// Mode selects the accounting flavor of a view.
type Mode string

const (
	// ModeMonetary accumulates quantity times unit price per customer.
	ModeMonetary Mode = "monetary"
	// ModeQuantity accumulates shipped quantities per customer.
	ModeQuantity Mode = "quantity"
)

// LineItem is one contributing order inside a Summary. UnitPrice and
// LineTotal are meaningful in monetary mode only.
type LineItem struct {
	OrderID     int64
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Summary is the per-customer accumulation. Total holds money in monetary
// mode and a plain count in quantity mode; accumulation is exact decimal
// arithmetic, display rounding happens at the presentation boundary.
type Summary struct {
	CustomerID   int64
	CustomerName string
	Total        decimal.Decimal
	Entries      []LineItem
}

// Result is the outcome of one aggregation pass. Summaries are keyed by
// customer id; iteration order is first-seen-customer order, which callers
// must preserve end to end.
type Result struct {
	mode  Mode
	order []int64
	byID  map[int64]*Summary
}

// Aggregate folds orders into per-customer summaries. Orders whose customer
// or product id does not resolve in the index are dropped without error;
// upstream unavailability therefore only shrinks the result, never fails it.
// Duplicate order ids are folded independently.
func Aggregate(orders []Order, idx Index, mode Mode) *Result {
	res := &Result{mode: mode, byID: make(map[int64]*Summary)}
	for _, o := range orders {
		customer, ok := idx.Customer(o.CustomerID)
		if !ok {
			continue
		}
		product, ok := idx.Product(o.ProductID)
		if !ok {
			continue
		}

		line := LineItem{OrderID: o.ID, ProductName: product.Name, Quantity: o.Quantity}
		var add decimal.Decimal
		switch mode {
		case ModeQuantity:
			add = decimal.NewFromInt(o.Quantity)
		default:
			line.UnitPrice = product.Price
			line.LineTotal = product.Price.Mul(decimal.NewFromInt(o.Quantity))
			add = line.LineTotal
		}

		summary, seen := res.byID[o.CustomerID]
		if !seen {
			summary = &Summary{CustomerID: o.CustomerID, CustomerName: customer.Name}
			res.byID[o.CustomerID] = summary
			res.order = append(res.order, o.CustomerID)
		}
		summary.Total = summary.Total.Add(add)
		summary.Entries = append(summary.Entries, line)
	}
	return res
}

// Mode returns the accounting mode the result was built under.
func (r *Result) Mode() Mode { return r.mode }

// Len returns the number of distinct customers in the result.
func (r *Result) Len() int { return len(r.order) }

// Summaries returns detached copies in first-seen-customer order.
func (r *Result) Summaries() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, id := range r.order {
		s := r.byID[id]
		copied := *s
		copied.Entries = append([]LineItem(nil), s.Entries...)
		out = append(out, copied)
	}
	return out
}

// GrandTotal sums all per-customer totals for the tabular footer row.
func (r *Result) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, id := range r.order {
		total = total.Add(r.byID[id].Total)
	}
	return total
}

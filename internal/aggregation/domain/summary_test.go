package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func price(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse price %q: %v", value, err)
	}
	return d
}

func TestAggregateMonetarySingleOrder(t *testing.T) {
	orders := []Order{{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2}}
	customers := []Customer{{ID: 1, Name: "A"}}
	products := []Product{{ID: 1, Name: "Widget", Price: price(t, "10")}}

	result := Aggregate(orders, NewIndex(customers, products), ModeMonetary)
	if result.Len() != 1 {
		t.Fatalf("expected 1 summary, got %d", result.Len())
	}
	summary := result.Summaries()[0]
	if summary.CustomerID != 1 || summary.CustomerName != "A" {
		t.Fatalf("unexpected summary identity: %+v", summary)
	}
	if !summary.Total.Equal(price(t, "20")) {
		t.Fatalf("expected total 20, got %s", summary.Total)
	}
	if len(summary.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(summary.Entries))
	}
	entry := summary.Entries[0]
	if entry.OrderID != 1 || entry.ProductName != "Widget" || entry.Quantity != 2 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !entry.LineTotal.Equal(price(t, "20")) {
		t.Fatalf("expected line total 20, got %s", entry.LineTotal)
	}
}

func TestAggregateDropsDanglingReferences(t *testing.T) {
	orders := []Order{
		{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2},
		{ID: 2, CustomerID: 99, ProductID: 1, Quantity: 5},
		{ID: 3, CustomerID: 1, ProductID: 99, Quantity: 5},
	}
	customers := []Customer{{ID: 1, Name: "A"}}
	products := []Product{{ID: 1, Name: "Widget", Price: price(t, "10")}}

	result := Aggregate(orders, NewIndex(customers, products), ModeMonetary)
	if result.Len() != 1 {
		t.Fatalf("expected 1 summary, got %d", result.Len())
	}
	summary := result.Summaries()[0]
	if !summary.Total.Equal(price(t, "20")) {
		t.Fatalf("dangling orders leaked into total: %s", summary.Total)
	}
	for _, entry := range summary.Entries {
		if entry.OrderID != 1 {
			t.Fatalf("dangling order %d appeared in entries", entry.OrderID)
		}
	}
}

func TestAggregateEmptyCatalogDropsAllMonetaryOrders(t *testing.T) {
	orders := []Order{{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2}}
	customers := []Customer{{ID: 1, Name: "A"}}

	result := Aggregate(orders, NewIndex(customers, nil), ModeMonetary)
	if result.Len() != 0 {
		t.Fatalf("expected empty result, got %d summaries", result.Len())
	}
	if !result.GrandTotal().IsZero() {
		t.Fatalf("expected zero grand total, got %s", result.GrandTotal())
	}
}

func TestAggregateQuantityMode(t *testing.T) {
	orders := []Order{
		{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2},
		{ID: 2, CustomerID: 1, ProductID: 2, Quantity: 3},
		{ID: 3, CustomerID: 2, ProductID: 1, Quantity: 7},
	}
	customers := []Customer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	products := []Product{{ID: 1, Name: "Widget"}, {ID: 2, Name: "Gadget"}}

	result := Aggregate(orders, NewIndex(customers, products), ModeQuantity)
	summaries := result.Summaries()
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if !summaries[0].Total.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected quantity 5 for first customer, got %s", summaries[0].Total)
	}
	if !summaries[1].Total.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expected quantity 7 for second customer, got %s", summaries[1].Total)
	}
	if !result.GrandTotal().Equal(decimal.NewFromInt(12)) {
		t.Fatalf("expected grand total 12, got %s", result.GrandTotal())
	}
}

func TestAggregateDuplicateOrderIDsFoldIndependently(t *testing.T) {
	orders := []Order{
		{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2},
		{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2},
	}
	customers := []Customer{{ID: 1, Name: "A"}}
	products := []Product{{ID: 1, Name: "Widget", Price: price(t, "10")}}

	result := Aggregate(orders, NewIndex(customers, products), ModeMonetary)
	summary := result.Summaries()[0]
	if !summary.Total.Equal(price(t, "40")) {
		t.Fatalf("expected both occurrences folded, got %s", summary.Total)
	}
	if len(summary.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(summary.Entries))
	}
}

func TestAggregatePreservesFirstSeenCustomerOrder(t *testing.T) {
	orders := []Order{
		{ID: 1, CustomerID: 2, ProductID: 1, Quantity: 1},
		{ID: 2, CustomerID: 1, ProductID: 1, Quantity: 1},
		{ID: 3, CustomerID: 2, ProductID: 1, Quantity: 1},
	}
	customers := []Customer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	products := []Product{{ID: 1, Name: "Widget", Price: price(t, "1")}}

	result := Aggregate(orders, NewIndex(customers, products), ModeMonetary)
	summaries := result.Summaries()
	if summaries[0].CustomerID != 2 || summaries[1].CustomerID != 1 {
		t.Fatalf("expected first-seen order [2 1], got [%d %d]", summaries[0].CustomerID, summaries[1].CustomerID)
	}
}

func TestAggregateNoAccumulationDrift(t *testing.T) {
	orders := make([]Order, 0, 1000)
	for i := 0; i < 1000; i++ {
		orders = append(orders, Order{ID: int64(i + 1), CustomerID: 1, ProductID: 1, Quantity: 1})
	}
	customers := []Customer{{ID: 1, Name: "A"}}
	products := []Product{{ID: 1, Name: "Widget", Price: price(t, "0.1")}}

	result := Aggregate(orders, NewIndex(customers, products), ModeMonetary)
	if !result.Summaries()[0].Total.Equal(price(t, "100")) {
		t.Fatalf("expected exactly 100 after 1000 additions of 0.1, got %s", result.Summaries()[0].Total)
	}
}

func TestGrandTotalEqualsSumOfSummaries(t *testing.T) {
	orders := []Order{
		{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 3},
		{ID: 2, CustomerID: 2, ProductID: 2, Quantity: 2},
		{ID: 3, CustomerID: 3, ProductID: 1, Quantity: 1},
	}
	customers := []Customer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	products := []Product{
		{ID: 1, Name: "Widget", Price: price(t, "19.99")},
		{ID: 2, Name: "Gadget", Price: price(t, "5.25")},
	}

	result := Aggregate(orders, NewIndex(customers, products), ModeMonetary)
	sum := decimal.Zero
	for _, s := range result.Summaries() {
		sum = sum.Add(s.Total)
	}
	if !result.GrandTotal().Equal(sum) {
		t.Fatalf("grand total %s != summary sum %s", result.GrandTotal(), sum)
	}
}

func TestSummariesReturnsDetachedCopies(t *testing.T) {
	orders := []Order{{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2}}
	customers := []Customer{{ID: 1, Name: "A"}}
	products := []Product{{ID: 1, Name: "Widget", Price: price(t, "10")}}

	result := Aggregate(orders, NewIndex(customers, products), ModeMonetary)
	first := result.Summaries()
	first[0].Entries[0].ProductName = "tampered"
	second := result.Summaries()
	if second[0].Entries[0].ProductName != "Widget" {
		t.Fatalf("summaries share entry backing arrays")
	}
}

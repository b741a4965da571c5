package aggregation

// Index maps entity ids to their full records for one request's join. It is
// a pure function of its inputs and is rebuilt per request so concurrent
// requests each see a consistent snapshot of their own fetched data.
type Index struct {
	customers map[int64]Customer
	products  map[int64]Product
}

// NewIndex builds the lookup maps in O(n). Later duplicates of an id
// overwrite earlier ones, matching plain map semantics of the upstream data.
func NewIndex(customers []Customer, products []Product) Index {
	idx := Index{
		customers: make(map[int64]Customer, len(customers)),
		products:  make(map[int64]Product, len(products)),
	}
	for _, c := range customers {
		idx.customers[c.ID] = c
	}
	for _, p := range products {
		idx.products[p.ID] = p
	}
	return idx
}

// Customer resolves a customer id.
func (i Index) Customer(id int64) (Customer, bool) {
	c, ok := i.customers[id]
	return c, ok
}

// Product resolves a product id.
func (i Index) Product(id int64) (Product, bool) {
	p, ok := i.products[id]
	return p, ok
}

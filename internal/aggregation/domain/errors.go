package aggregation

import "errors"

var (
	// ErrInvalidCustomerID is returned when a record carries a non-positive customer id.
	ErrInvalidCustomerID = errors.New("aggregation: invalid customer id")
	// ErrEmptyCustomerName is returned when a record carries no customer name.
	ErrEmptyCustomerName = errors.New("aggregation: empty customer name")
	// ErrNegativeValue is returned when a quantity or price is negative.
	ErrNegativeValue = errors.New("aggregation: negative value")
)

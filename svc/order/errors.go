package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("no order found with that ID")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrFoodNotFound    = errors.New("food item in cart is no longer available")
	ErrNothingToUpdate = errors.New("status or payment status is required")
)

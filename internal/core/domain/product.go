package domain

import "time"

// MinProductPrice is the smallest accepted product price.
const MinProductPrice = 0.01

// Product is a listing owned by exactly one seller. SellerID is fixed at
// creation and never reassigned.
type Product struct {
	ID          string
	SellerID    string
	Description string
	Price       float64
	Quantity    int
	IsActive    bool
	CreatedAt   time.Time
}

package order

import "time"

// Order statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

var (
	statuses        = []string{StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled}
	paymentStatuses = []string{PaymentUnpaid, PaymentPaid}
)

// Item is an ordered food with the price it had when the order was placed.
type Item struct {
	FoodID   string  `bson:"food_id" json:"food_id"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

type Order struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Items         []Item    `bson:"items" json:"items"`
	TotalPrice    float64   `bson:"total_price" json:"total_price"`
	Status        string    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"payment_status" json:"payment_status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// Update lists the fields an administrator may change.
type Update struct {
	Status        *string
	PaymentStatus *string
}

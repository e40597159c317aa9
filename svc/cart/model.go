package cart

import (
	"time"

	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// Item is one cart line.
type Item struct {
	FoodID   string `bson:"food_id" json:"food_id"`
	Quantity int    `bson:"quantity" json:"quantity"`

	// Food is filled in by Service.Get and never stored.
	Food *catalog.Food `bson:"-" json:"food,omitempty"`
}

// Cart belongs to exactly one user.
type Cart struct {
	ID        string    `bson:"_id" json:"id,omitempty"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Items     []Item    `bson:"items" json:"items"`
	CreatedAt time.Time `bson:"created_at" json:"created_at,omitzero"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at,omitzero"`
}

func (c *Cart) indexOf(foodID string) int {
	for i, it := range c.Items {
		if it.FoodID == foodID {
			return i
		}
	}
	return -1
}

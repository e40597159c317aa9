package review

import "time"

type Review struct {
	ID        string    `bson:"_id" json:"id"`
	FoodID    string    `bson:"food_id" json:"food_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Stats is the rating aggregate stored on a food.
type Stats struct {
	Count   int
	Average float64
}

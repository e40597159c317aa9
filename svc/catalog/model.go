package catalog

import "time"

// Food is a menu item.
type Food struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description" json:"description"`
	Price         float64   `bson:"price" json:"price"`
	CategoryID    string    `bson:"category_id" json:"category_id"`
	ImageURL      string    `bson:"image_url" json:"image_url"`
	ImageKey      string    `bson:"image_key,omitempty" json:"-"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Available     bool      `bson:"available" json:"available"`
	NumReviews    int       `bson:"num_reviews" json:"num_reviews"`
	AverageRating float64   `bson:"average_rating" json:"average_rating"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// Category groups foods.
type Category struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FoodUpdate lists fields to overwrite; nil fields are kept.
type FoodUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *string
	Available   *bool
	ImageURL    *string
	ImageKey    *string
}

// IsEmpty reports whether the update changes nothing.
func (u FoodUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.CategoryID == nil && u.Available == nil && u.ImageURL == nil && u.ImageKey == nil
}

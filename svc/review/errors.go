package review

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrFoodNotFound    = errors.New("food item not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this food item")
	ErrNotReviewAuthor = errors.New("not authorized to update this review")
)

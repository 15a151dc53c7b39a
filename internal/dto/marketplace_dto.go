package dto

type CreateListingInput struct {
	Title       string `json:"title" binding:"required,max=150"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Price       int    `json:"price" binding:"required,min=0"`
}

type UpdateListingInput struct {
	Title       *string `json:"title" binding:"omitempty,max=150"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Price       *int    `json:"price" binding:"omitempty,min=0"`
	Status      *string `json:"status" binding:"omitempty,oneof=open closed"`
}

type CreateOfferInput struct {
	Amount int `json:"amount" binding:"required,min=0"`
}

type CreateReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

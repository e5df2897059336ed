package model

// Product is a concession item (popcorn, drinks, combos).  Price is an
// integer amount in the smallest currency unit (VND has no minor unit).
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

// ProductInput is the body accepted by POST/PUT /Products.
type ProductInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Price int64  `json:"price" validate:"gte=0"`
	Image string `json:"image" validate:"omitempty,url"`
}

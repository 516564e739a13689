package product

// ProductRequest represents the input for creating or updating a product.
// The same shape is accepted on POST /products and PUT /products/:id.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Popularity  int     `json:"popularity" binding:"omitempty,min=0,max=100"`
	Description string  `json:"description" binding:"required,max=2000"`
	ImageURL    string  `json:"imageUrl" binding:"omitempty,max=500"`
}

package discount

// DiscountRequest represents the input for creating or updating a discount
// code. The code itself is only settable on create; updates address the code
// through the path.
type DiscountRequest struct {
	Code     string  `json:"code" binding:"omitempty,min=3,max=50"`
	Type     string  `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Discount float64 `json:"discount" binding:"required,gt=0"`
}
